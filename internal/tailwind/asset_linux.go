//go:build linux

package tailwind

func assetName(arch string) (string, bool) {
	switch arch {
	case "arm64":
		return "tailwindcss-linux-arm64", true
	case "amd64":
		return "tailwindcss-linux-x64", true
	}
	return "", false
}
