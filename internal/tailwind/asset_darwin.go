//go:build darwin

package tailwind

func assetName(arch string) (string, bool) {
	switch arch {
	case "arm64":
		return "tailwindcss-macos-arm64", true
	case "amd64":
		return "tailwindcss-macos-x64", true
	}
	return "", false
}
