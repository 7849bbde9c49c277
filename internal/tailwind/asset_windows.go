//go:build windows

package tailwind

func assetName(arch string) (string, bool) {
	if arch == "amd64" {
		return "tailwindcss-windows-x64.exe", true
	}
	return "", false
}
