package tailwind

import "runtime"

// PlatformName returns a human readable name of the running platform,
// e.g. "Linux x64".
func PlatformName() string {
	return osName(runtime.GOOS) + " " + archName(runtime.GOARCH)
}

func osName(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	default:
		return goos
	}
}

func archName(goarch string) string {
	switch goarch {
	case "arm64":
		return "ARM64"
	case "amd64":
		return "x64"
	default:
		return goarch
	}
}
