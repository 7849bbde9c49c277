//go:build !darwin && !linux && !windows

package tailwind

func assetName(string) (string, bool) {
	return "", false
}
