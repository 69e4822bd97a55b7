package deliver

import (
	"runtime"
	"strings"
)

type Modifier string

const (
	ModifierCommand Modifier = "cmd"
	ModifierControl Modifier = "ctrl"
)

// IsMac matches OS names such as "Mac OS X" case-insensitively.
func IsMac(osName string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(osName)), "mac os")
}

func PasteModifier(osName string) Modifier {
	if IsMac(osName) {
		return ModifierCommand
	}
	return ModifierControl
}

func HostOSName() string {
	switch runtime.GOOS {
	case "darwin":
		return "Mac OS X"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	default:
		return runtime.GOOS
	}
}
