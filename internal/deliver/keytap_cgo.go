//go:build cgo

package deliver

import "github.com/go-vgo/robotgo"

// RobotKeyTap presses key together with modifier in the focused window.
func RobotKeyTap(key string, modifier Modifier) error {
	return robotgo.KeyTap(key, string(modifier))
}
