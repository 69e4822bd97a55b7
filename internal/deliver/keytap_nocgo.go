//go:build !cgo

package deliver

import "errors"

var errNoKeyboard = errors.New("paste keystroke needs a cgo build")

func RobotKeyTap(string, Modifier) error {
	return errNoKeyboard
}
