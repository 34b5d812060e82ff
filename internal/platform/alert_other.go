//go:build !linux && !darwin && !windows

package platform

import "os/exec"

func soundCommand(string) (*exec.Cmd, error) {
	return nil, ErrNoSoundCommand
}
