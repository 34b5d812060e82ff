package platform

import "os/exec"

func soundCommand(soundPath string) (*exec.Cmd, error) {
	args, err := firstAvailable([][]string{{"afplay"}})
	if err != nil {
		return nil, err
	}
	return exec.Command(args[0], soundPath), nil
}
