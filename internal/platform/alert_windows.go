package platform

import (
	"os/exec"
	"strings"
)

func soundCommand(soundPath string) (*exec.Cmd, error) {
	args, err := firstAvailable([][]string{{"powershell", "-NoProfile", "-NonInteractive", "-Command"}})
	if err != nil {
		return nil, err
	}
	quoted := strings.ReplaceAll(soundPath, "'", "''")
	script := "(New-Object Media.SoundPlayer '" + quoted + "').PlaySync()"
	return exec.Command(args[0], append(args[1:], script)...), nil
}
