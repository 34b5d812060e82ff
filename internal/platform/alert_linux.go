package platform

import "os/exec"

func soundCommand(soundPath string) (*exec.Cmd, error) {
	args, err := firstAvailable([][]string{
		{"paplay"},
		{"pw-play"},
		{"aplay", "-q"},
		{"mplayer", "-really-quiet"},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	})
	if err != nil {
		return nil, err
	}
	return exec.Command(args[0], append(args[1:], soundPath)...), nil
}
