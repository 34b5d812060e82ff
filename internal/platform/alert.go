package platform

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"passata/internal/core/session"
)

// ErrNoSoundCommand indicates no audio player was found on this system.
var ErrNoSoundCommand = errors.New("no sound command available")

// SoundPlayer plays the alert sound through an external audio player.
type SoundPlayer struct {
	mu        sync.Mutex
	soundPath string
	command   func(soundPath string) (*exec.Cmd, error)
	playing   bool
	done      func(error)
}

// NewSoundPlayer returns a player using the platform's audio command.
func NewSoundPlayer(soundPath string) *SoundPlayer {
	return &SoundPlayer{
		soundPath: soundPath,
		command:   soundCommand,
	}
}

// PhaseCompleted starts playback and returns immediately. An alert that
// arrives while the previous one is still playing is dropped.
func (player *SoundPlayer) PhaseCompleted(session.Event) {
	player.mu.Lock()
	if player.playing {
		player.mu.Unlock()
		return
	}
	player.playing = true
	player.mu.Unlock()

	go func() {
		err := player.play()
		if err != nil {
			log.Printf("alert sound: %v", err)
		}
		player.mu.Lock()
		player.playing = false
		done := player.done
		player.mu.Unlock()
		if done != nil {
			done(err)
		}
	}()
}

func (player *SoundPlayer) play() error {
	cmd, err := player.command(player.soundPath)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play %s: %w", player.soundPath, err)
	}
	return nil
}

// AlertGroup forwards a completion to every member.
type AlertGroup []session.AlertPlayer

// PhaseCompleted notifies each member in order.
func (group AlertGroup) PhaseCompleted(event session.Event) {
	for _, alert := range group {
		if alert != nil {
			alert.PhaseCompleted(event)
		}
	}
}

// WriteCacheFile stores data under the user cache directory and returns its
// path. An existing file with the same size is reused.
func WriteCacheFile(appName, fileName string, data []byte) (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return writeFileIn(filepath.Join(cacheDir, appName), fileName, data)
}

func writeFileIn(dir, fileName string, data []byte) (string, error) {
	path := filepath.Join(dir, fileName)
	if info, err := os.Stat(path); err == nil && info.Size() == int64(len(data)) {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write cache file: %w", err)
	}
	return path, nil
}

func firstAvailable(candidates [][]string) ([]string, error) {
	for _, candidate := range candidates {
		path, err := exec.LookPath(candidate[0])
		if err != nil {
			continue
		}
		return append([]string{path}, candidate[1:]...), nil
	}
	return nil, ErrNoSoundCommand
}
