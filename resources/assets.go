package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	logoDir  = "logo/"
	soundDir = "sounds/"

	// AlertSoundName is the embedded default alert sound.
	AlertSoundName = "ping.wav"
)

// Phase indicator icons, matching the pomodoro colours of the main page.
const (
	LogoRed    = "passata_red.png"
	LogoGreen  = "passata_green.png"
	LogoYellow = "passata_yellow.png"
)

//go:embed logo/*.png
var logoFS embed.FS

//go:embed sounds/*.wav
var soundFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return loadResource(logoFS, logoDir+fileName, &logoCache)
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Sound returns the raw bytes of an embedded sound file.
func Sound(fileName string) ([]byte, error) {
	data, err := soundFS.ReadFile(soundDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", fileName, err)
	}
	return data, nil
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
