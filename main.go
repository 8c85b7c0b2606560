package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/squadtools/squad-roulette/internal/audio"
	"github.com/squadtools/squad-roulette/internal/config"
	"github.com/squadtools/squad-roulette/internal/fetch"
	"github.com/squadtools/squad-roulette/internal/spin"
	"github.com/squadtools/squad-roulette/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.squadtools.squad-roulette"
	AppName = "Squad EU Roulette"

	WindowWidth  = 800
	WindowHeight = 950
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewRouletteTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// The click waveform is synthesized once; every row crossing replays it.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	samples := audio.SynthesizeClick(rng, audio.SampleRate, audio.ClickDurationMs)
	player, err := audio.NewPlayer(samples, audio.SampleRate)
	if err != nil {
		// Degrade gracefully: spin and animation run with clicks suppressed.
		log.Printf("Audio device unavailable, clicks disabled: %v", err)
	}

	settings := config.NewSettings(myApp)
	client := fetch.NewClient(nil, "")
	engine := spin.NewEngine(client, rng)
	engine.SetClickCallback(player.Play)

	ui.NewRootUI(myWindow, engine, settings)

	myWindow.ShowAndRun()
}
