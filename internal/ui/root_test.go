package ui

import (
	"context"
	"math/rand"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/squadtools/squad-roulette/internal/config"
	"github.com/squadtools/squad-roulette/internal/model"
	"github.com/squadtools/squad-roulette/internal/spin"
)

type emptyFetcher struct{}

func (emptyFetcher) FetchServers(context.Context, int, int) []model.ServerRecord {
	return nil
}

func TestRootUI_ContentEnforcesMinimumWindowSize(t *testing.T) {
	app := test.NewApp()
	window := app.NewWindow("roulette")
	engine := spin.NewEngine(emptyFetcher{}, rand.New(rand.NewSource(1)))

	ui := NewRootUI(window, engine, config.NewSettings(app))
	defer ui.stop()

	min := window.Content().MinSize()
	if min.Width < WindowMinWidth || min.Height < WindowMinHeight {
		t.Errorf("Content minimum %vx%v, expected at least %vx%v",
			min.Width, min.Height, WindowMinWidth, WindowMinHeight)
	}
}
