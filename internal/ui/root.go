package ui

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/squadtools/squad-roulette/internal/config"
	"github.com/squadtools/squad-roulette/internal/model"
	"github.com/squadtools/squad-roulette/internal/spin"
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	engine   *spin.Engine
	settings *config.Settings

	minSlider *widget.Slider
	maxSlider *widget.Slider
	minLabel  *widget.Label
	maxLabel  *widget.Label

	statusLabel *widget.Label
	refreshBtn  *widget.Button
	spinBtn     *widget.Button

	reel *ReelView

	winnerCard *fyne.Container
	winnerName *widget.Label
	winnerMap  *widget.Label

	lastPhase model.Phase
	done      chan struct{}
}

// NewRootUI creates the main UI and starts the animation ticker
func NewRootUI(window fyne.Window, engine *spin.Engine, settings *config.Settings) *RootUI {
	ui := &RootUI{
		window:    window,
		engine:    engine,
		settings:  settings,
		lastPhase: model.PhaseReady,
		done:      make(chan struct{}),
	}

	ui.setupUI()
	go ui.runTicker()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	heading := canvas.NewText(IconSlot+" SQUAD EU ROULETTE", colorGold)
	heading.TextSize = 28
	heading.TextStyle = fyne.TextStyle{Bold: true}
	heading.Alignment = fyne.TextAlignCenter

	// Filter sliders; any change makes the current listing stale.
	ui.minLabel = widget.NewLabel(strconv.Itoa(ui.settings.GetMinPlayers()))
	ui.minSlider = widget.NewSlider(config.PlayersLowerBound, config.PlayersUpperBound)
	ui.minSlider.Step = 1
	ui.minSlider.Value = float64(ui.settings.GetMinPlayers())
	ui.minSlider.OnChanged = ui.onMinChanged

	ui.maxLabel = widget.NewLabel(strconv.Itoa(ui.settings.GetMaxPlayers()))
	ui.maxSlider = widget.NewSlider(config.PlayersLowerBound, config.PlayersUpperBound)
	ui.maxSlider.Step = 1
	ui.maxSlider.Value = float64(ui.settings.GetMaxPlayers())
	ui.maxSlider.OnChanged = ui.onMaxChanged

	filterRow := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, widget.NewLabel("Players min"), ui.minLabel, ui.minSlider),
		container.NewBorder(nil, nil, widget.NewLabel("max"), ui.maxLabel, ui.maxSlider),
	)

	ui.refreshBtn = widget.NewButton(IconRefresh+" Refresh", ui.onRefresh)
	ui.statusLabel = widget.NewLabel(TextStaleListing)
	controlRow := container.NewHBox(ui.refreshBtn, ui.statusLabel)

	ui.spinBtn = widget.NewButton(spinLabel(model.PhaseReady), ui.onSpin)
	ui.spinBtn.Importance = widget.HighImportance
	ui.spinBtn.Disable()
	spinRow := container.NewCenter(container.NewGridWrap(
		fyne.NewSize(SpinButtonWidth, SpinButtonHeight), ui.spinBtn))

	ui.reel = NewReelView()

	ui.winnerName = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.winnerMap = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	copyBtn := widget.NewButton(IconCopy+" Copy name", ui.onCopyWinnerName)
	ui.winnerCard = container.NewVBox(
		widget.NewLabelWithStyle(IconTrophy+" WINNER:", fyne.TextAlignCenter, fyne.TextStyle{}),
		ui.winnerName,
		ui.winnerMap,
		container.NewCenter(copyBtn),
	)
	ui.winnerCard.Hide()

	content := container.NewVBox(
		heading,
		filterRow,
		controlRow,
		spinRow,
		ui.reel,
		ui.winnerCard,
	)

	// An invisible size floor keeps the window from shrinking below a usable
	// layout; the reel's own minimum alone is smaller than that.
	sizeFloor := canvas.NewRectangle(color.Transparent)
	sizeFloor.SetMinSize(fyne.NewSize(WindowMinWidth, WindowMinHeight))

	ui.window.SetContent(container.NewStack(sizeFloor, content))
	ui.window.SetOnClosed(ui.stop)
}

// onMinChanged persists the new lower bound and flags the listing stale
func (ui *RootUI) onMinChanged(value float64) {
	ui.settings.SetMinPlayers(int(value))
	ui.minLabel.SetText(strconv.Itoa(int(value)))
	ui.engine.MarkStale()
}

// onMaxChanged persists the new upper bound and flags the listing stale
func (ui *RootUI) onMaxChanged(value float64) {
	ui.settings.SetMaxPlayers(int(value))
	ui.maxLabel.SetText(strconv.Itoa(int(value)))
	ui.engine.MarkStale()
}

// onRefresh starts a background listing fetch for the current filter
func (ui *RootUI) onRefresh() {
	minPlayers := ui.settings.GetMinPlayers()
	maxPlayers := ui.settings.GetMaxPlayers()

	if !ui.engine.StartFetch(minPlayers, maxPlayers) {
		log.Printf("Refresh rejected while busy")
		return
	}
	log.Printf("Fetching servers for %d-%d players", minPlayers, maxPlayers)
}

// onSpin starts the reveal animation
func (ui *RootUI) onSpin() {
	if !ui.engine.Spin() {
		log.Printf("Spin rejected")
		return
	}
	log.Printf("Spin started")
}

// onCopyWinnerName copies the settled winner's name to the clipboard
func (ui *RootUI) onCopyWinnerName() {
	snapshot := ui.engine.Snapshot()
	if !snapshot.HasWinner {
		return
	}

	ui.window.Clipboard().SetContent(snapshot.Winner.Name)
	widget.ShowPopUp(widget.NewLabel("Name copied to clipboard"), ui.window.Canvas())
}

// runTicker advances the engine once per frame and pushes render state to
// the UI thread. The tick itself never blocks; only the fyne.Do handoff
// touches widgets.
func (ui *RootUI) runTicker() {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ui.done:
			return
		case <-ticker.C:
			ui.engine.Tick()
			snapshot := ui.engine.Snapshot()
			fyne.Do(func() {
				ui.render(snapshot)
			})
		}
	}
}

// stop ends the ticker goroutine when the window closes
func (ui *RootUI) stop() {
	close(ui.done)
}

// render maps an engine snapshot onto the widgets. Runs on the UI thread.
func (ui *RootUI) render(snapshot spin.Snapshot) {
	ui.reel.SetState(snapshot.Servers, snapshot.Offset)

	switch {
	case snapshot.Phase == model.PhaseLoading:
		setLabelText(ui.statusLabel, IconWait+" "+TextLoading)
	case snapshot.Stale:
		setLabelText(ui.statusLabel, TextStaleListing)
	default:
		setLabelText(ui.statusLabel, fmt.Sprintf("Servers: %d", len(snapshot.Servers)))
	}

	if label := spinLabel(snapshot.Phase); ui.spinBtn.Text != label {
		ui.spinBtn.SetText(label)
	}
	if snapshot.CanSpin {
		ui.spinBtn.Enable()
	} else {
		ui.spinBtn.Disable()
	}
	if snapshot.Phase.IsBusy() {
		ui.refreshBtn.Disable()
	} else {
		ui.refreshBtn.Enable()
	}

	if snapshot.HasWinner {
		setLabelText(ui.winnerName, snapshot.Winner.Name)
		setLabelText(ui.winnerMap, "Map: "+snapshot.Winner.Map)
		if ui.winnerCard.Hidden {
			ui.winnerCard.Show()
		}
	} else if !ui.winnerCard.Hidden {
		ui.winnerCard.Hide()
	}

	if snapshot.Phase != ui.lastPhase {
		if snapshot.PlanID != "" {
			log.Printf("Phase changed: %s -> %s (plan %s)", ui.lastPhase, snapshot.Phase, snapshot.PlanID)
		} else {
			log.Printf("Phase changed: %s -> %s", ui.lastPhase, snapshot.Phase)
		}
		ui.lastPhase = snapshot.Phase
	}
}

// setLabelText avoids per-frame refreshes for unchanged labels
func setLabelText(label *widget.Label, text string) {
	if label.Text != text {
		label.SetText(text)
	}
}

// spinLabel returns the spin button caption for a phase
func spinLabel(phase model.Phase) string {
	switch phase {
	case model.PhaseLoading:
		return IconWait + " ..."
	case model.PhaseSpinning:
		return IconSpinner + " ..."
	case model.PhaseFinished:
		return IconSlot + " SPIN AGAIN!"
	default:
		return IconSlot + " SPIN!"
	}
}
