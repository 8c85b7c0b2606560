package ui

import (
	"time"

	"github.com/squadtools/squad-roulette/internal/spin"
)

// Icons (emojis/symbols)
const (
	IconSlot    = "🎰"
	IconRefresh = "🔄"
	IconSpinner = "🌀"
	IconWait    = "⏳"
	IconCopy    = "📋"
	IconTrophy  = "🎉"
	IconMarker  = "◀"
)

// Text fragments
const (
	MiddleDotSeparator = " · "

	TextEmptyListing = "The list is empty. Refresh the servers!"
	TextStaleListing = "List is stale, refresh!"
	TextLoading      = "Fetching servers..."
)

// Reel viewport sizing. RowHeight mirrors the engine's scroll geometry so
// offsets translate directly into pixels.
const (
	RowHeight    float32 = float32(spin.RowHeight)
	ReelHeight   float32 = 320
	ReelMinWidth float32 = 560

	RowInnerMargin float32 = 6
	MarkerInset    float32 = 10
)

// Button sizing
const (
	SpinButtonWidth  float32 = 250
	SpinButtonHeight float32 = 60
)

// Minimum window size, enforced through the content's minimum size
const (
	WindowMinWidth  float32 = 600
	WindowMinHeight float32 = 700
)

// Frame pacing for the animation ticker
const (
	TickInterval = time.Second / 60
)
