package config

import "fyne.io/fyne/v2"

// Settings keys for Fyne preferences
const (
	KeyMinPlayers = "min_players"
	KeyMaxPlayers = "max_players"
)

// Default and boundary values for the player-count filter
const (
	DefaultMinPlayers = 60
	DefaultMaxPlayers = 100

	PlayersLowerBound = 0
	PlayersUpperBound = 100
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetMinPlayers returns the lower bound of the player-count filter
func (s *Settings) GetMinPlayers() int {
	return clampPlayers(s.app.Preferences().IntWithFallback(KeyMinPlayers, DefaultMinPlayers))
}

// SetMinPlayers sets the lower bound of the player-count filter
func (s *Settings) SetMinPlayers(count int) {
	s.app.Preferences().SetInt(KeyMinPlayers, clampPlayers(count))
}

// GetMaxPlayers returns the upper bound of the player-count filter
func (s *Settings) GetMaxPlayers() int {
	return clampPlayers(s.app.Preferences().IntWithFallback(KeyMaxPlayers, DefaultMaxPlayers))
}

// SetMaxPlayers sets the upper bound of the player-count filter
func (s *Settings) SetMaxPlayers(count int) {
	s.app.Preferences().SetInt(KeyMaxPlayers, clampPlayers(count))
}

// clampPlayers keeps a player count within the slider range
func clampPlayers(count int) int {
	if count < PlayersLowerBound {
		return PlayersLowerBound
	}
	if count > PlayersUpperBound {
		return PlayersUpperBound
	}
	return count
}
