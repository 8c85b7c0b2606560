package model

import "fmt"

// Default values substituted for attributes the listing source omits
const (
	UnknownMap     = "Unknown"
	UnknownMode    = "Unknown"
	UnknownCountry = "??"
)

// ServerRecord represents a single game server from the listing source.
// Records are immutable once constructed and owned by the listing snapshot
// they arrived in.
type ServerRecord struct {
	Name       string
	Players    int
	MaxPlayers int
	Map        string // UnknownMap when the source omits it
	Mode       string // UnknownMode when the source omits it
	Country    string // two-letter code, UnknownCountry when the source omits it
}

// PlayersLabel returns the "players/max" fragment shown in reel rows
func (r ServerRecord) PlayersLabel() string {
	return fmt.Sprintf("%d/%d", r.Players, r.MaxPlayers)
}
