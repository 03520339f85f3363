package model

import "time"

// MatchStatus is the lifecycle state the FinderGoal API reports for a match.
type MatchStatus string

const (
	// MatchOpen accepts new players.
	MatchOpen MatchStatus = "open"
	// MatchFull has reached its capacity.
	MatchFull MatchStatus = "full"
	// MatchCancelled was called off by its organizer.
	MatchCancelled MatchStatus = "cancelled"
)

// Match is a soccer match as the FinderGoal API returns it.
type Match struct {
	CreatedAt   time.Time   `json:"createdAt"`
	ID          string      `json:"id"`
	Date        string      `json:"fecha"`
	Time        string      `json:"hora"`
	Location    string      `json:"ubicacion"`
	Format      string      `json:"tipoFutbol"`
	Currency    string      `json:"moneda"`
	Status      MatchStatus `json:"estado"`
	OrganizerID string      `json:"organizadorId,omitempty"`
	Players     []string    `json:"jugadores"`
	Price       float64     `json:"precio"`
	MaxPlayers  int         `json:"maxJugadores"`
}

// OpenSlots returns how many players can still join.
func (m Match) OpenSlots() int {
	open := m.MaxPlayers - len(m.Players)
	if open < 0 {
		return 0
	}
	return open
}

// MatchRequest is the body of a match-creation call.
type MatchRequest struct {
	Date        string   `json:"fecha,omitempty"`
	Time        string   `json:"hora,omitempty"`
	Location    string   `json:"ubicacion"`
	Format      string   `json:"tipoFutbol"`
	Currency    string   `json:"moneda"`
	PriceDetail string   `json:"detallePrecio,omitempty"`
	Players     []string `json:"jugadores"`
	Price       float64  `json:"precio"`
	MaxPlayers  int      `json:"maxJugadores"`
}
