package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDraft(t *testing.T) {
	t.Run("deduces format from roster", func(t *testing.T) {
		draft := BuildDraft(MatchExtract{Players: names(14)})

		assert.Equal(t, "7v7", draft.Format)
		assert.True(t, draft.FormatDeduced)
		assert.Equal(t, MaxPlayers{Count: 14}, draft.MaxPlayers)
	})

	t.Run("keeps explicit format", func(t *testing.T) {
		draft := BuildDraft(MatchExtract{Format: "9v9", Players: names(14)})

		assert.Equal(t, "9v9", draft.Format)
		assert.False(t, draft.FormatDeduced)
		assert.Equal(t, 18, draft.MaxPlayers.Count)
	})

	t.Run("small odd roster is flagged", func(t *testing.T) {
		draft := BuildDraft(MatchExtract{Players: names(7)})

		assert.Empty(t, draft.Format)
		assert.False(t, draft.FormatDeduced)
		assert.Equal(t, MaxPlayers{Count: 8, RoundedUp: true}, draft.MaxPlayers)
	})
}

func TestMatchDraftRequest(t *testing.T) {
	extract := MatchExtract{
		Date:        strPtr("2025-06-21"),
		Time:        strPtr("20:00"),
		Location:    "Cancha La 70",
		Price:       16000,
		Currency:    "COP",
		PriceDetail: "$16.000 por persona",
		Players:     names(12),
	}

	req := BuildDraft(extract).Request()

	assert.Equal(t, "2025-06-21", req.Date)
	assert.Equal(t, "20:00", req.Time)
	assert.Equal(t, "Cancha La 70", req.Location)
	assert.Equal(t, "7v7", req.Format)
	assert.Equal(t, 14, req.MaxPlayers)
	assert.InDelta(t, 16000, req.Price, 0)
	require.Len(t, req.Players, 12)

	req.Players[0] = "changed"
	assert.Equal(t, "Jugador 1", extract.Players[0], "request must not alias the extract roster")

	empty := BuildDraft(MatchExtract{}).Request()
	assert.Empty(t, empty.Date)
	assert.Empty(t, empty.Time)
	assert.Equal(t, DefaultMaxPlayers, empty.MaxPlayers)
}
