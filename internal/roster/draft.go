package roster

import (
	"github.com/Veraticus/findergoal/internal/model"
)

// MatchDraft is a reviewed extraction with its derived fields resolved.
type MatchDraft struct {
	Extract MatchExtract `json:"extract"`
	Format  string       `json:"tipoFutbol"`

	// FormatDeduced is set when Format came from the roster size rather
	// than from the text.
	FormatDeduced bool       `json:"formatDeduced"`
	MaxPlayers    MaxPlayers `json:"maxPlayers"`
}

// BuildDraft resolves team format and capacity for an extraction. The roster
// size only decides the format when the model did not report one.
func BuildDraft(extract MatchExtract) MatchDraft {
	draft := MatchDraft{Extract: extract, Format: extract.Format}
	if draft.Format == "" {
		if deduced := DeduceTeamFormat(len(extract.Players)); deduced != "" {
			draft.Format = deduced
			draft.FormatDeduced = true
		}
	}
	draft.MaxPlayers = ComputeMaxPlayers(draft.Format, extract.Players)
	return draft
}

// Request converts the draft into a match-creation request.
func (d MatchDraft) Request() model.MatchRequest {
	req := model.MatchRequest{
		Location:    d.Extract.Location,
		Format:      d.Format,
		Price:       d.Extract.Price,
		Currency:    d.Extract.Currency,
		PriceDetail: d.Extract.PriceDetail,
		MaxPlayers:  d.MaxPlayers.Count,
		Players:     append([]string(nil), d.Extract.Players...),
	}
	if d.Extract.Date != nil {
		req.Date = *d.Extract.Date
	}
	if d.Extract.Time != nil {
		req.Time = *d.Extract.Time
	}
	return req
}
