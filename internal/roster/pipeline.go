package roster

import (
	"context"
)

// Pipeline chains validation, normalization and extraction for pasted text.
type Pipeline struct {
	extractor *Extractor
}

// NewPipeline wraps an extractor.
func NewPipeline(extractor *Extractor) *Pipeline {
	return &Pipeline{extractor: extractor}
}

// Process validates raw text, normalizes it and extracts match data.
// Texts the validator rejects return ErrRosterRejected without a model call.
func (p *Pipeline) Process(ctx context.Context, raw string) (MatchExtract, error) {
	if !IsValidRosterText(raw) {
		return MatchExtract{}, ErrRosterRejected
	}
	return p.extractor.Extract(ctx, Normalize(raw))
}
