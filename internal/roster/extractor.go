package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Model is the external text generator the extractor delegates to.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f ModelFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Config holds extractor settings.
type Config struct {
	// TargetYear is the year the model assumes for dates without one.
	TargetYear int
	Rules      Rules
}

// Extractor converts normalized roster text into a MatchExtract with a single
// model call. It keeps no state between calls and never retries.
type Extractor struct {
	model      Model
	logger     *slog.Logger
	rules      Rules
	targetYear int
}

// NewExtractor creates an extractor backed by model.
func NewExtractor(model Model, cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TargetYear == 0 {
		cfg.TargetYear = DefaultTargetYear
	}
	return &Extractor{
		model:      model,
		logger:     logger,
		rules:      cfg.Rules,
		targetYear: cfg.TargetYear,
	}
}

// Extract runs the model on normalized text and post-processes its answer.
// Failures are *ExtractionError; there is never a partial result.
func (e *Extractor) Extract(ctx context.Context, normalized string) (MatchExtract, error) {
	prompt := BuildPrompt(normalized, e.targetYear)

	start := time.Now()
	answer, err := e.model.Generate(ctx, prompt)
	if err != nil {
		e.logger.Warn("roster extraction model call failed",
			"error", err,
			"elapsed", time.Since(start))
		return MatchExtract{}, transportError(err)
	}

	raw, err := ParseAnswer(answer)
	if err != nil {
		e.logger.Warn("roster extraction answer unusable",
			"error", err,
			"answer_length", len(answer))
		return MatchExtract{}, err
	}

	extract := PostProcess(raw, e.rules)
	e.logger.Debug("roster extracted",
		"players", len(extract.Players),
		"format", extract.Format,
		"currency", extract.Currency,
		"elapsed", time.Since(start))

	return extract, nil
}

// ParseAnswer locates and decodes the JSON object in a model answer.
func ParseAnswer(answer string) (RawExtract, error) {
	object, ok := FindJSONObject(answer)
	if !ok {
		return RawExtract{}, parseError(fmt.Errorf("no JSON object in model answer"))
	}

	var raw RawExtract
	if err := json.Unmarshal([]byte(object), &raw); err != nil {
		return RawExtract{}, parseError(fmt.Errorf("failed to decode model JSON: %w", err))
	}
	return raw, nil
}
