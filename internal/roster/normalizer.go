package roster

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^\w\s.,:\-/]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// Normalize cleans roster text before it is sent to the model.
//
// Anything outside ASCII word characters, whitespace and ". , : - /" becomes
// a space, then all whitespace (newlines included) collapses to one space.
// Line structure is lost here; the model copes with the flattened form.
// Normalize is idempotent.
func Normalize(text string) string {
	cleaned := disallowedChars.ReplaceAllString(text, " ")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
