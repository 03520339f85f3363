// Package roster turns messaging-app match rosters into structured match data.
// It provides a cheap local validator, a text normalizer, an LLM-backed
// extractor with post-processing rules, and the derived-field helpers used
// when a reviewed extraction becomes a match-creation request.
package roster
