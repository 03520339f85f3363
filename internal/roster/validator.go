package roster

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinRosterLength is the shortest text, in characters, worth a model call.
const MinRosterLength = 50

var rosterKeywords = []string{
	"partido",
	"cancha",
	"fútbol",
	"futbol",
	"jugadores",
	"cupos",
	"hora",
	"precio",
	"nequi",
	"bancolombia",
	"daviplata",
	"transferencia",
}

var (
	// "1. Ana", "12.  Juan".
	numberedListPattern = regexp.MustCompile(`\d+\.\s+[\p{L}\p{N}_]`)
	// "21 de junio", "5 junio", "3 De Marzo".
	datePhrasePattern = regexp.MustCompile(`(?i)\d{1,2}\s+(?:de\s+)?(?:enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre)`)
)

// IsValidRosterText reports whether text looks like a soccer-match roster.
// It is a cheap gate run before spending a model call.
func IsValidRosterText(text string) bool {
	return Verdict(text).Valid
}

// Verdict runs the validator and returns every signal it used.
func Verdict(text string) Validation {
	v := Validation{Length: utf8.RuneCountInString(text)}
	v.LongEnough = v.Length >= MinRosterLength
	if !v.LongEnough {
		return v
	}

	// Substring match on purpose: keywords glued to punctuation still count.
	lower := strings.ToLower(text)
	for _, kw := range rosterKeywords {
		if strings.Contains(lower, kw) {
			v.HasKeyword = true
			break
		}
	}

	v.NumberedList = numberedListPattern.MatchString(text)
	v.DatePhrase = datePhrasePattern.MatchString(text)
	v.Valid = v.HasKeyword && (v.NumberedList || v.DatePhrase)
	return v
}
