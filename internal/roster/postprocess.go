package roster

import (
	"fmt"
	"regexp"
	"strings"
)

// Default year heuristics. These are tied to when the extraction prompt was
// tuned: the model kept answering with last year's dates. Revisit once a
// "nearest future occurrence" rule replaces them.
const (
	DefaultTargetYear  = 2025
	DefaultYearFixFrom = 2024
	DefaultYearFixTo   = 2025
)

// Rules configures post-processing of a model answer.
type Rules struct {
	// YearFixFrom is the year the model wrongly assumes; dates in that year
	// are rewritten to YearFixTo. Zero disables the correction.
	YearFixFrom int
	YearFixTo   int
}

// DefaultRules returns the year correction the extractor ships with.
func DefaultRules() Rules {
	return Rules{YearFixFrom: DefaultYearFixFrom, YearFixTo: DefaultYearFixTo}
}

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// PostProcess applies defaults and normalization rules to a raw model answer.
// It is pure: the same raw input always yields the same MatchExtract.
func PostProcess(raw RawExtract, rules Rules) MatchExtract {
	out := MatchExtract{
		Date:        normalizeDate(raw.Date, rules),
		Time:        normalizeClock(raw.Time),
		Location:    strings.TrimSpace(stringOrEmpty(raw.Location)),
		Format:      strings.TrimSpace(stringOrEmpty(raw.Format)),
		Currency:    strings.TrimSpace(stringOrEmpty(raw.Currency)),
		PriceDetail: stringOrEmpty(raw.PriceDetail),
		Players:     cleanPlayers(raw.Players),
	}

	if raw.Price != nil && *raw.Price > 0 {
		out.Price = float64(*raw.Price)
	}
	if mentionsEuros(out.PriceDetail) {
		out.Currency = "EUR"
	}

	return out
}

func normalizeDate(date *string, rules Rules) *string {
	if date == nil {
		return nil
	}
	d := strings.TrimSpace(*date)
	// "2025-06-21T20:00:00" and "2025-06-21 20:00" keep their date part.
	if len(d) > 10 && (d[10] == 'T' || d[10] == ' ') {
		d = d[:10]
	}
	if !isoDatePattern.MatchString(d) {
		return nil
	}
	if rules.YearFixFrom != 0 && strings.HasPrefix(d, fmt.Sprintf("%04d-", rules.YearFixFrom)) {
		d = fmt.Sprintf("%04d", rules.YearFixTo) + d[4:]
	}
	return &d
}

// cleanPlayers drops null and blank roster entries, which decode as "".
// Duplicates are kept. The result is never nil.
func cleanPlayers(players []string) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func normalizeClock(clock *string) *string {
	if clock == nil {
		return nil
	}
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(*clock))
	if m == nil {
		return nil
	}
	hh := m[1]
	if len(hh) == 1 {
		hh = "0" + hh
	}
	t := hh + ":" + m[2]
	return &t
}

// mentionsEuros reports whether a price line is really in euros. The model
// tends to tag "$16.000 euros" as dollars; the line itself wins, so a dollar
// sign next to a euro word still counts as euros. The rule only ever moves the
// currency towards EUR.
func mentionsEuros(detail string) bool {
	lower := strings.ToLower(detail)
	return strings.Contains(lower, "€") ||
		strings.Contains(lower, "euros") ||
		strings.Contains(lower, "eur")
}
