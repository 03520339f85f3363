package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// flexNumber accepts a JSON number or a numeric string such as "16.000".
type flexNumber float64

var thousandsGrouped = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})+$`)

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = flexNumber(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("precio is neither a number nor a string: %w", err)
	}
	*n = flexNumber(parsePriceString(s))
	return nil
}

// parsePriceString reads amounts written the way rosters write them:
// "16.000", "$16,000", "16000 pesos". Unreadable and negative amounts yield 0.
func parsePriceString(s string) float64 {
	if strings.HasPrefix(strings.TrimSpace(s), "-") {
		return 0
	}

	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
	digits = strings.Trim(digits, ".,")
	if digits == "" {
		return 0
	}

	if thousandsGrouped.MatchString(digits) {
		digits = strings.NewReplacer(".", "", ",", "").Replace(digits)
	} else {
		digits = strings.ReplaceAll(digits, ",", ".")
	}

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}
