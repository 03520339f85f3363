package roster

// MatchExtract is the structured result of a roster extraction.
// JSON names follow the field names the model is asked to produce.
type MatchExtract struct {
	Date        *string  `json:"fecha"`
	Time        *string  `json:"hora"`
	Location    string   `json:"ubicacion"`
	Format      string   `json:"tipoFutbol"`
	Currency    string   `json:"moneda"`
	PriceDetail string   `json:"detallePrecio"`
	Players     []string `json:"jugadores"`
	Price       float64  `json:"precio"`
}

// RawExtract is the model's JSON answer before post-processing.
// Every field is nullable because the model is told to return null for
// anything it cannot find.
type RawExtract struct {
	Date        *string     `json:"fecha"`
	Time        *string     `json:"hora"`
	Location    *string     `json:"ubicacion"`
	Format      *string     `json:"tipoFutbol"`
	Price       *flexNumber `json:"precio"`
	Currency    *string     `json:"moneda"`
	PriceDetail *string     `json:"detallePrecio"`
	Players     []string    `json:"jugadores"`
}

// MaxPlayers is the capacity computed for a match.
type MaxPlayers struct {
	Count int `json:"maxPlayers"`

	// RoundedUp is set when an odd roster was rounded to the next even
	// number. The value is an approximation, not something the text said.
	RoundedUp bool `json:"wasRoundedUp"`
}

// Validation reports the individual signals behind a validator verdict.
type Validation struct {
	Length       int  `json:"length"`
	LongEnough   bool `json:"longEnough"`
	HasKeyword   bool `json:"hasKeyword"`
	NumberedList bool `json:"hasNumberedList"`
	DatePhrase   bool `json:"hasDatePhrase"`
	Valid        bool `json:"valid"`
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
