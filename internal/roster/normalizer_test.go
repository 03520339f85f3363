package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses mixed whitespace", input: "a\n\n\tb   c", want: "a b c"},
		{name: "trims", input: "   hola   ", want: "hola"},
		{name: "empty", input: "", want: ""},
		{name: "keeps allowed punctuation", input: "8:30 p.m., 21/06 - cancha", want: "8:30 p.m., 21/06 - cancha"},
		{name: "strips emoji", input: "⚽ Partido ⚽", want: "Partido"},
		{name: "strips currency symbols", input: "$16.000 €", want: "16.000"},
		{name: "strips accented letters", input: "Fútbol", want: "F tbol"},
		{name: "flattens numbered list", input: "1. Ana\r\n2. Luis\n3. Pedro", want: "1. Ana 2. Luis 3. Pedro"},
		{name: "keeps underscores", input: "los_pibes", want: "los_pibes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	samples := []string{
		"",
		"a\n\n\tb   c",
		"⚽🔥 PARTIDO 🔥⚽\n\n📅 Sábado 21 de junio\n⏰ 8:00 pm\n💰 $16.000 por persona",
		"tabs\there\tand\vvertical\ftabs",
		"mixed\r\nline\rendings\n",
		"non\u00a0breaking\u00a0spaces",
		"  ¿Quién juega? ¡Yo! ",
	}

	for _, s := range samples {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}
