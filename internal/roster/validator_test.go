package roster

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidRosterText(t *testing.T) {
	const chatter = "Hola a todos, nos vemos en la cancha del barrio para jugar hoy!!"

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "empty", text: "", want: false},
		{name: "whitespace only", text: strings.Repeat(" \n\t", 30), want: false},
		{name: "keyword without structure", text: chatter, want: false},
		{name: "keyword with numbered list", text: chatter + " 1. Ana", want: true},
		{name: "keyword with date phrase", text: chatter + " el 5 de junio", want: true},
		{name: "date phrase without de", text: chatter + " el 5 junio", want: true},
		{name: "month in capitals", text: chatter + " el 5 DE JUNIO", want: true},
		{
			name: "structure without keyword",
			text: "Lista de la semana para el asado del sábado:\n1. Ana\n2. Luis\n3. Pedro",
			want: false,
		},
		{
			name: "accented keyword in capitals",
			text: "FÚTBOL el sábado con los de siempre, anótense ya:\n1. Ana\n2. Luis",
			want: true,
		},
		{
			name: "keyword glued to punctuation",
			text: "¡¡PARTIDO!! el 21 de junio, confirmen asistencia por aquí por favor",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidRosterText(tt.text))
		})
	}
}

func TestIsValidRosterText_LengthBoundary(t *testing.T) {
	base := "Partido en la cancha. 1. Ana 2. Luis 3. Pedro"
	atLimit := base + strings.Repeat("x", MinRosterLength-utf8.RuneCountInString(base))
	require.Equal(t, MinRosterLength, utf8.RuneCountInString(atLimit))

	assert.True(t, IsValidRosterText(atLimit))
	assert.False(t, IsValidRosterText(atLimit[:len(atLimit)-1]))
}

func TestIsValidRosterText_ShortTextsAlwaysRejected(t *testing.T) {
	texts := []string{
		"partido 1. Ana",
		"cancha 21 de junio 1. Ana 2. Luis 3. Pedro",
		strings.Repeat("a", MinRosterLength-1),
	}
	for _, text := range texts {
		require.Less(t, utf8.RuneCountInString(text), MinRosterLength)
		assert.False(t, IsValidRosterText(text), text)
	}
}

func TestVerdict(t *testing.T) {
	v := Verdict("Partido el 21 de junio en la cancha sintética, precio 16.000 por persona")

	assert.True(t, v.LongEnough)
	assert.True(t, v.HasKeyword)
	assert.True(t, v.DatePhrase)
	assert.False(t, v.NumberedList)
	assert.True(t, v.Valid)

	short := Verdict("cancha")
	assert.Equal(t, 6, short.Length)
	assert.False(t, short.LongEnough)
	assert.False(t, short.HasKeyword, "signals are not evaluated below the length gate")
	assert.False(t, short.Valid)
}
