package roster

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the extraction instruction for normalized roster text.
// targetYear is the year the model must assume when the text gives none.
func BuildPrompt(normalized string, targetYear int) string {
	var b strings.Builder

	b.WriteString("Eres un asistente que extrae datos de partidos de fútbol a partir de mensajes de WhatsApp.\n")
	b.WriteString("Analiza el siguiente texto y devuelve ÚNICAMENTE un objeto JSON con exactamente estos campos:\n\n")
	b.WriteString("{\n")
	b.WriteString(`  "fecha": "YYYY-MM-DD",` + "\n")
	b.WriteString(`  "hora": "HH:MM (formato 24 horas)",` + "\n")
	b.WriteString(`  "ubicacion": "nombre o dirección de la cancha",` + "\n")
	b.WriteString(`  "tipoFutbol": "formato del partido, por ejemplo 7v7",` + "\n")
	b.WriteString(`  "precio": número sin símbolos ni separadores,` + "\n")
	b.WriteString(`  "moneda": "código de moneda, por ejemplo COP, USD o EUR",` + "\n")
	b.WriteString(`  "detallePrecio": "la frase exacta del texto donde aparece el precio",` + "\n")
	b.WriteString(`  "jugadores": ["nombre 1", "nombre 2"]` + "\n")
	b.WriteString("}\n\n")
	b.WriteString("Reglas:\n")
	b.WriteString("- Si un campo no aparece en el texto, devuélvelo como null.\n")
	fmt.Fprintf(&b, "- Si la fecha no menciona el año, asume el año %d.\n", targetYear)
	b.WriteString("- Los jugadores deben aparecer en el mismo orden del texto, sin omitir repetidos.\n")
	b.WriteString("- No agregues explicaciones ni texto fuera del JSON.\n\n")
	b.WriteString("Texto:\n")
	b.WriteString(normalized)

	return b.String()
}
