package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/findergoal/internal/geo"
	"github.com/Veraticus/findergoal/internal/model"
	"github.com/Veraticus/findergoal/internal/roster"
)

const notDetected = "(no detectado)"

func field(label, value string) string {
	if value == "" {
		value = SubtleStyle.Render(notDetected)
	}
	return LabelStyle.Render(label) + value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatPrice renders a price with its currency, or empty for zero.
func FormatPrice(price float64, currency string) string {
	if price <= 0 {
		return ""
	}
	amount := strconv.FormatFloat(price, 'f', -1, 64)
	if currency == "" {
		return amount
	}
	return amount + " " + currency
}

// RenderValidation shows each validator signal.
func RenderValidation(v roster.Validation) string {
	check := func(ok bool, label string) string {
		if ok {
			return FormatSuccess(label)
		}
		return FormatError(label)
	}

	lines := []string{
		check(v.LongEnough, fmt.Sprintf("length %d (minimum %d)", v.Length, roster.MinRosterLength)),
		check(v.HasKeyword, "match keyword"),
		check(v.NumberedList, "numbered list"),
		check(v.DatePhrase, "date phrase"),
	}

	verdict := FormatError("does not look like a roster")
	if v.Valid {
		verdict = FormatSuccess("looks like a roster")
	}
	return strings.Join(lines, "\n") + "\n\n" + verdict
}

// RenderDraft shows an extraction with its derived fields for review.
func RenderDraft(d roster.MatchDraft) string {
	e := d.Extract

	format := d.Format
	if d.FormatDeduced {
		format += SubtleStyle.Render(" (según jugadores)")
	}

	capacity := strconv.Itoa(d.MaxPlayers.Count)
	if d.MaxPlayers.RoundedUp {
		capacity += WarningStyle.Render(" (redondeado a par)")
	}

	lines := []string{
		field(CalendarIcon+" Fecha", deref(e.Date)),
		field(ClockIcon+" Hora", deref(e.Time)),
		field(PinIcon+" Lugar", e.Location),
		field(BallIcon+" Formato", format),
		field(MoneyIcon+" Precio", FormatPrice(e.Price, e.Currency)),
	}
	if e.PriceDetail != "" {
		lines = append(lines, field("", SubtleStyle.Render(e.PriceDetail)))
	}
	lines = append(lines,
		field(PlayersIcon+" Cupos", fmt.Sprintf("%d/%s", len(e.Players), capacity)),
		"",
		renderPlayers(e.Players),
	)

	return RenderBox("Partido", lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// DraftWarnings lists what the user should check before submitting a draft.
func DraftWarnings(d roster.MatchDraft) []string {
	var warnings []string
	if d.Extract.Date == nil {
		warnings = append(warnings, FormatWarning("No se detectó la fecha"))
	}
	if d.Extract.Time == nil {
		warnings = append(warnings, FormatWarning("No se detectó la hora"))
	}
	if d.MaxPlayers.RoundedUp {
		warnings = append(warnings, FormatWarning(fmt.Sprintf("Cupos redondeados a %d", d.MaxPlayers.Count)))
	}
	return warnings
}

func renderPlayers(players []string) string {
	if len(players) == 0 {
		return SubtleStyle.Render("Sin jugadores")
	}
	rows := make([]string, len(players))
	for i, p := range players {
		rows[i] = fmt.Sprintf("%2d. %s", i+1, p)
	}
	return strings.Join(rows, "\n")
}

// RenderPitches lists pitches around a place.
func RenderPitches(result geo.SearchResult) string {
	title := FormatTitle(fmt.Sprintf("Canchas cerca de %s", result.Place.DisplayName))
	if len(result.Pitches) == 0 {
		return title + "\n" + FormatInfo("No pitches found nearby")
	}

	rows := [][]string{{"Nombre", "Superficie", "Distancia"}}
	for _, p := range result.Pitches {
		rows = append(rows, []string{p.Name, p.Surface, formatDistance(p.DistanceMeters)})
	}
	return title + "\n" + renderTable(rows)
}

func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// RenderMatches lists matches as a table.
func RenderMatches(matches []model.Match) string {
	if len(matches) == 0 {
		return FormatInfo("No matches")
	}

	rows := [][]string{{"ID", "Fecha", "Hora", "Lugar", "Formato", "Cupos", "Estado"}}
	for _, m := range matches {
		rows = append(rows, []string{
			m.ID,
			m.Date,
			m.Time,
			m.Location,
			m.Format,
			fmt.Sprintf("%d/%d", len(m.Players), m.MaxPlayers),
			string(m.Status),
		})
	}
	return renderTable(rows)
}

// renderTable pads columns to their widest cell; the first row is the header.
func renderTable(rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := TableCellStyle
			if r == 0 {
				style = TableHeaderStyle
			}
			cells[i] = style.Width(widths[i] + 2).Render(cell)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
