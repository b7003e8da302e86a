package notifier

import (
	"fmt"
	"html"
	"strings"

	"DBWidget/internal/calculator"
	"DBWidget/internal/model"
	"DBWidget/internal/widget"
)

// FormatBanner formats the rendered banner into a Telegram message.
func FormatBanner(b widget.Banner) string {
	var sb strings.Builder

	name := b.Shift.Name()
	if name == "" {
		name = "Desert Bus"
	}
	sb.WriteString(fmt.Sprintf("%s <b>Desert Bus for Hope</b> | %s\n\n", b.Shift.Emoji(), name))

	if b.Phase == widget.PhaseNoData {
		if b.Status != "" {
			sb.WriteString(fmt.Sprintf("⚠️ %s\n", html.EscapeString(b.Status)))
		} else {
			sb.WriteString("Waiting for the first update...\n")
		}
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("💰 <b>%s</b>\n", b.Total))
	sb.WriteString(fmt.Sprintf("🚌 %s\n", b.Hours))
	if b.ToNextHour != "" {
		sb.WriteString(fmt.Sprintf("⏭ %s\n", b.ToNextHour))
	}
	if b.Fallback {
		sb.WriteString("\n<i>Past the end of the lookup table, hour figures are estimates</i>\n")
	}
	if b.Stale != "" {
		sb.WriteString(fmt.Sprintf("\n⚠️ %s\n", b.Stale))
	}
	return sb.String()
}

// FormatHourUnlocked announces that the total has bought more bus time.
func FormatHourUnlocked(prevHours int, data *model.ResultData) string {
	gained := data.TotalHours - prevHours
	var b strings.Builder
	if gained == 1 {
		b.WriteString("🎉 <b>Another hour unlocked!</b>\n\n")
	} else {
		b.WriteString(fmt.Sprintf("🎉 <b>%d more hours unlocked!</b>\n\n", gained))
	}
	b.WriteString(fmt.Sprintf("Total: %s\n", widget.FormatDollars(data.CurrentDonations)))
	b.WriteString(fmt.Sprintf("Hours: %d\n", data.TotalHours))
	b.WriteString(fmt.Sprintf("Next hour: %s more\n", widget.FormatDollars(data.CostToNextHour)))
	return b.String()
}

// FormatConversion answers an ad-hoc "what would X buy" query.
func FormatConversion(amount float64, c calculator.Conversion) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧮 %s buys <b>%d</b> hours\n", widget.FormatDollars(amount), c.TotalHours))
	b.WriteString(fmt.Sprintf("Next hour needs %s more\n", widget.FormatDollars(c.ToNextHour)))
	if c.Fallback {
		b.WriteString("<i>Estimated, past the end of the lookup table</i>\n")
	}
	return b.String()
}
