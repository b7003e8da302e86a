// Package widget turns the last result event into the banner fields the
// old home-screen widget showed.
package widget

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"DBWidget/internal/model"
)

// StaleAfter is how old data must be before an error run shows when it was last fresh.
const StaleAfter = 10 * time.Minute

// Phase is where now sits relative to the known run.
type Phase string

const (
	PhaseNoData   Phase = "no_data"
	PhaseUpcoming Phase = "upcoming"
	PhaseLive     Phase = "live"
	PhaseEnded    Phase = "ended"
)

const (
	StatusNoConnection = "No network connection"
	StatusGeneralError = "Something went wrong fetching data"
)

// Banner holds the rendered text lines. Empty strings are hidden lines.
type Banner struct {
	Shift      model.Shift `json:"shift"`
	Phase      Phase       `json:"phase"`
	Total      string      `json:"total,omitempty"`
	Hours      string      `json:"hours,omitempty"`
	ToNextHour string      `json:"to_next_hour,omitempty"`
	Status     string      `json:"status,omitempty"`
	Stale      string      `json:"stale,omitempty"`
	Fallback   bool        `json:"fallback,omitempty"`
}

// Render builds the banner for evt at now. loc is the zone shifts are judged in.
func Render(evt *model.ResultEvent, now time.Time, loc *time.Location) Banner {
	var data *model.ResultData
	if evt != nil {
		data = evt.Data
	}

	b := Banner{Shift: model.ShiftAt(now, loc)}
	if data != nil && data.OmegaShift {
		b.Shift = model.ShiftOmega
	}

	if data == nil {
		b.Phase = PhaseNoData
		switch {
		case evt == nil:
		case evt.Kind == model.EventErrorNoConnection:
			b.Status = StatusNoConnection
		case evt.Kind == model.EventErrorGeneral:
			b.Status = StatusGeneralError
		}
		return b
	}

	b.Total = FormatDollars(data.CurrentDonations)
	b.Fallback = data.Fallback

	switch {
	case now.After(data.EndPlusThankYou()):
		b.Phase = PhaseEnded
		b.Hours = fmt.Sprintf("Bussed %s", pluralHours(data.TotalHours))
	case now.Before(data.RunStart):
		b.Phase = PhaseUpcoming
		b.Hours = "Bus starts in " + strings.TrimSpace(humanize.RelTime(now, data.RunStart, "", ""))
		b.ToNextHour = toNextLine(data.CostToNextHour)
	default:
		b.Phase = PhaseLive
		elapsed := int(now.Sub(data.RunStart) / time.Hour)
		b.Hours = fmt.Sprintf("Hour %d of %d", elapsed, data.TotalHours)
		b.ToNextHour = toNextLine(data.CostToNextHour)
		if evt.IsError() && now.Sub(data.FetchedAt) > StaleAfter {
			b.Stale = fmt.Sprintf("Data last updated %s", humanize.RelTime(data.FetchedAt, now, "ago", "from now"))
		}
	}
	return b
}

// FormatDollars renders v as $#,###.##.
func FormatDollars(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func toNextLine(cost float64) string {
	return FormatDollars(cost) + " to next hour"
}

func pluralHours(n int) string {
	if n == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", n)
}
