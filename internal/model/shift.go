package model

import "time"

// Shift is one of the named Desert Bus shifts.
type Shift string

const (
	ShiftDawnGuard   Shift = "dawn_guard"
	ShiftAlphaFlight Shift = "alpha_flight"
	ShiftNightWatch  Shift = "night_watch"
	ShiftZeta        Shift = "zeta_shift"
	ShiftOmega       Shift = "omega_shift"
)

// ShiftZone is the zone shift boundaries are defined in.
const ShiftZone = "America/Los_Angeles"

var shiftNames = map[Shift]string{
	ShiftDawnGuard:   "Dawn Guard",
	ShiftAlphaFlight: "Alpha Flight",
	ShiftNightWatch:  "Night Watch",
	ShiftZeta:        "Zeta Shift",
	ShiftOmega:       "Omega Shift",
}

var shiftEmoji = map[Shift]string{
	ShiftDawnGuard:   "🌅",
	ShiftAlphaFlight: "☀️",
	ShiftNightWatch:  "🌙",
	ShiftZeta:        "🌌",
	ShiftOmega:       "🏁",
}

var shiftColors = map[Shift]string{
	ShiftDawnGuard:   "#F39C12",
	ShiftAlphaFlight: "#C0392B",
	ShiftNightWatch:  "#2C3E50",
	ShiftZeta:        "#8E44AD",
	ShiftOmega:       "#7F8C8D",
}

// Name returns the display name.
func (s Shift) Name() string { return shiftNames[s] }

// Emoji returns the banner glyph.
func (s Shift) Emoji() string { return shiftEmoji[s] }

// Color returns the banner background colour as #RRGGBB.
func (s Shift) Color() string { return shiftColors[s] }

// ShiftAt returns the clock shift for t in Pacific time. It never returns ShiftOmega.
func ShiftAt(t time.Time, loc *time.Location) Shift {
	switch h := t.In(loc).Hour(); {
	case h < 6:
		return ShiftZeta
	case h < 12:
		return ShiftDawnGuard
	case h < 18:
		return ShiftAlphaFlight
	default:
		return ShiftNightWatch
	}
}

// PacificLocation loads ShiftZone, falling back to a fixed UTC-8 zone.
func PacificLocation() *time.Location {
	loc, err := time.LoadLocation(ShiftZone)
	if err != nil {
		return time.FixedZone("PST", -8*60*60)
	}
	return loc
}
