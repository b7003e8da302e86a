package calculator

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"
)

const (
	// GrowthRate is the per-hour cost increase the threshold table was generated with.
	GrowthRate = 0.07
	// GrowthFactor is the cost multiplier from one hour to the next.
	GrowthFactor = 1 + GrowthRate

	// nudge pushes an exact threshold match past itself so the next hour is reported.
	nudge = 0.10
)

// Threshold is the minimum cumulative donation needed to unlock Hour.
type Threshold struct {
	Amount float64
	Hour   int
}

// Conversion bundles both derived values for one donation total.
type Conversion struct {
	TotalHours int
	ToNextHour float64
	// Fallback is set when the total is past the table and the values are approximations.
	Fallback bool
}

// Floor returns the greatest threshold with Amount <= x.
func Floor(x float64) (Threshold, bool) {
	i := sort.Search(len(Thresholds), func(i int) bool { return Thresholds[i].Amount > x })
	if i == 0 {
		return Threshold{}, false
	}
	return Thresholds[i-1], true
}

// Ceiling returns the least threshold with Amount >= x.
func Ceiling(x float64) (Threshold, bool) {
	i := sort.Search(len(Thresholds), func(i int) bool { return Thresholds[i].Amount >= x })
	if i == len(Thresholds) {
		return Threshold{}, false
	}
	return Thresholds[i], true
}

// OverflowThreshold is the total at which hour counts switch to the closed-form estimate.
func OverflowThreshold() float64 {
	return Thresholds[len(Thresholds)-1].Amount + 1
}

// InFallback reports whether current is past the lookup table.
func InFallback(current float64) bool {
	return clamp(current) >= OverflowThreshold()
}

// RequiredTotalForHour is the cumulative donation needed for hour under 7% growth.
func RequiredTotalForHour(hour int) float64 {
	return (1 - math.Pow(GrowthFactor, float64(hour))) / -GrowthRate
}

// HourCost is the donation needed on top of the previous hour's total to add hour+1.
func HourCost(hour int) float64 {
	return math.Pow(GrowthFactor, float64(hour))
}

// TotalHoursForDonationAmount returns the whole hours unlocked by the donation total.
// Totals past the lookup table are estimated and may lose accuracy.
func TotalHoursForDonationAmount(current float64) int {
	current = clamp(current)
	if current >= OverflowThreshold() {
		log.WithFields(log.Fields{
			"donations":   current,
			"table_hours": len(Thresholds),
		}).Warn("[CALC] donations are past the end of the lookup table, hour count may not be accurate")
		return int(math.Floor(math.Log(1+GrowthRate*current) / math.Log(GrowthFactor)))
	}

	t, ok := Floor(current)
	if !ok {
		return 0
	}
	return t.Hour
}

// ToNextHourFromDonationAmount returns how much more must be donated to unlock
// the next hour. A total sitting exactly on a threshold reports the following
// hour's requirement rather than zero.
func ToNextHourFromDonationAmount(current float64) float64 {
	current = clamp(current)

	t, ok := Ceiling(current)
	if !ok {
		return closedFormToNext(current, TotalHoursForDonationAmount(current)+1)
	}

	if t.Amount <= current {
		t, ok = Ceiling(current + nudge)
		if !ok {
			return closedFormToNext(current, TotalHoursForDonationAmount(current)+2)
		}
	}

	return t.Amount - current
}

// closedFormToNext returns the amount still needed for hour. The log-based hour
// count can land one short on a series boundary, so hours that are already
// paid for are skipped.
func closedFormToNext(current float64, hour int) float64 {
	need := RequiredTotalForHour(hour) - current
	for need <= 0 {
		hour++
		need = RequiredTotalForHour(hour) - current
	}
	return need
}

// Convert computes both derived values for current.
func Convert(current float64) Conversion {
	return Conversion{
		TotalHours: TotalHoursForDonationAmount(current),
		ToNextHour: ToNextHourFromDonationAmount(current),
		Fallback:   InFallback(current),
	}
}

func clamp(current float64) float64 {
	if current < 0 || math.IsNaN(current) {
		return 0
	}
	return current
}
