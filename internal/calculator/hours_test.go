package calculator

import (
	"math"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-6

func TestThresholds_Shape(t *testing.T) {
	require.Len(t, Thresholds, 182)
	assert.Equal(t, Threshold{Amount: 1.00, Hour: 1}, Thresholds[0])
	assert.Equal(t, 3182347.12, Thresholds[len(Thresholds)-1].Amount)

	for i := 1; i < len(Thresholds); i++ {
		assert.Greater(t, Thresholds[i].Amount, Thresholds[i-1].Amount, "index %d", i)
		assert.Equal(t, i+1, Thresholds[i].Hour)
	}
}

func TestThresholds_MatchGrowthSeries(t *testing.T) {
	for _, th := range Thresholds {
		assert.InDelta(t, RequiredTotalForHour(th.Hour), th.Amount, 0.01, "hour %d", th.Hour)
	}
	assert.InDelta(t, 1.07, HourCost(1), eps)
	assert.InDelta(t, RequiredTotalForHour(5)-RequiredTotalForHour(4), HourCost(4), eps)
}

func TestFloorCeiling(t *testing.T) {
	_, ok := Floor(0.99)
	assert.False(t, ok)

	th, ok := Floor(1.00)
	require.True(t, ok)
	assert.Equal(t, 1, th.Hour)

	th, ok = Floor(2.06)
	require.True(t, ok)
	assert.Equal(t, 1, th.Hour)

	th, ok = Ceiling(0)
	require.True(t, ok)
	assert.Equal(t, 1, th.Hour)

	th, ok = Ceiling(2.07)
	require.True(t, ok)
	assert.Equal(t, 2, th.Hour)

	th, ok = Ceiling(2.08)
	require.True(t, ok)
	assert.Equal(t, 3, th.Hour)

	_, ok = Ceiling(3182347.13)
	assert.False(t, ok)
}

func TestTotalHours_Scenarios(t *testing.T) {
	cases := []struct {
		name    string
		current float64
		want    int
	}{
		{"zero", 0, 0},
		{"below first hour", 0.50, 0},
		{"exactly first hour", 1.00, 1},
		{"exactly second hour", 2.07, 2},
		{"between hours", 2.50, 2},
		{"negative clamps to zero", -10, 0},
		{"last table entry", 3182347.12, 182},
		{"between last entry and overflow", 3182347.90, 182},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalHoursForDonationAmount(tc.current))
		})
	}
}

func TestTotalHours_TableAgreement(t *testing.T) {
	for _, th := range Thresholds {
		assert.Equal(t, th.Hour, TotalHoursForDonationAmount(th.Amount), "at %.2f", th.Amount)
		assert.Equal(t, th.Hour-1, TotalHoursForDonationAmount(th.Amount-0.001), "just below %.2f", th.Amount)
	}
}

func TestTotalHours_Monotonic(t *testing.T) {
	prev := 0
	for x := 0.0; x < 5_000_000; x = x*1.013 + 0.37 {
		got := TotalHoursForDonationAmount(x)
		require.GreaterOrEqual(t, got, prev, "at %.2f", x)
		prev = got
	}
}

func TestTotalHours_FallbackContinuity(t *testing.T) {
	limit := OverflowThreshold()
	assert.InDelta(t, 3182348.12, limit, eps)

	below := TotalHoursForDonationAmount(math.Nextafter(limit, 0))
	at := TotalHoursForDonationAmount(limit)
	above := TotalHoursForDonationAmount(limit + 0.01)
	assert.LessOrEqual(t, below, at)
	assert.LessOrEqual(t, at, above)
	assert.Equal(t, 182, at)
}

func TestTotalHours_FallbackIsFlagged(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	assert.Equal(t, 183, TotalHoursForDonationAmount(3405112.42))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 3405112.42, hook.LastEntry().Data["donations"])

	assert.Equal(t, 198, TotalHoursForDonationAmount(10_000_000))
	assert.True(t, InFallback(10_000_000))
	assert.False(t, InFallback(3182347.12))
}

func TestTotalHours_InTableDoesNotWarn(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	TotalHoursForDonationAmount(500)
	assert.Empty(t, hook.AllEntries())
}

func TestToNextHour_Scenarios(t *testing.T) {
	assert.InDelta(t, 1.00, ToNextHourFromDonationAmount(0), eps)
	assert.InDelta(t, 1.07, ToNextHourFromDonationAmount(1.00), eps)
	assert.InDelta(t, 0.57, ToNextHourFromDonationAmount(1.50), eps)
	assert.InDelta(t, 1.14, ToNextHourFromDonationAmount(2.07), eps)
	assert.InDelta(t, 1.00, ToNextHourFromDonationAmount(-3), eps)
}

func TestToNextHour_NonZeroAtThresholds(t *testing.T) {
	for i := 0; i < len(Thresholds)-1; i++ {
		cur, next := Thresholds[i].Amount, Thresholds[i+1].Amount
		got := ToNextHourFromDonationAmount(cur)
		assert.InDelta(t, next-cur, got, eps, "at %.2f", cur)
		assert.InDelta(t, 0.01, ToNextHourFromDonationAmount(cur-0.01), eps, "just below %.2f", cur)
	}
}

func TestToNextHour_RoundTrip(t *testing.T) {
	for x := 0.0; x < Thresholds[len(Thresholds)-2].Amount; x = x*1.021 + 0.11 {
		hours := TotalHoursForDonationAmount(x)
		reached := TotalHoursForDonationAmount(x + ToNextHourFromDonationAmount(x) + eps)
		require.Equal(t, hours+1, reached, "at %.2f", x)
	}
}

func TestToNextHour_PastTable(t *testing.T) {
	current := 3182347.50
	assert.InDelta(t, RequiredTotalForHour(183)-current, ToNextHourFromDonationAmount(current), eps)

	assert.InDelta(t, RequiredTotalForHour(199)-10_000_000, ToNextHourFromDonationAmount(10_000_000), eps)
	assert.Greater(t, ToNextHourFromDonationAmount(10_000_000), 0.0)
}

func TestToNextHour_PositiveOnSeriesBoundaries(t *testing.T) {
	assert.Greater(t, ToNextHourFromDonationAmount(3405112.416949), 0.0)

	for h := 183; h < 400; h++ {
		x := RequiredTotalForHour(h)
		for _, v := range []float64{math.Nextafter(x, 0), x, math.Nextafter(x, math.Inf(1))} {
			require.Greater(t, ToNextHourFromDonationAmount(v), 0.0, "hour %d at %f", h, v)
		}
	}
}

func TestToNextHour_ExactLastEntrySkipsTwoHours(t *testing.T) {
	last := Thresholds[len(Thresholds)-1].Amount
	assert.InDelta(t, RequiredTotalForHour(184)-last, ToNextHourFromDonationAmount(last), eps)
}

func TestConvert(t *testing.T) {
	c := Convert(5.75)
	assert.Equal(t, 5, c.TotalHours)
	assert.InDelta(t, 1.40, c.ToNextHour, eps)
	assert.False(t, c.Fallback)

	c = Convert(4_000_000)
	assert.True(t, c.Fallback)
	assert.Greater(t, c.TotalHours, 182)
}

func TestConvert_Concurrent(t *testing.T) {
	want := Convert(1234.56)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Equal(t, want, Convert(1234.56))
			}
		}()
	}
	wg.Wait()
}
