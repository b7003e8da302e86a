package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2.07", 2.07},
		{"$2.07", 2.07},
		{" 5,000,000 ", 5_000_000},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, in := range []string{"", "lots", "-4", "Inf", "+Inf", "-inf", "infinity", "NaN", "nan", "1e400"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount(0))
	assert.True(t, ValidAmount(3182347.12))
	assert.False(t, ValidAmount(-0.01))
	assert.False(t, ValidAmount(math.Inf(1)))
	assert.False(t, ValidAmount(math.NaN()))
}
