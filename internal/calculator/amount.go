package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned for donation amounts that are not finite and non-negative.
var ErrInvalidAmount = errors.New("amount must be a non-negative number")

// ValidAmount reports whether v is a finite, non-negative donation amount.
func ValidAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ParseAmount parses user input like "$1,234.56". "Inf" and "NaN" are rejected.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !ValidAmount(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}
