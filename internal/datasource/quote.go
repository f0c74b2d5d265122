package datasource

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseQuote converts quote text such as "25,430.50" to a float.
// Thousands separators and whitespace are dropped; the result must be
// a positive finite number.
func ParseQuote(text string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadQuote)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadQuote, text)
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q is not a positive rate", ErrBadQuote, text)
	}
	return v, nil
}
