package converter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rate  float64
		want  string
	}{
		{"whole dollars", "100\n", 25000.00, "100.00 USD = 2,500,000.00 VND\n"},
		{"cents", "12.5\n", 25430.5, "12.50 USD = 317,881.25 VND\n"},
		{"padded", "  1  \n", 25430.5, "1.00 USD = 25,430.50 VND\n"},
		{"no trailing newline", "2", 25000, "2.00 USD = 50,000.00 VND\n"},
		{"windows newline", "3\r\n", 25000, "3.00 USD = 75,000.00 VND\n"},
		{"negative", "-4", 25000, "-4.00 USD = -100,000.00 VND\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := New(strings.NewReader(tt.input), &out).Run(tt.rate)
			require.NoError(t, err)
			assert.Equal(t, Prompt+tt.want, out.String())
		})
	}
}

func TestRunInvalidInput(t *testing.T) {
	for _, input := range []string{"abc\n", "\n", "", "12,5\n", "1e\n"} {
		t.Run(strings.TrimSpace(input), func(t *testing.T) {
			var out bytes.Buffer
			err := New(strings.NewReader(input), &out).Run(25000)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, Prompt, out.String(), "nothing but the prompt should be printed")
		})
	}
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount(" 0.1 ")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.1")))

	_, err = ParseAmount("ten")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConvertIsExactForDecimalInputs(t *testing.T) {
	// 0.1 * 3 would drift in float64 arithmetic.
	got := Convert(decimal.RequireFromString("0.1"), 3)
	assert.Equal(t, "0.3", got.String())
}
