// Package converter reads a USD amount from the user and prints its VND value.
package converter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/vndrate/pkg/utils"
)

// Prompt is written before reading the amount.
const Prompt = "Input USD: "

// ErrInvalidInput is returned when the amount is not a number.
var ErrInvalidInput = errors.New("invalid input")

// Converter prompts on out and reads one line from in.
type Converter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a converter.
func New(in io.Reader, out io.Writer) *Converter {
	return &Converter{in: bufio.NewReader(in), out: out}
}

// Run prompts for a USD amount and prints "<usd> USD = <vnd> VND".
// Nothing is printed after the prompt if the amount is invalid.
func (c *Converter) Run(rate float64) error {
	if _, err := fmt.Fprint(c.out, Prompt); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read amount: %w", err)
	}

	usd, err := ParseAmount(line)
	if err != nil {
		return err
	}

	vnd := Convert(usd, rate)
	if _, err := fmt.Fprintf(c.out, "%s USD = %s VND\n", utils.FormatAmount(usd), utils.FormatAmount(vnd)); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// ParseAmount parses a decimal amount, ignoring surrounding whitespace.
func ParseAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return d, nil
}

// Convert multiplies a USD amount by the VND-per-USD rate.
func Convert(usd decimal.Decimal, rate float64) decimal.Decimal {
	return usd.Mul(decimal.NewFromFloat(rate))
}
