// Package estimate turns dimensions in inches into rough material counts.
// Every formula is linear; inputs are validated and nothing is stored.
package estimate

import (
	"fmt"
	"math"

	"github.com/idilsaglam/tapecalc/internal/measure"
)

// Estimate is one line of a take-off, ready to go on the materials list.
type Estimate struct {
	Name     string
	Quantity float64
	Unit     string
	Detail   string
}

func (e Estimate) String() string {
	return fmt.Sprintf("%s: %s %s (%s)", e.Name, measure.FormatDecimal(e.Quantity), e.Unit, e.Detail)
}

// ceil ignores float dust so 10.0000000001 boards stays 10.
func ceil(x float64) int {
	return int(math.Ceil(x - 1e-9))
}

func requirePositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be positive: %w", name, measure.ErrInvalidInput)
	}
	return nil
}

func requireNonNegative(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must not be negative: %w", name, measure.ErrInvalidInput)
	}
	return nil
}

// AreaSqFt converts a length and width in inches to square feet.
func AreaSqFt(lengthIn, widthIn float64) (float64, error) {
	if err := requirePositive("length", lengthIn); err != nil {
		return 0, err
	}
	if err := requirePositive("width", widthIn); err != nil {
		return 0, err
	}
	return lengthIn * widthIn / 144, nil
}

func withWaste(v, wastePct float64) float64 { return v * (1 + wastePct/100) }

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
