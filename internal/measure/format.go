package measure

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultDenominator is the usual tape granularity, 1/16".
const DefaultDenominator = 16

// Largest rounded unit count that a float64 still represents exactly.
const maxUnits = 1 << 53

// Display is a value rounded to the nearest 1/Den inch, split for a tape:
// Feet, whole Inches (0-11 when Feet is used) and a reduced Num/Den.
// Num is 0 when there is no fraction, and Den is then 1.
type Display struct {
	Neg    bool
	Feet   int64
	Inches int64
	Num    int64
	Den    int64
}

// Round rounds inches to the nearest 1/denom and carries into whole inches
// and feet. denom <= 0 selects DefaultDenominator.
func Round(inches float64, denom int) (Display, error) {
	neg, units, d, err := roundUnits(inches, denom)
	if err != nil {
		return Display{}, err
	}
	return split(neg, units, d, true), nil
}

// RoundInches is Round without the feet split.
func RoundInches(inches float64, denom int) (Display, error) {
	neg, units, d, err := roundUnits(inches, denom)
	if err != nil {
		return Display{}, err
	}
	return split(neg, units, d, false), nil
}

// RoundRational rounds an exact value with integer arithmetic, so large
// values do not pick up float error.
func RoundRational(r Rational, denom int) (Display, error) {
	d := denominator(denom)
	n := abs64(r.Num())
	scaled, err := mulChecked(n, d)
	if err != nil {
		return Round(r.Float64(), denom)
	}
	units, rem := scaled/r.Den(), scaled%r.Den()
	// Half away from zero, same as math.Round.
	if rem >= r.Den()-rem {
		units++
	}
	return split(r.Sign() < 0 && units != 0, units, d, true), nil
}

func denominator(denom int) int64 {
	if denom <= 0 {
		return DefaultDenominator
	}
	return int64(denom)
}

// roundUnits returns |inches| as a count of 1/d units.
func roundUnits(inches float64, denom int) (neg bool, units, d int64, err error) {
	d = denominator(denom)
	if math.IsNaN(inches) || math.IsInf(inches, 0) {
		return false, 0, d, ErrInvalidInput
	}
	scaled := math.Round(math.Abs(inches) * float64(d))
	if scaled >= maxUnits {
		return false, 0, d, ErrOverflow
	}
	units = int64(scaled)
	return inches < 0 && units != 0, units, d, nil
}

func split(neg bool, units, d int64, feet bool) Display {
	out := Display{Neg: neg, Den: 1}
	if feet {
		perFoot := 12 * d
		out.Feet = units / perFoot
		units %= perFoot
	}
	out.Inches = units / d
	if num := units % d; num != 0 {
		g := gcd(num, d)
		out.Num, out.Den = num/g, d/g
	}
	return out
}

// TotalInches converts the display back to decimal inches.
func (d Display) TotalInches() float64 {
	v := float64(d.Feet*12+d.Inches) + float64(d.Num)/float64(max(d.Den, 1))
	if d.Neg {
		return -v
	}
	return v
}

// String renders tape format. Feet are left out when zero; once feet are
// shown the whole inches are always shown: 2' 0 5/16", 1' 0", 10 1/2", 5/16".
func (d Display) String() string {
	var b strings.Builder
	if d.Neg {
		b.WriteByte('-')
	}
	if d.Feet > 0 {
		fmt.Fprintf(&b, "%d' %d", d.Feet, d.Inches)
		if d.Num != 0 {
			fmt.Fprintf(&b, " %d/%d", d.Num, d.Den)
		}
		b.WriteByte('"')
		return b.String()
	}
	b.WriteString(d.inchPart())
	b.WriteByte('"')
	return b.String()
}

// Fraction renders the value as a plain mixed number of inches without
// markers: "1 3/16", "3/16", "2".
func (d Display) Fraction() string {
	flat := d
	flat.Inches += flat.Feet * 12
	flat.Feet = 0
	if d.Neg {
		return "-" + flat.inchPart()
	}
	return flat.inchPart()
}

func (d Display) inchPart() string {
	switch {
	case d.Num == 0:
		return strconv.FormatInt(d.Inches, 10)
	case d.Inches == 0:
		return fmt.Sprintf("%d/%d", d.Num, d.Den)
	}
	return fmt.Sprintf("%d %d/%d", d.Inches, d.Num, d.Den)
}

// Format renders decimal inches as tape notation rounded to 1/denom.
// Values that cannot be rounded come back in decimal form.
func Format(inches float64, denom int) string {
	d, err := Round(inches, denom)
	if err != nil {
		return FormatDecimal(inches)
	}
	return d.String()
}

// FormatFraction renders decimal inches as "N D/D" rounded to 1/denom.
func FormatFraction(inches float64, denom int) string {
	d, err := RoundInches(inches, denom)
	if err != nil {
		return FormatDecimal(inches)
	}
	return d.Fraction()
}

// FormatRational renders an exact value as tape notation rounded to 1/denom.
func FormatRational(r Rational, denom int) string {
	d, err := RoundRational(r, denom)
	if err != nil {
		return FormatDecimal(r.Float64())
	}
	return d.String()
}

// FormatDecimal prints at most six decimals with trailing zeros trimmed.
func FormatDecimal(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(x, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
