package measure

import (
	"fmt"
	"math"
)

// Rational is an exact fraction kept in lowest terms with a positive
// denominator. Values are immutable; every operation returns a new one.
// The zero value is 0.
type Rational struct {
	num int64
	den int64
}

// Int returns n/1.
func Int(n int64) Rational { return Rational{num: n, den: 1} }

// New reduces n/d. A zero denominator fails with ErrDivisionByZero.
func New(n, d int64) (Rational, error) {
	if d == 0 {
		return Rational{}, ErrDivisionByZero
	}
	if n == math.MinInt64 || d == math.MinInt64 {
		return Rational{}, ErrOverflow
	}
	if d < 0 {
		n, d = -n, -d
	}
	g := gcd(n, d)
	return Rational{num: n / g, den: d / g}, nil
}

// Reduce is New under the name the calculator tabs use.
func Reduce(n, d int64) (Rational, error) { return New(n, d) }

// MustNew panics on error. Only for constants known to be valid.
func MustNew(n, d int64) Rational {
	r, err := New(n, d)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rational) Num() int64 { return r.num }

// Den is always positive for a constructed value.
func (r Rational) Den() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

func (r Rational) Float64() float64 { return float64(r.num) / float64(r.Den()) }

func (r Rational) IsZero() bool { return r.num == 0 }

func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	}
	return 0
}

func (r Rational) Neg() Rational { return Rational{num: -r.num, den: r.Den()} }

func (r Rational) Abs() Rational {
	if r.num < 0 {
		return r.Neg()
	}
	return Rational{num: r.num, den: r.Den()}
}

// Equal compares reduced forms.
func (r Rational) Equal(b Rational) bool { return r.num == b.num && r.Den() == b.Den() }

// Cmp returns -1, 0 or +1. Falls back to float comparison when the cross
// products overflow.
func (r Rational) Cmp(b Rational) int {
	l, err1 := mulChecked(r.num, b.Den())
	rr, err2 := mulChecked(b.num, r.Den())
	if err1 != nil || err2 != nil {
		x, y := r.Float64(), b.Float64()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	switch {
	case l < rr:
		return -1
	case l > rr:
		return 1
	}
	return 0
}

// String renders "n/d", or "n" for whole values.
func (r Rational) String() string {
	if r.Den() == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.Den())
}

// Mixed renders the exact value as a mixed number: "1 3/16", "3/16", "-2".
func (r Rational) Mixed() string {
	d := r.Den()
	sign := ""
	n := r.num
	if n < 0 {
		sign = "-"
		n = -n
	}
	whole, rem := n/d, n%d
	switch {
	case rem == 0:
		return fmt.Sprintf("%s%d", sign, whole)
	case whole == 0:
		return fmt.Sprintf("%s%d/%d", sign, rem, d)
	}
	return fmt.Sprintf("%s%d %d/%d", sign, whole, rem, d)
}

func (r Rational) Add(b Rational) (Rational, error) {
	n1, err := mulChecked(r.num, b.Den())
	if err != nil {
		return Rational{}, err
	}
	n2, err := mulChecked(b.num, r.Den())
	if err != nil {
		return Rational{}, err
	}
	n, err := addChecked(n1, n2)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulChecked(r.Den(), b.Den())
	if err != nil {
		return Rational{}, err
	}
	return New(n, d)
}

func (r Rational) Sub(b Rational) (Rational, error) {
	n1, err := mulChecked(r.num, b.Den())
	if err != nil {
		return Rational{}, err
	}
	n2, err := mulChecked(b.num, r.Den())
	if err != nil {
		return Rational{}, err
	}
	n, err := subChecked(n1, n2)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulChecked(r.Den(), b.Den())
	if err != nil {
		return Rational{}, err
	}
	return New(n, d)
}

func (r Rational) Mul(b Rational) (Rational, error) {
	n, err := mulChecked(r.num, b.num)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulChecked(r.Den(), b.Den())
	if err != nil {
		return Rational{}, err
	}
	return New(n, d)
}

// Div returns the unitless ratio r/b. Dividing by zero fails with
// ErrDivisionByZero; the result never holds Inf or NaN.
func (r Rational) Div(b Rational) (Rational, error) {
	if b.num == 0 {
		return Rational{}, ErrDivisionByZero
	}
	n, err := mulChecked(r.num, b.Den())
	if err != nil {
		return Rational{}, err
	}
	d, err := mulChecked(r.Den(), b.num)
	if err != nil {
		return Rational{}, err
	}
	return New(n, d)
}

// Op applies one of the arithmetic operators "+", "-", "*", "x" or "/".
func (r Rational) Op(op string, b Rational) (Rational, error) {
	switch op {
	case "+":
		return r.Add(b)
	case "-", "−":
		return r.Sub(b)
	case "*", "x", "X", "×":
		return r.Mul(b)
	case "/", "÷":
		return r.Div(b)
	}
	return Rational{}, fmt.Errorf("operator %q: %w", op, ErrInvalidInput)
}

// gcd of |a| and |b|; gcd(0, 0) is 1 so a zero value still reduces.
func gcd(a, b int64) int64 {
	a, b = abs64(a), abs64(b)
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func addChecked(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func subChecked(a, b int64) (int64, error) {
	if b == math.MinInt64 {
		return 0, ErrOverflow
	}
	return addChecked(a, -b)
}

func mulChecked(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		return 0, ErrOverflow
	}
	if abs64(a) > math.MaxInt64/abs64(b) {
		return 0, ErrOverflow
	}
	return a * b, nil
}
