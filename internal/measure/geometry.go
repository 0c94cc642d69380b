package measure

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Triangle is a right triangle laid out from a rise and a run, in inches.
type Triangle struct {
	Rise     float64
	Run      float64
	Diagonal float64
	Degrees  float64
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// Diagonal is the hypotenuse of sides a and b. Both must be positive.
func Diagonal(a, b float64) (float64, error) {
	if !positive(a) || !positive(b) {
		return 0, ErrInvalidInput
	}
	return math.Hypot(a, b), nil
}

// AngleDegrees is atan(rise/run) in degrees. run must be positive and rise
// non-negative.
func AngleDegrees(rise, run float64) (float64, error) {
	if !positive(run) || rise < 0 || math.IsNaN(rise) || math.IsInf(rise, 0) {
		return 0, ErrInvalidInput
	}
	return math.Atan2(rise, run) * 180 / math.Pi, nil
}

// Solve returns the diagonal and angle for a rise over a run.
func Solve(rise, run float64) (Triangle, error) {
	deg, err := AngleDegrees(rise, run)
	if err != nil {
		return Triangle{}, err
	}
	return Triangle{Rise: rise, Run: run, Diagonal: math.Hypot(rise, run), Degrees: deg}, nil
}

// RafterLength is the sloped length over a horizontal run for a roof that
// rises risePer12 inches per foot.
func RafterLength(run, risePer12 float64) (float64, error) {
	t, err := Solve(run*risePer12/12, run)
	if err != nil {
		return 0, err
	}
	return t.Diagonal, nil
}

// The rise is greedy so "7 1/2/12" splits at the last slash.
var pitchPattern = regexp.MustCompile(`^(.+)(?:[:/]|\s+in\s+)\s*(\d+(?:\.\d+)?)$`)

// ParsePitch reads a roof pitch written "6/12", "6:12" or "6 in 12". The
// rise may use any tape notation; the run is a plain number.
func ParsePitch(s string) (rise, run float64, err error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, 0, parseErr(s, ErrEmptyInput)
	}
	m := pitchPattern.FindStringSubmatch(in)
	if m == nil {
		return 0, 0, parseErr(s, ErrInvalidFormat)
	}
	rise, err = ParseInches(strings.TrimSpace(m[1]))
	if err != nil {
		return 0, 0, err
	}
	run, err = strconv.ParseFloat(m[2], 64)
	if err != nil || !positive(run) {
		return 0, 0, parseErr(s, fmt.Errorf("run: %w", ErrInvalidInput))
	}
	if rise < 0 {
		return 0, 0, parseErr(s, fmt.Errorf("rise: %w", ErrInvalidInput))
	}
	return rise, run, nil
}
