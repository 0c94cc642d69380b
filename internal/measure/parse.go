package measure

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Measurement is a parsed length in inches. Inches is always set; Exact is
// set too unless a decimal token had more precision than int64 can carry.
type Measurement struct {
	Inches  float64
	Exact   Rational
	IsExact bool
}

var (
	quoteReplacer = strings.NewReplacer(
		"’’", `"`, "′′", `"`,
		"’", "'", "‘", "'", "′", "'", "´", "'",
		"″", `"`, "“", `"`, "”", `"`, "‶", `"`,
		"''", `"`,
		",", "",
	)
	feetWord   = regexp.MustCompile(`(?i)\s*(?:feet|foot|ft)\.?`)
	inchesWord = regexp.MustCompile(`(?i)\s*(?:inches|inch|in)\.?`)

	intToken      = regexp.MustCompile(`^\d+$`)
	decimalToken  = regexp.MustCompile(`^(?:\d+\.\d*|\.\d+)$`)
	fractionToken = regexp.MustCompile(`^(\d+)/(\d+)$`)
)

// Normalize rewrites carpenter notation to the ASCII form the parser reads:
// fullwidth digits narrowed, smart quotes and primes turned into ' and ",
// feet/inch words turned into markers, commas dropped, whitespace collapsed.
func Normalize(s string) string {
	s = width.Narrow.String(s)
	s = quoteReplacer.Replace(s)
	s = feetWord.ReplaceAllString(s, "'")
	s = inchesWord.ReplaceAllString(s, `"`)
	return strings.Join(strings.Fields(s), " ")
}

// Parse reads tape notation such as `7' 10 7/8"`, `1 3/8`, `0.125` or
// `-2' 3/8"`. A leading sign applies to the whole measurement.
func Parse(input string) (Measurement, error) {
	t, err := parse(input)
	if err != nil {
		return Measurement{}, parseErr(input, err)
	}
	m := Measurement{Inches: t.f, IsExact: t.exact}
	if t.exact {
		m.Exact = t.r
		m.Inches = t.r.Float64()
	}
	return m, nil
}

// ParseInches returns the measurement as decimal inches.
func ParseInches(input string) (float64, error) {
	m, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return m.Inches, nil
}

// ParseRational returns the measurement as an exact fraction of an inch.
func ParseRational(input string) (Rational, error) {
	m, err := Parse(input)
	if err != nil {
		return Rational{}, err
	}
	if !m.IsExact {
		return Rational{}, parseErr(input, fmt.Errorf("%w: %w", ErrInvalidFormat, ErrOverflow))
	}
	return m.Exact, nil
}

// term carries both projections of a parsed value side by side.
type term struct {
	r     Rational
	f     float64
	exact bool
}

func (t term) add(u term) term {
	out := term{f: t.f + u.f, exact: t.exact && u.exact}
	if out.exact {
		r, err := t.r.Add(u.r)
		if err != nil {
			out.exact = false
		} else {
			out.r = r
		}
	}
	return out
}

func (t term) neg() term {
	return term{r: t.r.Neg(), f: -t.f, exact: t.exact}
}

func parse(input string) (term, error) {
	s := Normalize(input)
	if s == "" {
		return term{}, ErrEmptyInput
	}

	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = strings.TrimSpace(s[1:])
		if s == "" {
			return term{}, ErrInvalidFormat
		}
	}

	// Feet stage.
	total := term{r: Int(0), exact: true}
	rest := s
	feetStr, inchStr, hasFeet := strings.Cut(s, "'")
	if hasFeet {
		feetStr = strings.TrimSpace(feetStr)
		if !intToken.MatchString(feetStr) {
			return term{}, ErrInvalidFeet
		}
		feet, err := strconv.ParseInt(feetStr, 10, 64)
		if err != nil {
			return term{}, ErrInvalidFeet
		}
		fr, err := Int(feet).Mul(Int(12))
		total = term{r: fr, f: float64(feet) * 12, exact: err == nil}

		rest = strings.TrimSpace(inchStr)
		// 7'-10" uses the dash as a separator, not a sign.
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
		if strings.Contains(rest, "'") {
			return term{}, ErrInvalidFormat
		}
	}

	// Inches stage.
	inches, err := parseInchesPart(rest, hasFeet)
	if err != nil {
		return term{}, err
	}
	total = total.add(inches)
	if neg {
		total = total.neg()
	}
	return total, nil
}

func parseInchesPart(s string, hasFeet bool) (term, error) {
	if i := strings.Index(s, `"`); i >= 0 {
		if i != len(s)-1 {
			return term{}, ErrInvalidFormat
		}
		s = strings.TrimSpace(s[:i])
		if s == "" && !hasFeet {
			return term{}, ErrInvalidFormat
		}
	}
	if s == "" {
		return term{r: Int(0), exact: true}, nil
	}

	toks := strings.Fields(s)
	switch len(toks) {
	case 1:
		if strings.Contains(toks[0], "/") {
			return parseFraction(toks[0])
		}
		return parseNumber(toks[0])
	case 2:
		if !intToken.MatchString(toks[0]) {
			return term{}, ErrInvalidFormat
		}
		whole, err := parseNumber(toks[0])
		if err != nil {
			return term{}, err
		}
		frac, err := parseFraction(toks[1])
		if err != nil {
			return term{}, err
		}
		return whole.add(frac), nil
	}
	return term{}, ErrInvalidFormat
}

func parseNumber(tok string) (term, error) {
	switch {
	case intToken.MatchString(tok):
		n, err := strconv.ParseInt(tok, 10, 64)
		if err == nil {
			return term{r: Int(n), f: float64(n), exact: true}, nil
		}
		// Too wide for int64: keep the float, drop exactness.
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return term{}, ErrInvalidFormat
		}
		return term{f: f}, nil
	case decimalToken.MatchString(tok):
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return term{}, ErrInvalidFormat
		}
		r, err := decimalRational(tok)
		return term{r: r, f: f, exact: err == nil}, nil
	}
	return term{}, ErrInvalidFormat
}

func parseFraction(tok string) (term, error) {
	m := fractionToken.FindStringSubmatch(tok)
	if m == nil {
		return term{}, ErrInvalidFraction
	}
	a, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return term{}, ErrInvalidFraction
	}
	b, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || b == 0 {
		return term{}, ErrInvalidFraction
	}
	r, err := New(a, b)
	if err != nil {
		return term{}, ErrInvalidFraction
	}
	return term{r: r, f: float64(a) / float64(b), exact: true}, nil
}

// decimalRational reads "12.375" exactly as 12375/1000 reduced.
func decimalRational(tok string) (Rational, error) {
	intPart, fracPart, _ := strings.Cut(tok, ".")
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > 18 {
		return Rational{}, ErrOverflow
	}
	digits := strings.TrimLeft(intPart+fracPart, "0")
	if digits == "" {
		return Int(0), nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Rational{}, ErrOverflow
	}
	d := int64(1)
	for range fracPart {
		d *= 10
	}
	return New(n, d)
}
