package estimate

import "github.com/idilsaglam/tapecalc/internal/measure"

// DefaultBagYieldCuFt is what one 80 lb premix bag fills.
const DefaultBagYieldCuFt = 0.6

// Slab is a concrete volume for a rectangular pour.
type Slab struct {
	CubicFeet  float64
	CubicYards float64
	Bags       int
}

// Concrete computes the volume of a length x width x depth pour (inches)
// with waste, and the premix bags needed at bagYieldCuFt each.
func Concrete(lengthIn, widthIn, depthIn, wastePct, bagYieldCuFt float64) (Slab, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{{"length", lengthIn}, {"width", widthIn}, {"depth", depthIn}} {
		if err := requirePositive(v.name, v.val); err != nil {
			return Slab{}, err
		}
	}
	if err := requireNonNegative("waste", wastePct); err != nil {
		return Slab{}, err
	}
	if bagYieldCuFt == 0 {
		bagYieldCuFt = DefaultBagYieldCuFt
	}
	if err := requirePositive("bag yield", bagYieldCuFt); err != nil {
		return Slab{}, err
	}
	cuFt := withWaste(lengthIn*widthIn*depthIn/1728, wastePct)
	return Slab{
		CubicFeet:  cuFt,
		CubicYards: cuFt / 27,
		Bags:       ceil(cuFt / bagYieldCuFt),
	}, nil
}

func (s Slab) Estimates() []Estimate {
	return []Estimate{
		{Name: "Concrete", Quantity: roundTo(s.CubicYards, 2), Unit: "cu yd", Detail: measure.FormatDecimal(roundTo(s.CubicFeet, 2)) + " cu ft"},
		{Name: "Premix bags", Quantity: float64(s.Bags), Unit: "bags"},
	}
}
