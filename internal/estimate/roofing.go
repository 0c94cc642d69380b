package estimate

import "github.com/idilsaglam/tapecalc/internal/measure"

// SquareSqFt is one roofing square.
const SquareSqFt = 100

// Roof is a shingle take-off.
type Roof struct {
	AreaSqFt float64
	Squares  float64
	Bundles  int
}

// Roofing converts roof area to squares and bundles. bundlesPerSquare
// defaults to 3.
func Roofing(areaSqFt, wastePct float64, bundlesPerSquare int) (Roof, error) {
	if err := requirePositive("roof area", areaSqFt); err != nil {
		return Roof{}, err
	}
	if err := requireNonNegative("waste", wastePct); err != nil {
		return Roof{}, err
	}
	if bundlesPerSquare <= 0 {
		bundlesPerSquare = 3
	}
	squares := withWaste(areaSqFt, wastePct) / SquareSqFt
	return Roof{
		AreaSqFt: areaSqFt,
		Squares:  squares,
		Bundles:  ceil(squares * float64(bundlesPerSquare)),
	}, nil
}

// RoofArea is the sloped area of a plain gable: footprint scaled by the
// rafter length per foot of run.
func RoofArea(footprintSqFt, risePer12 float64) (float64, error) {
	if err := requirePositive("footprint", footprintSqFt); err != nil {
		return 0, err
	}
	perFoot, err := measure.RafterLength(12, risePer12)
	if err != nil {
		return 0, err
	}
	return footprintSqFt * perFoot / 12, nil
}

func (r Roof) Estimate() Estimate {
	return Estimate{
		Name:     "Shingle bundles",
		Quantity: float64(r.Bundles),
		Unit:     "bundles",
		Detail:   measure.FormatDecimal(r.Squares) + " squares",
	}
}
