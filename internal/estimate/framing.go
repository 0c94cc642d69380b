package estimate

import (
	"fmt"

	"github.com/idilsaglam/tapecalc/internal/measure"
)

// WallOptions tune a stud take-off. Zero values pick the usual defaults.
type WallOptions struct {
	Corners         int
	Openings        int
	ExtraPerCorner  int     // default 2
	ExtraPerOpening int     // default 2 (king + jack side)
	Plates          int     // default 3: one bottom, two top
	StockLengthIn   float64 // plate stock length, default 16'
}

func (o WallOptions) withDefaults() WallOptions {
	if o.ExtraPerCorner == 0 {
		o.ExtraPerCorner = 2
	}
	if o.ExtraPerOpening == 0 {
		o.ExtraPerOpening = 2
	}
	if o.Plates == 0 {
		o.Plates = 3
	}
	if o.StockLengthIn == 0 {
		o.StockLengthIn = 192
	}
	return o
}

// Wall is the framing count for one straight wall.
type Wall struct {
	LengthIn float64
	Studs    int
	Plates   int
}

// FrameWall counts studs at spacingIn on center, ceil(L/OC)+1, plus extras
// for corners and openings, and plate stock to run the wall plates.
func FrameWall(lengthIn, spacingIn float64, o WallOptions) (Wall, error) {
	if err := requirePositive("wall length", lengthIn); err != nil {
		return Wall{}, err
	}
	if err := requirePositive("stud spacing", spacingIn); err != nil {
		return Wall{}, err
	}
	if o.Corners < 0 || o.Openings < 0 {
		return Wall{}, fmt.Errorf("corners and openings must not be negative: %w", measure.ErrInvalidInput)
	}
	o = o.withDefaults()
	if err := requirePositive("stock length", o.StockLengthIn); err != nil {
		return Wall{}, err
	}

	studs := ceil(lengthIn/spacingIn) + 1
	studs += o.Corners*o.ExtraPerCorner + o.Openings*o.ExtraPerOpening
	plates := ceil(lengthIn * float64(o.Plates) / o.StockLengthIn)
	return Wall{LengthIn: lengthIn, Studs: studs, Plates: plates}, nil
}

func (w Wall) Estimates() []Estimate {
	length := measure.Format(w.LengthIn, measure.DefaultDenominator)
	return []Estimate{
		{Name: "Studs", Quantity: float64(w.Studs), Unit: "pcs", Detail: "wall " + length},
		{Name: "Plate stock", Quantity: float64(w.Plates), Unit: "pcs", Detail: "wall " + length},
	}
}
