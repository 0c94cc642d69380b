package estimate

import (
	"fmt"

	"github.com/idilsaglam/tapecalc/internal/measure"
)

// Sheets is a sheet-goods count (plywood, OSB, drywall).
type Sheets struct {
	AreaSqFt float64
	Count    int
	SheetW   float64
	SheetH   float64
}

// SheetCount is ceil(area * (1+waste) / sheet area). Sheet sizes are in feet.
func SheetCount(areaSqFt, sheetWFt, sheetHFt, wastePct float64) (Sheets, error) {
	if err := requirePositive("area", areaSqFt); err != nil {
		return Sheets{}, err
	}
	if err := requirePositive("sheet width", sheetWFt); err != nil {
		return Sheets{}, err
	}
	if err := requirePositive("sheet height", sheetHFt); err != nil {
		return Sheets{}, err
	}
	if err := requireNonNegative("waste", wastePct); err != nil {
		return Sheets{}, err
	}
	n := ceil(withWaste(areaSqFt, wastePct) / (sheetWFt * sheetHFt))
	return Sheets{AreaSqFt: areaSqFt, Count: n, SheetW: sheetWFt, SheetH: sheetHFt}, nil
}

func (s Sheets) Estimate() Estimate {
	return Estimate{
		Name:     fmt.Sprintf("%gx%g sheets", s.SheetW, s.SheetH),
		Quantity: float64(s.Count),
		Unit:     "sheets",
		Detail:   measure.FormatDecimal(s.AreaSqFt) + " sq ft",
	}
}

// Fasteners is a screw count and the boxes to buy.
type Fasteners struct {
	Screws int
	Boxes  int
}

// ScrewCount multiplies sheets by screws per sheet and rounds boxes up.
func ScrewCount(sheets, perSheet, perBox int) (Fasteners, error) {
	if sheets < 0 {
		return Fasteners{}, fmt.Errorf("sheets must not be negative: %w", measure.ErrInvalidInput)
	}
	if perSheet <= 0 || perBox <= 0 {
		return Fasteners{}, fmt.Errorf("screws per sheet and per box must be positive: %w", measure.ErrInvalidInput)
	}
	screws := sheets * perSheet
	return Fasteners{Screws: screws, Boxes: (screws + perBox - 1) / perBox}, nil
}

func (f Fasteners) Estimates() []Estimate {
	return []Estimate{
		{Name: "Screws", Quantity: float64(f.Screws), Unit: "pcs"},
		{Name: "Screw boxes", Quantity: float64(f.Boxes), Unit: "boxes", Detail: fmt.Sprintf("%d screws", f.Screws)},
	}
}
