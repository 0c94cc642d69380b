package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewMaterial builds a list entry with a fresh ID.
func NewMaterial(name string, qty float64, unit, note string) Material {
	return Material{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Quantity:  qty,
		Unit:      strings.TrimSpace(unit),
		Note:      strings.TrimSpace(note),
		CreatedAt: time.Now().UTC(),
	}
}

// Stats counts checked-off and pending entries.
func Stats(items []Material) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// Split returns pending entries then done entries, keeping order.
func Split(items []Material) (pending, done []Material) {
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pending = append(pending, it)
		}
	}
	return
}
