package model

import "time"

// Material is one line on the saved materials list.
type Material struct {
	ID        string    `json:"id" yaml:"id" parquet:"id"`
	Name      string    `json:"name" yaml:"name" parquet:"name"`
	Quantity  float64   `json:"quantity" yaml:"quantity" parquet:"quantity"`
	Unit      string    `json:"unit" yaml:"unit" parquet:"unit"`
	Note      string    `json:"note,omitempty" yaml:"note,omitempty" parquet:"note"`
	Done      bool      `json:"done" yaml:"done" parquet:"done"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" parquet:"created_at"`
}
