package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tapecalc/internal/model"
)

// Export writes items to w as json, yaml or csv.
func Export(w io.Writer, format string, items []model.Material) error {
	if items == nil {
		items = []model.Material{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		return writeCSV(w, items)
	}
	return fmt.Errorf("unsupported format: %s", format)
}

func writeCSV(w io.Writer, items []model.Material) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "quantity", "unit", "note", "done", "created_at"}); err != nil {
		return err
	}
	for _, m := range items {
		row := []string{
			m.ID,
			m.Name,
			strconv.FormatFloat(m.Quantity, 'f', -1, 64),
			m.Unit,
			m.Note,
			strconv.FormatBool(m.Done),
			m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportParquet writes items to a parquet file at path.
func ExportParquet(path string, items []model.Material) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := parquet.NewGenericWriter[model.Material](f)
	if _, err := w.Write(items); err != nil {
		f.Close()
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}

// ImportParquet reads every row of a parquet file written by ExportParquet.
func ImportParquet(path string) ([]model.Material, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[model.Material](pf)
	defer reader.Close()

	items := []model.Material{}
	rows := make([]model.Material, 128)
	for {
		n, err := reader.Read(rows)
		items = append(items, rows[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read parquet: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return items, nil
}
