package ui

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/thesavant42/pawsome/internal/models"
)

var csvHeader = []string{"id", "name", "breed", "age", "zip_code", "img"}

// WriteFavoritesCSV writes dogs as CSV with a header row
func WriteFavoritesCSV(w io.Writer, dogs []models.Dog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, d := range dogs {
		rec := []string{d.ID, d.Name, d.Breed, strconv.Itoa(d.Age), d.ZipCode, d.Img}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", d.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFavoritesCSV writes dogs to the CSV file at path
func ExportFavoritesCSV(path string, dogs []models.Dog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	if err := WriteFavoritesCSV(f, dogs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
