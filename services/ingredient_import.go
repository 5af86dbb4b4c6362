package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/models"
)

// ImportIngredientsCSV loads the ingredient catalog from a CSV file of
// "name,measurement_unit" rows. Rows already in the catalog are skipped, so
// the import can be re-run. Returns how many rows were imported and skipped.
func ImportIngredientsCSV(repo *database.IngredientRepo, path string) (imported, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("reading %s: %w", path, err)
		}

		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			skipped++
			continue
		}

		exists, err := repo.Exists(name, unit)
		if err != nil {
			return imported, skipped, err
		}
		if exists {
			skipped++
			continue
		}

		ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
		if err := repo.Add(&ingredient); err != nil {
			return imported, skipped, err
		}
		imported++
	}

	return imported, skipped, nil
}
