package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MrSnakeDoc/barback/internal/domain"
)

// Column names of the flat catalog file. Older files may carry only the first
// four; missing columns load as empty values.
const (
	colID           = "idDrink"
	colName         = "strDrink"
	colCategory     = "strCategory"
	colThumb        = "strDrinkThumb"
	colAlcoholic    = "strAlcoholic"
	colInstructions = "strInstructions"
	colIngredient   = "strIngredient"
	colMeasure      = "strMeasure"
)

// CSVFile stores the catalog as a flat CSV file, one drink per row.
type CSVFile struct {
	path string
}

// NewCSVFile creates a CSV backing at path
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

func csvHeader() []string {
	h := []string{colID, colName, colCategory, colThumb, colAlcoholic, colInstructions}
	for i := 1; i <= domain.MaxIngredients; i++ {
		h = append(h, colIngredient+strconv.Itoa(i))
	}
	for i := 1; i <= domain.MaxIngredients; i++ {
		h = append(h, colMeasure+strconv.Itoa(i))
	}
	return h
}

// Load reads the catalog file. A missing file is not an error.
func (f *CSVFile) Load(_ context.Context) ([]domain.Drink, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	if _, ok := cols[colID]; !ok {
		return nil, fmt.Errorf("catalog file %s has no %s column", f.path, colID)
	}

	var drinks []domain.Drink
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}
		drinks = append(drinks, recordToDrink(rec, cols))
	}
	return drinks, nil
}

func recordToDrink(rec []string, cols map[string]int) domain.Drink {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	d := domain.Drink{
		ID:           get(colID),
		Name:         get(colName),
		Category:     get(colCategory),
		Thumbnail:    get(colThumb),
		Alcoholic:    domain.ParseAlcoholic(get(colAlcoholic)),
		Instructions: get(colInstructions),
		Provenance:   domain.ProvenanceRemote,
	}
	for i := 1; i <= domain.MaxIngredients; i++ {
		name := get(colIngredient + strconv.Itoa(i))
		if name == "" {
			continue
		}
		d.Ingredients = append(d.Ingredients, domain.Ingredient{
			Name:    name,
			Measure: get(colMeasure + strconv.Itoa(i)),
		})
	}
	return d
}

func drinkToRecord(d domain.Drink) []string {
	rec := []string{d.ID, d.Name, d.Category, d.Thumbnail, string(d.Alcoholic), d.Instructions}
	names := make([]string, domain.MaxIngredients)
	measures := make([]string, domain.MaxIngredients)
	for i, ing := range d.Ingredients {
		if i >= domain.MaxIngredients {
			break
		}
		names[i] = ing.Name
		measures[i] = ing.Measure
	}
	rec = append(rec, names...)
	return append(rec, measures...)
}

// Save writes the catalog to a temporary file and renames it over the old one.
func (f *CSVFile) Save(_ context.Context, drinks []domain.Drink) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name()) // no-op after a successful rename
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write catalog header: %w", err)
	}
	for _, d := range drinks {
		if err := w.Write(drinkToRecord(d)); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write drink %s: %w", d.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to flush catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}
	return nil
}
