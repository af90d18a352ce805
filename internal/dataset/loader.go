package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/db"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
)

// Loader reads city datasets from the configured sources.
type Loader struct {
	cities config.CityTable
}

// NewLoader creates a loader over a fixed city table.
func NewLoader(cities config.CityTable) *Loader {
	return &Loader{cities: cities}
}

// Load reads the dataset for city and derives the calendar fields. Every
// call reads the source again.
func (l *Loader) Load(ctx context.Context, city string) (*Table, error) {
	key := config.CanonicalCity(city)
	path, ok := l.cities.Path(key)
	if !ok {
		return nil, &DatasetNotFoundError{City: city}
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DatasetNotFoundError{City: city, Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}

	frame, err := readFrame(ctx, path)
	if err != nil {
		return nil, err
	}

	columns, trips, err := parseFrame(path, frame)
	if err != nil {
		return nil, err
	}

	rows := make([]int, len(trips))
	for i := range rows {
		rows[i] = i
	}

	logger.Debug("dataset loaded", "city", key, "path", path, "rows", len(trips))

	return &Table{
		City:    key,
		Trips:   trips,
		columns: columns,
		rows:    rows,
		frame:   frame,
	}, nil
}

// readFrame reads a source file into an all-string frame.
func readFrame(ctx context.Context, path string) (dataframe.DataFrame, error) {
	if isSQLite(path) {
		return readSQLite(ctx, path)
	}
	return readCSV(path)
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func readCSV(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	frame := dataframe.ReadCSV(file,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithLazyQuotes(true),
	)
	if frame.Err != nil {
		// gota refuses a header with no rows
		if header, ok := headerOnly(path); ok {
			return emptyFrame(path, header)
		}
		return dataframe.DataFrame{}, fmt.Errorf("failed to read %s: %w", path, frame.Err)
	}
	return frame, nil
}

// headerOnly reports whether the CSV at path holds a header and no rows.
func headerOnly(path string) ([]string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// emptyFrame builds a zero-row string frame with the given columns.
func emptyFrame(path string, header []string) (dataframe.DataFrame, error) {
	columns := make([]series.Series, len(header))
	for i, name := range header {
		columns[i] = series.New([]string{}, series.String, name)
	}
	frame := dataframe.New(columns...)
	if frame.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read %s: %w", path, frame.Err)
	}
	return frame, nil
}

func readSQLite(ctx context.Context, path string) (dataframe.DataFrame, error) {
	database, err := db.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer func() { _ = database.Close() }()

	records, err := database.TripRecords(ctx)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read %s: %w", database.Path(), err)
	}
	if len(records) == 1 {
		return emptyFrame(path, records[0])
	}

	frame := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if frame.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read %s: %w", path, frame.Err)
	}
	return frame, nil
}
