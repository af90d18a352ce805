package dataset

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-03-06 08:01:00,2017-03-06 08:11:00,600,Canal St,Clark St,Subscriber,Male,1985.0
2,2017-03-07 17:30:00,2017-03-07 17:40:00,600,Canal St,Clark St,Subscriber,Female,1990.0
3,2017-03-11 12:00:00,2017-03-11 12:20:00,1200,Clark St,Canal St,Customer,,
4,2017-01-02 08:00:00,2017-01-02 08:05:00,300,Canal St,State St,Subscriber,Male,1972.0
5,2017-02-06 09:15:00,2017-02-06 09:30:00,900,State St,Canal St,Subscriber,Female,1990.0
6,2017-04-03 07:45:00,2017-04-03 07:50:00,300,Clark St,State St,Customer,,
7,2017-05-01 18:10:00,2017-05-01 18:40:00,1800,Canal St,Clark St,Subscriber,Male,2001.0
8,2017-06-05 08:20:00,2017-06-05 08:30:00,600,State St,Clark St,Subscriber,Male,1985.0
`

const washingtonCSV = `Start Time,End Time,Trip Duration,Start Station,End Station,User Type
2017-03-06 08:01:00,2017-03-06 08:11:00,600.5,Canal St,Clark St,Subscriber
2017-03-08 08:01:00,2017-03-08 08:11:00,300.5,Canal St,Clark St,Customer
`

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

// newTestLoader writes the fixture datasets and returns a loader over them.
func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "chicago.csv", chicagoCSV)
	writeFile(t, dir, "washington.csv", washingtonCSV)
	return NewLoader(config.NewCityTable(dir, config.DefaultCityFiles())), dir
}

// writeSQLite creates a trips database from CSV-shaped text.
func writeSQLite(t *testing.T, path, csvText string) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	header := strings.Split(lines[0], ",")

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	defer raw.Close()

	// skip the unnamed index column
	var keep []int
	var cols, marks []string
	for i, h := range header {
		if h == "" {
			continue
		}
		keep = append(keep, i)
		cols = append(cols, `"`+h+`" TEXT`)
		marks = append(marks, "?")
	}
	if _, err := raw.Exec(`CREATE TABLE trips (` + strings.Join(cols, ", ") + `)`); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	insert := `INSERT INTO trips VALUES (` + strings.Join(marks, ", ") + `)`
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		args := make([]any, 0, len(keep))
		for _, i := range keep {
			if fields[i] == "" {
				args = append(args, nil)
			} else {
				args = append(args, fields[i])
			}
		}
		if _, err := raw.Exec(insert, args...); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
}

// derivedOf returns the calendar fields stored on a trip.
func derivedOf(trip models.Trip) models.DerivedFields {
	return models.DerivedFields{Month: trip.Month, DayOfWeek: trip.DayOfWeek, Hour: trip.Hour}
}
