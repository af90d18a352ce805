package config

import (
	"path/filepath"
	"sort"
	"strings"
)

// City keys for the supported datasets.
const (
	Chicago     = "chicago"
	NewYorkCity = "new_york_city"
	Washington  = "washington"
)

// DefaultCityFiles returns the default file name for each city.
func DefaultCityFiles() map[string]string {
	return map[string]string{
		Chicago:     "chicago.csv",
		NewYorkCity: "new_york_city.csv",
		Washington:  "washington.csv",
	}
}

// CityTable maps city keys to dataset paths.
type CityTable struct {
	paths map[string]string
}

// NewCityTable resolves relative file names against dir.
func NewCityTable(dir string, files map[string]string) CityTable {
	paths := make(map[string]string, len(files))
	for city, file := range files {
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		paths[CanonicalCity(city)] = file
	}
	return CityTable{paths: paths}
}

// Path returns the dataset path for a city.
func (t CityTable) Path(city string) (string, bool) {
	p, ok := t.paths[CanonicalCity(city)]
	return p, ok
}

// Cities returns the configured city keys in a stable order.
func (t CityTable) Cities() []string {
	cities := make([]string, 0, len(t.paths))
	for c := range t.paths {
		cities = append(cities, c)
	}
	sort.Strings(cities)
	return cities
}

// Dirs returns the directories holding the city datasets.
func (t CityTable) Dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, c := range t.Cities() {
		d := filepath.Dir(t.paths[c])
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// CanonicalCity lowercases a city name and joins words with underscores,
// so "New York City" and "new_york_city" name the same dataset.
func CanonicalCity(city string) string {
	return strings.Join(strings.Fields(strings.ToLower(city)), "_")
}

// DisplayCity returns a human-readable name for a city key.
func DisplayCity(city string) string {
	words := strings.Split(CanonicalCity(city), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
