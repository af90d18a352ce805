package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestCanonicalCity(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"chicago", "chicago"},
		{"Chicago", "chicago"},
		{"New York City", "new_york_city"},
		{"  new   york city ", "new_york_city"},
		{"new_york_city", "new_york_city"},
	}

	for _, tt := range tests {
		if got := CanonicalCity(tt.in); got != tt.want {
			t.Errorf("CanonicalCity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayCity(t *testing.T) {
	if got := DisplayCity(NewYorkCity); got != "New York City" {
		t.Errorf("DisplayCity() = %q, want %q", got, "New York City")
	}
}

func TestCityTable(t *testing.T) {
	table := NewCityTable("/data", map[string]string{
		Chicago:    "chicago.csv",
		Washington: "/abs/dc.csv",
	})

	if p, ok := table.Path("CHICAGO"); !ok || p != filepath.Join("/data", "chicago.csv") {
		t.Errorf("Path(CHICAGO) = %q, %v", p, ok)
	}
	if p, _ := table.Path(Washington); p != "/abs/dc.csv" {
		t.Errorf("absolute override lost: %q", p)
	}
	if _, ok := table.Path("boston"); ok {
		t.Error("Path(boston) should not resolve")
	}

	if got := table.Cities(); !reflect.DeepEqual(got, []string{Chicago, Washington}) {
		t.Errorf("Cities() = %v", got)
	}
	if got := table.Dirs(); !reflect.DeepEqual(got, []string{"/data", "/abs"}) {
		t.Errorf("Dirs() = %v", got)
	}
}
