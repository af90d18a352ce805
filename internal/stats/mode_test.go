package stats

import (
	"reflect"
	"testing"
)

func TestMode(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
		wantOK bool
	}{
		{"Single", []string{"a"}, "a", true},
		{"Majority", []string{"a", "b", "b"}, "b", true},
		{"TieFirstSeen", []string{"b", "a", "a", "b"}, "b", true},
		{"TieNotSorted", []string{"z", "a"}, "z", true},
		{"Empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mode(tt.values)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Mode(%v) = %q, %v; want %q, %v", tt.values, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMode_Ints(t *testing.T) {
	got, ok := Mode([]int{17, 8, 8, 17, 9})
	if !ok || got != 17 {
		t.Errorf("Mode() = %d, %v; want 17, true", got, ok)
	}
}

func TestFrequencies(t *testing.T) {
	got := Frequencies([]string{"Subscriber", "Subscriber", "Customer"})
	want := []Count[string]{{"Subscriber", 2}, {"Customer", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Frequencies() = %v, want %v", got, want)
	}
}

func TestFrequencies_Ties(t *testing.T) {
	got := Frequencies([]string{"c", "b", "a", "b", "c", "d"})
	want := []Count[string]{{"c", 2}, {"b", 2}, {"a", 1}, {"d", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Frequencies() = %v, want %v", got, want)
	}
}

func TestFrequencies_Empty(t *testing.T) {
	if got := Frequencies[string](nil); len(got) != 0 {
		t.Errorf("Frequencies(nil) = %v, want empty", got)
	}
}
