package pure_utils

import "testing"

func TestContainsSameElements(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{"equal slices", []string{"a", "b", "c"}, []string{"c", "b", "a"}, true},
		{"different lengths", []string{"a", "b"}, []string{"a", "b", "c"}, false},
		{"different elements", []string{"a", "b", "c"}, []string{"a", "b", "d"}, false},
		{"empty slices", []string{}, []string{}, true},
		{"one empty slice", []string{"a", "b", "c"}, []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsSameElements(tt.a, tt.b); got != tt.want {
				t.Errorf("ContainsSameElements() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  bool
	}{
		{"no duplicates", []string{"gpt-4o", "claude-2.1"}, false},
		{"duplicates", []string{"gpt-4o", "claude-2.1", "gpt-4o"}, true},
		{"empty", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasDuplicates(tt.input); got != tt.want {
				t.Errorf("HasDuplicates() = %v, want %v", got, tt.want)
			}
		})
	}
}
