package ir

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"sigil stripped", "%x", "x"},
		{"dot replaced", "%3.tmp", "X3_tmp"},
		{"plain name unchanged", "r", "r"},
		{"leading digit repaired", "3tmp", "X3tmp"},
		{"leading underscore repaired", "_hidden", "X_hidden"},
		{"empty input", "", "X"},
		{"multiple dots", "%a.b.c", "a_b_c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
