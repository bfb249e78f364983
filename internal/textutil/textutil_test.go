package textutil

import (
	"math"
	"testing"
)

func TestNormalizeMatchKey(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and trims", "  Creed Aventus  ", "creed aventus"},
		{"strips diacritics", "Mañana Día", "manana dia"},
		{"drops punctuation", "L'Homme (EDT)!", "lhomme edt"},
		{"keeps digits", "No 5", "no 5"},
		{"empty input", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeMatchKey(tc.input); got != tc.want {
				t.Errorf("NormalizeMatchKey(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestStripDiacritics(t *testing.T) {
	if got := StripDiacritics("Miércoles Sábado"); got != "Miercoles Sabado" {
		t.Errorf("StripDiacritics = %q, want %q", got, "Miercoles Sabado")
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("  creed aventus "); got != "Creed Aventus" {
		t.Errorf("TitleCase = %q, want %q", got, "Creed Aventus")
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"aventus", "aventus", 0},
		{"aventus", "aventis", 1},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact", "creed aventus", "creed aventus", 1},
		{"empty side", "", "aventus", 0},
		{"containment ratio", "aventus", "creed aventus", 7.0 / 13.0},
		{"containment reversed", "creed aventus", "aventus", 7.0 / 13.0},
		{"edit distance fallback", "kitten", "sitting", 1 - 3.0/7.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Similarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
