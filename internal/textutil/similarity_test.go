package textutil

import "testing"

func TestSimilarityIdentical(t *testing.T) {
	for _, s := range []string{"Inception", "the godfather", "Amélie", "  Heat  "} {
		if got := Similarity(s, s); got != 100 {
			t.Errorf("Similarity(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"both empty", "", ""},
		{"a empty", "", "Inception"},
		{"b empty", "Inception", ""},
		{"whitespace only", "   ", "Inception"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != 0 {
				t.Errorf("Similarity(%q, %q) = %d, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestSimilarityCaseFolding(t *testing.T) {
	if got := Similarity("INCEPTION", "inception"); got != 100 {
		t.Errorf("Similarity(case variants) = %d, want 100", got)
	}
}

func TestSimilarityKnownDistances(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		// distance 3 over max length 7 -> round(100 * 4/7) = 57
		{"kitten", "sitting", 57},
		// distance 1 over max length 5 -> 80
		{"heat", "heart", 80},
		// no shared characters
		{"abc", "xyz", 0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilaritySymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"The Dark Knight", "Dark Knight"},
		{"Se7en", "Seven"},
		{"Amélie", "Amelie"},
		{"a", "completely different string"},
	}
	for _, pair := range pairs {
		ab := Similarity(pair[0], pair[1])
		ba := Similarity(pair[1], pair[0])
		if ab != ba {
			t.Errorf("Similarity not symmetric for %q/%q: %d vs %d", pair[0], pair[1], ab, ba)
		}
		if ab < 0 || ab > 100 {
			t.Errorf("Similarity(%q, %q) = %d out of [0,100]", pair[0], pair[1], ab)
		}
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "the dark knight", "the dark knight", 1},
		{"disjoint", "alien", "heat", 0},
		{"partial", "the dark knight rises", "the dark knight", 0.75},
		{"empty side", "", "heat", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("WordOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
