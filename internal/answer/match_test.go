package answer

import (
	"testing"

	"trivia-quiz-service/internal/dataset"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		guess     string
		canonical string
		want      bool
	}{
		{"case", "MADRID", "Madrid", true},
		{"lower", "paris", "Paris", true},
		{"accent", "bogota", "Bogotá", true},
		{"accent and case", "COTE D'IVOIRE", "Côte d'Ivoire", true},
		{"typographic apostrophe", "Côte d’Ivoire", "Côte d'Ivoire", true},
		{"missing apostrophe", "Cote dIvoire", "Côte d'Ivoire", false},
		{"surrounding whitespace", "  Lima ", "Lima", true},
		{"inner whitespace", "Buenos   Aires", "Buenos Aires", true},
		{"hyphen kept", "Guinea-Bissau", "Guinea Bissau", false},
		{"empty guess", "", "7", false},
		{"typo", "Pariss", "Paris", false},
		{"numeric", "7", "7", true},
		{"combined accents", "Sao Tome", "São Tomé", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.guess, tt.canonical); got != tt.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tt.guess, tt.canonical, got, tt.want)
			}
		})
	}
}

func TestMatchReflexiveOverDataset(t *testing.T) {
	cs, err := dataset.Load()
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	for _, c := range cs {
		if !Match(c.Name, c.Name) {
			t.Fatalf("name %q does not match itself", c.Name)
		}
		if !Match(c.Capital, c.Capital) {
			t.Fatalf("capital %q does not match itself", c.Capital)
		}
	}
}

func TestNormalizeDecomposedInput(t *testing.T) {
	// "é" written as e + U+0301.
	if got := Normalize("Yaounde\u0301"); got != "yaounde" {
		t.Fatalf("expected combining mark stripped, got %q", got)
	}
}
