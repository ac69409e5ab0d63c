package scoring

import "testing"

func TestCategoryScoreTakesWorstSymptom(t *testing.T) {
	// wrinkles al máximo normaliza a 10; fine_lines en 1 normaliza a 0.
	// El agregado es el máximo, no el promedio.
	got := CategoryScore([]ParameterScore{
		{Key: "wrinkles", Score: 4},
		{Key: "fine_lines", Score: 1},
	})
	if got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}

func TestCategoryScoreIgnoresNullContributions(t *testing.T) {
	got := CategoryScore([]ParameterScore{
		{Key: "is_rosacea", Score: 3},
		{Key: "freckles", Score: 3},
	})
	if got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestCategoryScoreEmptyInput(t *testing.T) {
	if got := CategoryScore(nil); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestCategoryScoreRounds(t *testing.T) {
	// redness_present/3 normaliza a 6.5, redondea a 7.
	got := CategoryScore([]ParameterScore{{Key: "redness_present", Score: 3}})
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-3, 0},
		{0, 0},
		{4.4, 4},
		{4.5, 5},
		{10, 10},
		{14.2, 10},
	}
	for _, tc := range cases {
		if got := ClampScore(tc.in); got != tc.want {
			t.Errorf("ClampScore(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
