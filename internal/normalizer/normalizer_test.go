package normalizer

import "testing"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Simple", input: "San Diego", expected: "san diego"},
		{name: "Surrounding_Whitespace", input: "  San Diego  ", expected: "san diego"},
		{name: "Mixed_Case", input: "AuStIn", expected: "austin"},
		{name: "Empty", input: "", expected: ""},
		{name: "Whitespace_Only", input: "   \t ", expected: ""},
		{name: "Inner_Whitespace_Kept", input: "New  York", expected: "new  york"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFold(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Diacritics", input: "San José", expected: "san jose"},
		{name: "Plain_Unchanged", input: "Saint Louis", expected: "saint louis"},
		{name: "Trimmed_And_Lowered", input: "  Doña Ana  ", expected: "dona ana"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fold(tc.input); got != tc.expected {
				t.Errorf("Fold(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
