package sheet

import (
	"reflect"
	"testing"
)

func TestParse_QuotedFields(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "Plain_Rows",
			input:    "a,b,c\nd,e,f",
			expected: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name:     "Quoted_Comma",
			input:    "name,status\nSan Diego,\"Allowed with permit, business license required\"",
			expected: [][]string{{"name", "status"}, {"San Diego", "Allowed with permit, business license required"}},
		},
		{
			name:     "Quoted_Newline",
			input:    "a,\"line1\nline2\",c",
			expected: [][]string{{"a", "line1\nline2", "c"}},
		},
		{
			name:     "Doubled_Quote",
			input:    "a,\"she said \"\"hi\"\"\",c",
			expected: [][]string{{"a", `she said "hi"`, "c"}},
		},
		{
			name:     "CRLF_Rows",
			input:    "a,b\r\nc,d\r\n",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "Bare_CR_Row_Break",
			input:    "a,b\rc,d",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "No_Trailing_Newline",
			input:    "a,b\nc,d",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "Empty_Cells_Kept_In_Nonblank_Row",
			input:    "a,,c",
			expected: [][]string{{"a", "", "c"}},
		},
		{
			name: "Stray_Quote_Toggles",
			// spreadsheet-export dialect: a quote mid-cell flips the quote
			// state instead of erroring
			input:    "ab\"cd,e\"f,g\nx,y,z",
			expected: [][]string{{"abcd,ef", "g"}, {"x", "y", "z"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Parse(%q) = %#v, want %#v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParse_BlankRowsNeverSurvive(t *testing.T) {
	inputs := []string{
		"\n\n\na,b\n\n\n",
		"a,b\n,,,\nc,d",
		",,\n,,\n",
		"",
		"a,b\r\n\r\n\r\nc,d",
	}

	for _, input := range inputs {
		for _, row := range Parse(input) {
			if blankRow(row) {
				t.Errorf("Parse(%q) produced blank row %#v", input, row)
			}
		}
	}

	if got := Parse(",,\n,,\n"); len(got) != 0 {
		t.Errorf("expected no rows for all-blank input, got %#v", got)
	}
}

// Round trip: parse -> serialize -> parse preserves row/column content for
// well-formed input with embedded commas and newlines.
func TestParse_SerializeRoundTrip(t *testing.T) {
	grids := [][][]string{
		{{"a", "b"}, {"c", "d"}},
		{{"jurisdiction_name", "notes"}, {"San Diego", "permit, license\nand tax cert"}},
		{{"x", `quote " inside`, ""}, {"", "y", "z"}},
	}

	for _, grid := range grids {
		got := Parse(Serialize(grid))
		if !reflect.DeepEqual(got, grid) {
			t.Errorf("round trip changed grid: got %#v, want %#v", got, grid)
		}
	}
}
