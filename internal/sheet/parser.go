package sheet

import "strings"

// Parse converts a comma-separated, double-quote-escaped text blob into a
// grid of string cells, one inner slice per row.
//
// This is the dialect produced by the spreadsheet CSV export this service
// consumes, not RFC 4180: a quote character always toggles the in-quotes
// state (a stray quote mid-field flips it), a doubled quote inside quotes
// emits a literal quote, and rows made up entirely of empty cells are
// dropped. Single left-to-right scan, one byte of lookahead.
func Parse(csv string) [][]string {
	var rows [][]string
	var cur []string
	var cell strings.Builder
	inQuotes := false

	for i := 0; i < len(csv); i++ {
		ch := csv[i]

		// Escaped quote inside quotes: ""
		if ch == '"' && inQuotes && i+1 < len(csv) && csv[i+1] == '"' {
			cell.WriteByte('"')
			i++
			continue
		}

		if ch == '"' {
			inQuotes = !inQuotes
			continue
		}

		if ch == ',' && !inQuotes {
			cur = append(cur, cell.String())
			cell.Reset()
			continue
		}

		if (ch == '\n' || ch == '\r') && !inQuotes {
			// \r\n counts as a single break
			if ch == '\r' && i+1 < len(csv) && csv[i+1] == '\n' {
				i++
			}
			cur = append(cur, cell.String())
			cell.Reset()
			if !blankRow(cur) {
				rows = append(rows, cur)
			}
			cur = nil
			continue
		}

		cell.WriteByte(ch)
	}

	// Flush the last cell and row
	cur = append(cur, cell.String())
	if !blankRow(cur) {
		rows = append(rows, cur)
	}

	return rows
}

func blankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// Serialize renders a grid back to text with the same quoting convention the
// parser accepts. A cell is quoted only when it contains a quote, comma or
// line break; embedded quotes are doubled. Rows end with \n.
func Serialize(grid [][]string) string {
	var b strings.Builder
	for _, row := range grid {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(cell, "\",\n\r") {
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
				b.WriteByte('"')
			} else {
				b.WriteString(cell)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
