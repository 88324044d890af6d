package tabular

import (
	"strings"

	"catalog-manager/core/dataerr"
)

// Parse splits text into rows of trimmed cells.
//
// A cell starting with a double quote runs to its closing quote, so it may
// contain commas; a doubled quote inside it is a literal quote. An unclosed
// quote fails the whole parse with a dataerr.MalformedRow error.
func Parse(text string) ([][]string, error) {
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines))

	for n, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		row, err := parseRow(line)
		if err != nil {
			return nil, dataerr.Malformed(n+1, "unclosed quote", line)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// errUnclosedQuote is only used internally; Parse converts it to a located
// dataerr.Error.
var errUnclosedQuote = dataerr.MalformedRow

func parseRow(line string) ([]string, error) {
	row := []string{}
	i := 0
	for i < len(line) {
		start := i
		for i < len(line) && line[i] == '"' {
			next := strings.IndexByte(line[i+1:], '"')
			if next < 0 {
				return nil, errUnclosedQuote
			}
			i += next + 2
		}

		var cell string
		if comma := strings.IndexByte(line[i:], ','); comma < 0 {
			cell = line[start:]
			i = len(line)
		} else {
			cell = line[start : i+comma]
			i += comma + 1
		}

		row = append(row, unquote(cell))
	}
	return row, nil
}

func unquote(cell string) string {
	if len(cell) > 0 && cell[0] == '"' {
		cell = cell[1 : len(cell)-1]
		cell = strings.ReplaceAll(cell, `""`, `"`)
	}
	return strings.TrimSpace(cell)
}

// Cell returns row[i], or "" when the row is too short.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// IsBlank reports whether every cell in row is empty.
func IsBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// Quote renders s as a single quoted cell.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
