package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for table parsing.
var (
	// ErrNoHeader is returned when the strings table has no usable header row.
	ErrNoHeader = errors.New("table: strings table missing header row")

	// ErrNoStyles is returned when the styles table declares no styles.
	ErrNoStyles = errors.New("table: styles table declares no styles")
)

// RowError reports a data row whose field count does not match the
// declared column count.
type RowError struct {
	Table string // "styles" or "strings"
	Row   int    // 1-based row number, counting accepted rows
	Got   int
	Want  int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("table: %s row %d has %d fields, want %d", e.Table, e.Row, e.Got, e.Want)
}

// QuoteError reports a quoted field left unterminated at end of input.
type QuoteError struct {
	Table string
}

func (e *QuoteError) Error() string {
	return fmt.Sprintf("table: %s table has an unterminated quoted field", e.Table)
}

// stylesParamFields is the fixed column count of the styles table.
const stylesParamFields = 4

// stringsParamFields is the number of leading non-language columns of the
// strings table: key, width, height.
const stringsParamFields = 3

// ParseStyles parses the styles table. The first accepted row is treated
// as a header and discarded; every following row must have exactly four
// fields: name, face, size, line height.
func ParseStyles(src []byte) ([]Style, error) {
	rows, err := splitRows("styles", src)
	if err != nil {
		return nil, err
	}

	var styles []Style
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) != stylesParamFields {
			return nil, &RowError{Table: "styles", Row: i + 1, Got: len(row), Want: stylesParamFields}
		}
		styles = append(styles, Style{
			Name:       row[0],
			Face:       row[1],
			Size:       parseUint(row[2]),
			LineHeight: parseFloat(row[3]),
		})
	}
	if len(styles) == 0 {
		return nil, ErrNoStyles
	}
	return styles, nil
}

// ParseStrings parses the strings table. The header row defines the
// language columns; each data row must have exactly 3+len(languages)
// fields: key, width, height, one text per language.
func ParseStrings(src []byte) ([]StringEntry, []string, error) {
	rows, err := splitRows("strings", src)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 || len(rows[0]) <= stringsParamFields {
		return nil, nil, ErrNoHeader
	}

	languages := rows[0][stringsParamFields:]
	want := stringsParamFields + len(languages)

	var entries []StringEntry
	for i, row := range rows[1:] {
		if len(row) != want {
			return nil, nil, &RowError{Table: "strings", Row: i + 2, Got: len(row), Want: want}
		}
		entries = append(entries, StringEntry{
			Key:    row[0],
			Width:  parseUint(row[1]),
			Height: parseUint(row[2]),
			Texts:  row[stringsParamFields:],
		})
	}
	return entries, languages, nil
}

// splitRows scans src into rows of fields.
//
// A double quote toggles quoting at any position within a field; inside
// quotes, a doubled quote is a literal quote and delimiters and newlines
// are literal text. Quoted and bare segments concatenate within one field.
// Rows whose first field is empty, or that have a single field, are
// skipped; this tolerates trailing blank lines and separator-only rows.
func splitRows(name string, src []byte) ([][]string, error) {
	var (
		rows   [][]string
		fields []string
		field  strings.Builder
		quoted bool
	)

	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if len(fields) > 1 && fields[0] != "" {
			rows = append(rows, fields)
		}
		fields = nil
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case quoted:
			if c == '"' {
				if i+1 < len(src) && src[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					quoted = false
				}
			} else {
				field.WriteByte(c)
			}
		case c == '"':
			quoted = true
		case c == ',':
			endField()
		case c == '\n':
			endRow()
		case c == '\r':
			// Swallowed so CRLF input parses like LF input.
		default:
			field.WriteByte(c)
		}
	}
	if quoted {
		return nil, &QuoteError{Table: name}
	}
	if field.Len() > 0 || len(fields) > 0 {
		endRow()
	}
	return rows, nil
}

// parseUint reads a leading unsigned integer, returning 0 for empty or
// non-numeric input. Lenient on trailing junk, matching the reference
// tool's atoi-style parsing.
func parseUint(s string) uint32 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseUint(s[:end], 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// parseFloat reads a leading decimal number, returning 0 on junk.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || s[end] == '-' || s[end] == '+') {
		end++
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}
