package sheets

import (
	"fmt"
	"regexp"
	"strings"
)

// Range is a parsed A1-notation reference: an optional sheet name followed
// by a cell, cell range, whole-column range or whole-row range. A parsed
// Range re-serializes via String to a form accepted by the Sheets API.
type Range struct {
	// Sheet is the unquoted sheet name, empty when the reference has none.
	Sheet string
	Start CellRef
	// End is the zero value for single-cell references.
	End CellRef
}

// CellRef is one endpoint of a range: a full cell (column and row), a bare
// column ("A" in "A:A") or a bare row ("1" in "1:1").
type CellRef struct {
	Col string // one or more letters, upper-cased on parse
	Row string // one or more digits
}

func (c CellRef) isZero() bool {
	return c.Col == "" && c.Row == ""
}

func (c CellRef) String() string {
	return c.Col + c.Row
}

var cellRefPattern = regexp.MustCompile(`^([A-Za-z]+)?([0-9]+)?$`)

// needsQuoting matches sheet names that must be single-quoted in A1 output.
func needsQuoting(sheet string) bool {
	return strings.ContainsAny(sheet, " !'")
}

// ParseRange parses an A1-notation range string. The accepted grammar is
//
//	[ sheet "!" ] ( cell [ ":" cell ] | col ":" col | row ":" row )
//
// where a sheet name containing spaces, "!" or "'" is single-quoted with
// embedded quotes doubled. Bare column and row references require the colon
// form, so "A:A" and "1:1" are valid but "A" alone is not.
func ParseRange(s string) (*Range, error) {
	sheet, rest, err := splitSheet(s)
	if err != nil {
		return nil, err
	}
	if rest == "" {
		return nil, rangeError(s)
	}

	parts := strings.Split(rest, ":")
	if len(parts) > 2 {
		return nil, rangeError(s)
	}

	start, ok := parseCellRef(parts[0])
	if !ok {
		return nil, rangeError(s)
	}

	r := &Range{Sheet: sheet, Start: start}
	if len(parts) == 1 {
		// A single reference must be a full cell; a bare column or row
		// is only meaningful as part of a colon form.
		if start.Col == "" || start.Row == "" {
			return nil, rangeError(s)
		}
		return r, nil
	}

	end, ok := parseCellRef(parts[1])
	if !ok {
		return nil, rangeError(s)
	}
	// Both endpoints must be the same shape: cell:cell, col:col or row:row.
	if (start.Col == "") != (end.Col == "") || (start.Row == "") != (end.Row == "") {
		return nil, rangeError(s)
	}
	r.End = end
	return r, nil
}

// splitSheet splits off the optional sheet-name prefix, handling the quoted
// form with doubled-quote escapes. It returns the unquoted sheet name (empty
// if absent) and the remainder after the "!".
func splitSheet(s string) (sheet, rest string, err error) {
	if s == "" {
		return "", "", rangeError(s)
	}

	if s[0] == '\'' {
		var name strings.Builder
		i := 1
		for i < len(s) {
			if s[i] != '\'' {
				name.WriteByte(s[i])
				i++
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				name.WriteByte('\'')
				i += 2
				continue
			}
			// Closing quote; must be followed by "!".
			if i+1 >= len(s) || s[i+1] != '!' {
				return "", "", rangeError(s)
			}
			if name.Len() == 0 {
				return "", "", rangeError(s)
			}
			return name.String(), s[i+2:], nil
		}
		return "", "", rangeError(s)
	}

	idx := strings.IndexByte(s, '!')
	if idx < 0 {
		return "", s, nil
	}
	sheet = s[:idx]
	if sheet == "" || strings.ContainsAny(sheet, " '") {
		return "", "", rangeError(s)
	}
	return sheet, s[idx+1:], nil
}

func parseCellRef(s string) (CellRef, bool) {
	if s == "" {
		return CellRef{}, false
	}
	m := cellRefPattern.FindStringSubmatch(s)
	if m == nil {
		return CellRef{}, false
	}
	return CellRef{Col: strings.ToUpper(m[1]), Row: m[2]}, true
}

// String re-serializes the range in A1 notation, quoting the sheet name
// when required.
func (r *Range) String() string {
	var b strings.Builder
	if r.Sheet != "" {
		if needsQuoting(r.Sheet) {
			b.WriteByte('\'')
			b.WriteString(strings.ReplaceAll(r.Sheet, "'", "''"))
			b.WriteByte('\'')
		} else {
			b.WriteString(r.Sheet)
		}
		b.WriteByte('!')
	}
	b.WriteString(r.Start.String())
	if !r.End.isZero() {
		b.WriteByte(':')
		b.WriteString(r.End.String())
	}
	return b.String()
}

func rangeError(s string) error {
	return fmt.Errorf("invalid range %q: expected A1 notation such as \"Sheet1!A1:C3\", \"'My Sheet'!A1:B5\", \"A1\", \"A:A\" or \"1:1\"", s)
}
