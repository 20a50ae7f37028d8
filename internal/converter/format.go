package converter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nconklindev/sheetcsv/internal/types"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	TimeLayout     = "15:04:05"
)

// floatColumns reports, per column, whether numbers in it render with a
// decimal point. A column qualifies when all its values are numeric and at
// least one is fractional or missing.
func floatColumns(t *types.Table) []bool {
	out := make([]bool, len(t.Columns))
	for col := range t.Columns {
		numbers, fractional, missing := 0, false, false
		mixed := false
		for _, row := range t.Rows {
			c := row[col]
			switch c.Kind {
			case types.CellEmpty:
				missing = true
			case types.CellNumber:
				numbers++
				if c.Number != math.Trunc(c.Number) {
					fractional = true
				}
			default:
				mixed = true
			}
		}
		out[col] = numbers > 0 && !mixed && (fractional || missing)
	}
	return out
}

func formatCell(c types.Cell, floatCol bool) string {
	switch c.Kind {
	case types.CellText, types.CellError:
		return c.Text
	case types.CellNumber:
		return formatNumber(c.Number, floatCol)
	case types.CellDate:
		return formatTime(c.Time)
	case types.CellBool:
		if c.Bool {
			return "True"
		}
		return "False"
	}
	return ""
}

func formatNumber(v float64, floatCol bool) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if !floatCol && v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.Year() < 1900 {
		return t.Format(TimeLayout)
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(DateTimeLayout)
}

// serialTime anchors serials below one day (pure times) before 1900 so that
// formatTime renders them without a date, whatever the workbook epoch.
func serialTime(t time.Time, serial float64) time.Time {
	if serial < 1 {
		return time.Date(1899, 12, 31, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	return t
}

// isBuiltinDateFormat covers the built-in number format IDs that render as a
// date or time, including the East Asian ones.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom number format code contains date
// or time tokens outside literals and bracketed sections.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			inner := strings.ToLower(code[i+1 : i+end])
			if strings.Trim(inner, "hms") == "" {
				b.WriteString(inner)
			}
			i += end
		default:
			b.WriteByte(ch)
		}
	}
	s := strings.ToLower(b.String())
	if s == "general" || s == "@" {
		return false
	}
	return strings.ContainsAny(s, "ymdhs")
}
