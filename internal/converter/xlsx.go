package converter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nconklindev/sheetcsv/internal/types"

	"github.com/xuri/excelize/v2"
)

// XLSXDecoder reads the first sheet of an Office Open XML workbook.
type XLSXDecoder struct{}

func (XLSXDecoder) Decode(path string) (*types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	s := &xlsxSheet{
		f:         f,
		name:      sheetName,
		dateStyle: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		s.date1904 = *props.Date1904
	}

	cells := make([][]types.Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]types.Cell, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if cells[r][c], err = s.cell(ref, raw); err != nil {
				return nil, fmt.Errorf("cell %s: %w", ref, err)
			}
		}
	}

	return buildTable(cells)
}

type xlsxSheet struct {
	f         *excelize.File
	name      string
	date1904  bool
	dateStyle map[int]bool
}

func (s *xlsxSheet) cell(ref, raw string) (types.Cell, error) {
	typ, err := s.f.GetCellType(s.name, ref)
	if err != nil {
		return types.Cell{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return types.Cell{Kind: types.CellBool, Bool: raw == "1" || strings.EqualFold(raw, "true")}, nil
	case excelize.CellTypeError:
		return types.Cell{Kind: types.CellError, Text: raw}, nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return types.Cell{Kind: types.CellDate, Time: t}, nil
		}
		return types.Cell{Kind: types.CellText, Text: raw}, nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return types.Cell{Kind: types.CellText, Text: raw}, nil
		}
		isDate, err := s.isDate(ref)
		if err != nil {
			return types.Cell{}, err
		}
		if isDate && v >= 0 {
			t, err := excelize.ExcelDateToTime(v, s.date1904)
			if err == nil {
				return types.Cell{Kind: types.CellDate, Time: serialTime(t, v)}, nil
			}
		}
		return types.Cell{Kind: types.CellNumber, Number: v}, nil
	}

	return types.Cell{Kind: types.CellText, Text: raw}, nil
}

// isDate looks at the number format of the cell's style. Results are cached
// per style index since most cells share a handful of styles.
func (s *xlsxSheet) isDate(ref string) (bool, error) {
	idx, err := s.f.GetCellStyle(s.name, ref)
	if err != nil {
		return false, err
	}
	if v, ok := s.dateStyle[idx]; ok {
		return v, nil
	}

	isDate := false
	if style, err := s.f.GetStyle(idx); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = isBuiltinDateFormat(style.NumFmt)
		}
	}
	s.dateStyle[idx] = isDate
	return isDate, nil
}

var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(raw string) (time.Time, bool) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
