package converter

import (
	"fmt"
	"math"

	"github.com/nconklindev/sheetcsv/internal/types"

	"github.com/yamitzky/xlrd-go/xlrd"
)

// XLSDecoder reads the first sheet of a legacy BIFF workbook.
type XLSDecoder struct{}

func (XLSDecoder) Decode(path string) (*types.Table, error) {
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{FormattingInfo: true})
	if err != nil {
		return nil, err
	}
	if book.NSheets == 0 {
		return nil, ErrEmptySheet
	}

	sheet, err := book.SheetByIndex(0)
	if err != nil {
		return nil, err
	}

	cells := make([][]types.Cell, sheet.NRows)
	for r := 0; r < sheet.NRows; r++ {
		cells[r] = make([]types.Cell, sheet.NCols)
		for c := 0; c < sheet.NCols; c++ {
			cells[r][c] = xlsCell(book, sheet, r, c)
		}
	}

	return buildTable(cells)
}

func xlsCell(book *xlrd.Book, sheet *xlrd.Sheet, r, c int) types.Cell {
	value := sheet.CellValue(r, c)

	switch sheet.CellType(r, c) {
	case xlrd.XL_CELL_EMPTY, xlrd.XL_CELL_BLANK:
		return types.Cell{}
	case xlrd.XL_CELL_TEXT:
		return types.Cell{Kind: types.CellText, Text: toString(value)}
	case xlrd.XL_CELL_NUMBER:
		v, ok := toFloat(value)
		if !ok {
			return types.Cell{Kind: types.CellText, Text: toString(value)}
		}
		if isXLSDateCell(book, sheet.CellXFIndex(r, c)) && v >= 0 && !math.IsInf(v, 0) {
			if t, err := xlrd.XldateAsDatetime(v, book.Datemode); err == nil {
				return types.Cell{Kind: types.CellDate, Time: serialTime(t, v)}
			}
		}
		return types.Cell{Kind: types.CellNumber, Number: v}
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			return types.Cell{Kind: types.CellBool, Bool: v}
		case int:
			return types.Cell{Kind: types.CellBool, Bool: v != 0}
		}
		return types.Cell{Kind: types.CellText, Text: toString(value)}
	case xlrd.XL_CELL_ERROR:
		return types.Cell{Kind: types.CellError, Text: xlsErrorText(value)}
	}

	return types.Cell{Kind: types.CellText, Text: toString(value)}
}

func isXLSDateCell(book *xlrd.Book, xfIndex int) bool {
	if xfIndex < 0 || xfIndex >= len(book.XFList) {
		return false
	}
	key := book.XFList[xfIndex].FormatKey
	if isBuiltinDateFormat(key) {
		return true
	}
	if book.FormatMap == nil {
		return false
	}
	format := book.FormatMap[key]
	if format == nil || format.FormatString == "" {
		return false
	}
	return xlrd.IsDateFormatString(book, format.FormatString)
}

func xlsErrorText(value interface{}) string {
	switch v := value.(type) {
	case byte:
		if text, ok := xlrd.ErrorTextFromCode[v]; ok {
			return text
		}
	case int:
		if text, ok := xlrd.ErrorTextFromCode[byte(v)]; ok {
			return text
		}
	}
	return "#ERROR"
}

func toString(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
