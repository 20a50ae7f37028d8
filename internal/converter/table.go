package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nconklindev/sheetcsv/internal/types"
)

var ErrEmptySheet = errors.New("empty workbook: first sheet has no rows")

// buildTable turns the raw rows of a sheet into a Table. Blank rows are
// dropped, the first remaining row becomes the header and every data row is
// padded to the header width.
func buildTable(rows [][]types.Cell) (*types.Table, error) {
	var kept [][]types.Cell
	width := 0
	for _, row := range rows {
		w := usedWidth(row)
		if w == 0 {
			continue
		}
		if w > width {
			width = w
		}
		kept = append(kept, row)
	}

	if len(kept) == 0 {
		return nil, ErrEmptySheet
	}

	header := kept[0]
	columns := make([]string, width)
	for i := range columns {
		if i >= len(header) || isBlank(header[i]) {
			columns[i] = fmt.Sprintf("Unnamed: %d", i)
			continue
		}
		columns[i] = formatCell(header[i], false)
	}

	table := &types.Table{
		Columns: dedupeColumns(columns),
		Rows:    make([][]types.Cell, 0, len(kept)-1),
	}
	for _, row := range kept[1:] {
		padded := make([]types.Cell, width)
		copy(padded, row)
		table.Rows = append(table.Rows, padded)
	}

	return table, nil
}

// usedWidth is the index of the last non-empty cell plus one.
func usedWidth(row []types.Cell) int {
	for i := len(row) - 1; i >= 0; i-- {
		if !isBlank(row[i]) {
			return i + 1
		}
	}
	return 0
}

func isBlank(c types.Cell) bool {
	return c.Kind == types.CellEmpty || (c.Kind == types.CellText && strings.TrimSpace(c.Text) == "")
}

// dedupeColumns renames repeated names to "name.1", "name.2", ... skipping
// any suffix that is already taken.
func dedupeColumns(columns []string) []string {
	out := make([]string, len(columns))
	counts := make(map[string]int, len(columns))
	for i, col := range columns {
		cur := counts[col]
		for cur > 0 {
			counts[col] = cur + 1
			col = fmt.Sprintf("%s.%d", col, cur)
			cur = counts[col]
		}
		out[i] = col
		counts[col] = cur + 1
	}
	return out
}
