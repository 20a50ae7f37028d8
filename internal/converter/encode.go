package converter

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/sheetcsv/internal/types"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodeCSV writes the table as UTF-8 CSV with a leading byte order mark,
// header first, columns and rows in decoded order.
func EncodeCSV(w io.Writer, t *types.Table) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())

	writer := csv.NewWriter(bw)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}

	floats := floatColumns(t)
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = formatCell(row[i], floats[i])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return bw.Close()
}

// writeCSVFile encodes into a temporary file next to outputFile and renames
// it into place, so a failed or panicking write never leaves a partial
// output or a stray temporary file behind.
func writeCSVFile(outputFile string, t *types.Table) (err error) {
	dir, name := filepath.Split(outputFile)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(name, filepath.Ext(name))+"-*.tmp")
	if err != nil {
		return err
	}
	done := false
	defer func() {
		if !done {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = EncodeCSV(tmp, t); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), outputFile); err != nil {
		return err
	}
	done = true
	return nil
}
