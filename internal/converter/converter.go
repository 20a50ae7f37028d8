// Package converter turns every spreadsheet in a directory into a CSV file in
// another directory. Only the first sheet of each workbook is read, and a
// failure on one file never stops the rest of the batch.
package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/sheetcsv/internal/notify"
	"github.com/nconklindev/sheetcsv/internal/types"
)

// TextExt is the extension given to every output file.
const TextExt = ".csv"

// Extensions are the spreadsheet suffixes New recognizes, matched
// case-sensitively.
var Extensions = []string{".xlsx", ".xls"}

var (
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrPermissionDenied  = errors.New("permission denied")
)

// Decoder reads the first sheet of the workbook at path.
type Decoder interface {
	Decode(path string) (*types.Table, error)
}

type DecoderFunc func(path string) (*types.Table, error)

func (f DecoderFunc) Decode(path string) (*types.Table, error) {
	return f(path)
}

type BatchConverter struct {
	sink notify.Sink
	// exts keeps the matching order stable; decoders is keyed by it.
	exts     []string
	decoders map[string]Decoder
}

type Option func(*BatchConverter)

// WithDecoder registers d for file names ending in ext, replacing any
// decoder already registered for it.
func WithDecoder(ext string, d Decoder) Option {
	return func(c *BatchConverter) {
		if _, ok := c.decoders[ext]; !ok {
			c.exts = append(c.exts, ext)
		}
		c.decoders[ext] = d
	}
}

// New returns a converter for Extensions that reports per-file events to
// sink.
func New(sink notify.Sink, opts ...Option) *BatchConverter {
	if sink == nil {
		sink = notify.Discard
	}
	c := &BatchConverter{
		sink:     sink,
		decoders: make(map[string]Decoder),
	}
	for _, ext := range Extensions {
		WithDecoder(ext, defaultDecoder(ext))(c)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultDecoder(ext string) Decoder {
	if ext == ".xls" {
		return XLSDecoder{}
	}
	return XLSXDecoder{}
}

type candidate struct {
	entry fs.DirEntry
	ext   string
}

// Convert runs one batch. The returned error is non-nil only when a
// directory precondition fails, in which case no file has been touched.
// Per-file failures are reported through the outcomes and the sink.
func (c *BatchConverter) Convert(req types.ConversionRequest) ([]types.ConversionOutcome, error) {
	if err := checkDir(req.InputDir); err != nil {
		return nil, fmt.Errorf("input directory %q: %w", req.InputDir, err)
	}
	if err := checkDir(req.OutputDir); err != nil {
		return nil, fmt.Errorf("output directory %q: %w", req.OutputDir, err)
	}

	entries, err := os.ReadDir(req.InputDir)
	if err != nil {
		return nil, fmt.Errorf("list input directory %q: %w", req.InputDir, classify(err))
	}

	if err := checkWritable(req.OutputDir); err != nil {
		return nil, fmt.Errorf("output directory %q: %w", req.OutputDir, err)
	}

	var candidates []candidate
	for _, entry := range entries {
		if ext, ok := c.match(entry.Name()); ok {
			candidates = append(candidates, candidate{entry: entry, ext: ext})
		}
	}

	outcomes := make([]types.ConversionOutcome, 0, len(candidates))
	for i, cand := range candidates {
		outcome := c.convertFile(req, cand)
		outcomes = append(outcomes, outcome)
		c.report(outcome, i+1, len(candidates))
	}

	return outcomes, nil
}

func (c *BatchConverter) match(name string) (string, bool) {
	for _, ext := range c.exts {
		if strings.HasSuffix(name, ext) {
			return ext, true
		}
	}
	return "", false
}

// convertFile never panics: anything unexpected in a decoder becomes a
// StatusFailed outcome for this file alone.
func (c *BatchConverter) convertFile(req types.ConversionRequest, cand candidate) (outcome types.ConversionOutcome) {
	name := cand.entry.Name()
	base := baseName(name, cand.ext)
	outputFile := filepath.Join(req.OutputDir, base+TextExt)

	outcome = types.ConversionOutcome{SourceFile: name}

	defer func() {
		if r := recover(); r != nil {
			outcome = types.ConversionOutcome{
				SourceFile: name,
				Status:     types.StatusFailed,
				Message:    fmt.Sprintf("unexpected error converting '%s': %v", name, r),
			}
		}
	}()

	if !cand.entry.Type().IsRegular() && !isRegularTarget(filepath.Join(req.InputDir, name)) {
		outcome.Status = types.StatusSkippedNotSpreadsheet
		outcome.Message = fmt.Sprintf("'%s' is not a regular file", name)
		return outcome
	}

	table, err := c.decoders[cand.ext].Decode(filepath.Join(req.InputDir, name))
	if err != nil {
		outcome.Status = types.StatusDecodeFailed
		outcome.Message = fmt.Sprintf("could not read '%s': %v", name, err)
		return outcome
	}

	if err := writeCSVFile(outputFile, table); err != nil {
		outcome.Status = types.StatusEncodeFailed
		outcome.Message = fmt.Sprintf("could not write '%s': %v", base+TextExt, err)
		return outcome
	}

	outcome.Status = types.StatusSuccess
	outcome.OutputFile = outputFile
	outcome.Message = fmt.Sprintf("converted '%s' to '%s' in '%s' (%d rows)", name, base+TextExt, req.OutputDir, len(table.Rows))
	return outcome
}

// baseName strips ext from name. A name that is nothing but the extension
// is kept whole, so ".xlsx" becomes ".xlsx.csv" rather than a bare ".csv".
func baseName(name, ext string) string {
	if name == ext {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

func (c *BatchConverter) report(outcome types.ConversionOutcome, index, total int) {
	sev := types.SeverityError
	switch outcome.Status {
	case types.StatusSuccess:
		sev = types.SeverityInfo
	case types.StatusSkippedNotSpreadsheet:
		sev = types.SeverityWarning
	}
	c.sink.Notify(types.Event{
		Kind:     types.EventFileOutcome,
		Severity: sev,
		Message:  outcome.Message,
		Outcome:  &outcome,
		Index:    index,
		Total:    total,
	})
}

// isRegularTarget follows a symlink entry to see whether it points at a file.
func isRegularTarget(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func checkDir(path string) error {
	if path == "" {
		return ErrDirectoryNotFound
	}
	info, err := os.Stat(path)
	if err != nil {
		return classify(err)
	}
	if !info.IsDir() {
		return ErrDirectoryNotFound
	}
	return nil
}

// checkWritable creates and removes a probe file in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".sheetcsv-probe-*")
	if err != nil {
		return classify(err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrDirectoryNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}
