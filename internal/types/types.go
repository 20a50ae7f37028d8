package types

import "time"

type ConversionRequest struct {
	InputDir  string
	OutputDir string
}

type Status int

const (
	StatusSuccess Status = iota
	StatusDecodeFailed
	StatusEncodeFailed
	StatusSkippedNotSpreadsheet
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusDecodeFailed:
		return "decode failed"
	case StatusEncodeFailed:
		return "encode failed"
	case StatusSkippedNotSpreadsheet:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

type ConversionOutcome struct {
	SourceFile string
	OutputFile string
	Status     Status
	Message    string
}

func (o ConversionOutcome) OK() bool {
	return o.Status == StatusSuccess
}

type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
	CellBool
	CellError
)

// Cell is a single decoded spreadsheet value. Only the field matching Kind
// is meaningful.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Time   time.Time
	Bool   bool
}

// Table is the first sheet of a workbook after header normalization. Every
// row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	}
	return "UNKNOWN"
}

type EventKind int

const (
	EventFileOutcome EventKind = iota
	EventNoDirectory
	EventBatchAborted
	EventBatchComplete
)

type Event struct {
	Kind     EventKind
	Severity Severity
	Message  string
	Outcome  *ConversionOutcome
	// Index is 1-based; Index and Total are zero for batch-level events.
	Index int
	Total int
}
