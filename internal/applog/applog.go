// Package applog is the process-wide append log. It is opened once at
// startup, receives every batch event, and is closed on exit.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nconklindev/sheetcsv/internal/types"
)

const Flags = log.Ldate | log.Ltime | log.Lmicroseconds

type Logger struct {
	l *log.Logger
	c io.Closer
}

// Open appends to path, creating it if needed.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{l: log.New(f, "", Flags), c: f}, nil
}

// New logs to w. Close is a no-op unless w is an io.Closer.
func New(w io.Writer) *Logger {
	lg := &Logger{l: log.New(w, "", Flags)}
	if c, ok := w.(io.Closer); ok {
		lg.c = c
	}
	return lg
}

func (lg *Logger) Printf(sev types.Severity, format string, args ...any) {
	lg.l.Printf("%s: %s", sev, fmt.Sprintf(format, args...))
}

func (lg *Logger) Notify(ev types.Event) {
	msg := ev.Message
	if ev.Outcome != nil && ev.Total > 0 {
		msg = fmt.Sprintf("[%d/%d] %s", ev.Index, ev.Total, msg)
	}
	lg.Printf(ev.Severity, "%s", msg)
}

func (lg *Logger) Close() error {
	if lg.c == nil {
		return nil
	}
	return lg.c.Close()
}
