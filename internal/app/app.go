// Package app wires the directory prompt, the batch converter and the event
// sinks into one run.
package app

import (
	"errors"
	"fmt"

	"github.com/nconklindev/sheetcsv/internal/converter"
	"github.com/nconklindev/sheetcsv/internal/notify"
	"github.com/nconklindev/sheetcsv/internal/types"
)

const (
	InputPromptTitle  = "Select the input directory"
	OutputPromptTitle = "Select the output directory"
)

// DirectoryPrompt asks the user for a directory. An empty path with a nil
// error means the user declined.
type DirectoryPrompt interface {
	SelectDirectory(title string) (string, error)
}

type Converter interface {
	Convert(req types.ConversionRequest) ([]types.ConversionOutcome, error)
}

var _ Converter = (*converter.BatchConverter)(nil)

// Run asks for both directories, converts, and emits the terminal event. It
// returns the outcomes of the batch, or nil when the batch never started.
func Run(prompt DirectoryPrompt, conv Converter, sink notify.Sink) ([]types.ConversionOutcome, error) {
	in, ok, err := ask(prompt, InputPromptTitle, "No input directory selected", sink)
	if !ok {
		return nil, err
	}
	out, ok, err := ask(prompt, OutputPromptTitle, "No output directory selected", sink)
	if !ok {
		return nil, err
	}

	outcomes, err := conv.Convert(types.ConversionRequest{InputDir: in, OutputDir: out})
	if err != nil {
		sink.Notify(types.Event{
			Kind:     types.EventBatchAborted,
			Severity: types.SeverityError,
			Message:  abortMessage(err),
		})
		return nil, err
	}

	sink.Notify(types.Event{
		Kind:     types.EventBatchComplete,
		Severity: types.SeverityInfo,
		Message:  Summary(outcomes),
	})
	return outcomes, nil
}

func ask(prompt DirectoryPrompt, title, declined string, sink notify.Sink) (string, bool, error) {
	dir, err := prompt.SelectDirectory(title)
	if err != nil {
		sink.Notify(types.Event{
			Kind:     types.EventBatchAborted,
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("directory prompt failed: %v", err),
		})
		return "", false, err
	}
	if dir == "" {
		sink.Notify(types.Event{
			Kind:     types.EventNoDirectory,
			Severity: types.SeverityWarning,
			Message:  declined,
		})
		return "", false, nil
	}
	return dir, true, nil
}

func abortMessage(err error) string {
	switch {
	case errors.Is(err, converter.ErrDirectoryNotFound):
		return fmt.Sprintf("The selected directory could not be found: %v", err)
	case errors.Is(err, converter.ErrPermissionDenied):
		return fmt.Sprintf("Access to the directory or its files was denied: %v", err)
	}
	return fmt.Sprintf("Processing the directory failed: %v", err)
}

// Summary renders the batch-complete message.
func Summary(outcomes []types.ConversionOutcome) string {
	converted := 0
	for _, o := range outcomes {
		if o.OK() {
			converted++
		}
	}
	if len(outcomes) == 0 {
		return "All files processed: no spreadsheets found"
	}
	return fmt.Sprintf("All files processed: %d converted, %d failed", converted, len(outcomes)-converted)
}
