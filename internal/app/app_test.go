package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/sheetcsv/internal/converter"
	"github.com/nconklindev/sheetcsv/internal/notify"
	"github.com/nconklindev/sheetcsv/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// scriptedPrompt answers prompts in order and records the titles it saw.
type scriptedPrompt struct {
	answers []string
	err     error
	titles  []string
}

func (p *scriptedPrompt) SelectDirectory(title string) (string, error) {
	p.titles = append(p.titles, title)
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return "", nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type fakeConverter struct {
	outcomes []types.ConversionOutcome
	err      error
	calls    int
}

func (f *fakeConverter) Convert(types.ConversionRequest) ([]types.ConversionOutcome, error) {
	f.calls++
	return f.outcomes, f.err
}

func TestRunDeclinedDirectory(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    string
	}{
		{"no input", nil, "No input directory selected"},
		{"no output", []string{"/in"}, "No output directory selected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := &scriptedPrompt{answers: tt.answers}
			conv := &fakeConverter{}
			var rec notify.Recorder

			outcomes, err := Run(prompt, conv, &rec)
			require.NoError(t, err)
			assert.Nil(t, outcomes)
			assert.Zero(t, conv.calls)

			events := rec.Events()
			require.Len(t, events, 1)
			assert.Equal(t, types.EventNoDirectory, events[0].Kind)
			assert.Equal(t, types.SeverityWarning, events[0].Severity)
			assert.Equal(t, tt.want, events[0].Message)
		})
	}
}

func TestRunPromptError(t *testing.T) {
	prompt := &scriptedPrompt{err: errors.New("no terminal")}
	var rec notify.Recorder

	_, err := Run(prompt, &fakeConverter{}, &rec)
	require.Error(t, err)
	assert.Equal(t, 1, rec.Count(types.EventBatchAborted))
}

func TestRunAbortsOnPrecondition(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing directory", fmt.Errorf("input: %w", converter.ErrDirectoryNotFound), "could not be found"},
		{"permission", fmt.Errorf("output: %w", converter.ErrPermissionDenied), "denied"},
		{"other", errors.New("disk on fire"), "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := &scriptedPrompt{answers: []string{"/in", "/out"}}
			var rec notify.Recorder

			_, err := Run(prompt, &fakeConverter{err: tt.err}, &rec)
			require.ErrorIs(t, err, tt.err)

			events := rec.Events()
			require.Len(t, events, 1)
			assert.Equal(t, types.EventBatchAborted, events[0].Kind)
			assert.Equal(t, types.SeverityError, events[0].Severity)
			assert.Contains(t, events[0].Message, tt.want)
		})
	}
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	in, out := filepath.Join(root, "in"), filepath.Join(root, "out")
	require.NoError(t, os.Mkdir(in, 0o755))
	require.NoError(t, os.Mkdir(out, 0o755))

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"id", "value"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{1, 10.5}))
	require.NoError(t, f.SaveAs(filepath.Join(in, "report.xlsx")))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.xlsx"), []byte("garbage"), 0o644))

	var rec notify.Recorder
	prompt := &scriptedPrompt{answers: []string{in, out}}

	outcomes, err := Run(prompt, converter.New(&rec), &rec)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, []string{InputPromptTitle, OutputPromptTitle}, prompt.titles)
	assert.Equal(t, 2, rec.Count(types.EventFileOutcome))
	assert.Equal(t, 1, rec.Count(types.EventBatchComplete))

	events := rec.Events()
	last := events[len(events)-1]
	assert.Equal(t, types.EventBatchComplete, last.Kind)
	assert.Equal(t, "All files processed: 1 converted, 1 failed", last.Message)
}

func TestRunMissingInputCreatesNothing(t *testing.T) {
	out := t.TempDir()
	var rec notify.Recorder
	prompt := &scriptedPrompt{answers: []string{filepath.Join(out, "missing"), out}}

	_, err := Run(prompt, converter.New(&rec), &rec)
	require.ErrorIs(t, err, converter.ErrDirectoryNotFound)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Len(t, rec.Events(), 1)
}

func TestRunEmptyBatchCompletes(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	var rec notify.Recorder

	outcomes, err := Run(&scriptedPrompt{answers: []string{in, out}}, converter.New(&rec), &rec)
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, types.EventBatchComplete, events[0].Kind)
	assert.Equal(t, "All files processed: no spreadsheets found", events[0].Message)
}
