package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nconklindev/sheetcsv/internal/app"
	"github.com/nconklindev/sheetcsv/internal/applog"
	"github.com/nconklindev/sheetcsv/internal/config"
	"github.com/nconklindev/sheetcsv/internal/converter"
	"github.com/nconklindev/sheetcsv/internal/notify"
	"github.com/nconklindev/sheetcsv/internal/types"
	"github.com/nconklindev/sheetcsv/internal/ui"

	"github.com/charmbracelet/x/term"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sheetcsv",
	Short: "Convert every spreadsheet in a directory to CSV",
	Long: `sheetcsv asks for an input and an output directory, then converts the
first sheet of every .xlsx and .xls file in the input directory into a
UTF-8 CSV file of the same name in the output directory.

Settings are read from the environment (or a .env file):
  SHEETCSV_LOG_FILE   append log (default sheetcsv.log)
  SHEETCSV_START_DIR  where the directory picker opens (default: cwd)`,
	Version:       fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", version, commit, date),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger, err := applog.Open(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Close()

	runID := uuid.NewString()
	logger.Printf(types.SeverityInfo, "run %s started (sheetcsv %s)", runID, version)
	defer logger.Printf(types.SeverityInfo, "run %s finished", runID)

	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		width = 80
	}

	sink := notify.Fanout{logger, ui.NewNotifier(os.Stdout, width)}
	prompt := &ui.Prompt{StartDir: cfg.StartDir}

	if _, err := app.Run(prompt, converter.New(sink), sink); err != nil {
		return errReported
	}
	return nil
}

// errReported marks a failure the sink has already shown to the user.
var errReported = errors.New("reported")

func main() {
	rootCmd.SetVersionTemplate("sheetcsv {{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}
}
