package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sadopc/pomolog/internal/config"
	"github.com/sadopc/pomolog/internal/export"
	"github.com/sadopc/pomolog/internal/report"
	"github.com/sadopc/pomolog/internal/sessionlog"
	"github.com/sadopc/pomolog/internal/tui"
)

const reportTitle = "Daily Pomodoro Work Minutes"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pomolog",
		Short:         "Pomodoro timer that logs work sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runTimerCmd,
	}

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runTimerCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Anything written to stderr while the program owns the screen would
	// corrupt it.
	if cfg.UI.DebugLog != "" {
		f, err := tea.LogToFile(cfg.UI.DebugLog, "pomolog")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	app := tui.NewApp(sessionlog.New(sessionlog.DefaultPath), cfg.UI)

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(app, opts...)

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print minutes worked per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			agg, err := sessionlog.New(sessionlog.DefaultPath).AggregateByDate()
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), reportTitle, agg, outputWidth())
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "export {csv|json} <path>",
		Short:     "Write minutes worked per day to a CSV or JSON file",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"csv", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, path := strings.ToLower(args[0]), args[1]

			agg, err := sessionlog.New(sessionlog.DefaultPath).AggregateByDate()
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				err = export.ToCSV(agg, path)
			case "json":
				err = export.ToJSON(agg, path)
			default:
				return fmt.Errorf("unknown export format %q (want csv or json)", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days to %s\n", agg.Len(), path)
			return nil
		},
	}
}

func outputWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return report.DefaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return report.DefaultWidth
	}
	return w
}
