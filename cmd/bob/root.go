package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/bob-diagnostic/internal/config"
	"github.com/jonathan/bob-diagnostic/internal/observability"
)

// app holds the state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string
	contentDir string
	verbose    bool

	cfg     *config.Config
	printer *observability.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "bob",
		Short: "Bob job-search diagnostic engine",
		Long: "Bob diagnoses a job seeker's project: it ranks the main challenges of their search, " +
			"writes the overall diagnostic and comments on the profile fields they fill in.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a JSON configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides "+config.EnvLogLevel+")")
	flags.StringVar(&a.contentDir, "content-dir", "", "Read content from <collection>.json files in this directory instead of the database")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print a human-readable summary on stderr")

	cmd.AddCommand(
		newDiagnoseCmd(a),
		newQuickDiagnoseCmd(a),
		newCheckContentCmd(a),
		newImportContentCmd(a),
		newCollectionsCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.printer = observability.NewPrinter(cmd.ErrOrStderr())

	opts := &slog.HandlerOptions{Level: cfg.Level()}
	var handler slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
