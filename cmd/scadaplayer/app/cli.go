package app

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewCommand builds the scadaplayer command line. level is raised by the
// configuration file or --verbose.
func NewCommand(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	config := NewConfig()
	var start, end string

	cmd := &cobra.Command{
		Use:           "scadaplayer [input]",
		Short:         "render wind turbine SCADA records as a PNG frame sequence",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) > 0 {
				config.Input = args[0]
			}
			if start != "" {
				if config.Start, err = ParseTime(start); err != nil {
					return err
				}
			}
			if end != "" {
				if config.End, err = ParseTime(end); err != nil {
					return err
				}
			}
			if config.ConfigFile != "" {
				if config.Render, err = LoadRenderConfig(config.ConfigFile); err != nil {
					return fmt.Errorf("failed to load configuration file: %w", err)
				}
			}
			if err = setLogLevel(level, config.Render.LogLevel, config.Verbose); err != nil {
				return err
			}
			if err = config.Validate(); err != nil {
				return err
			}
			return Run(cmd.Context(), config, logger)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first timestamp to render, inclusive")
	cmd.Flags().StringVar(&end, "end", "", "timestamp to stop at, exclusive")
	cmd.Flags().StringVar(&config.OutputDir, "out", DefaultOutputDir, "output directory for the frames")
	cmd.Flags().StringVar(&config.ConfigFile, "config", "", "render configuration file (yaml)")
	cmd.Flags().StringVar(&config.DBPath, "db", "", "read records from a database created by import")
	cmd.Flags().Int64Var(&config.SessionID, "session", 0, "database session id, latest when omitted")
	cmd.Flags().BoolVar(&config.Verbose, "verbose", false, "enable more verbose output")

	cmd.AddCommand(newImportCommand(logger, level))
	return cmd
}

func newImportCommand(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	config := &ImportConfig{}
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import [input]",
		Short: "store a SCADA file as a new database session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				config.Input = args[0]
			}
			if err := setLogLevel(level, DefaultLogLevel, verbose); err != nil {
				return err
			}
			if err := config.Validate(); err != nil {
				return err
			}
			_, err := Import(cmd.Context(), config, logger)
			return err
		},
	}

	cmd.Flags().StringVar(&config.DBPath, "db", "", "path to the database file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable more verbose output")
	return cmd
}

func setLogLevel(level *slog.LevelVar, name string, verbose bool) error {
	if verbose {
		level.Set(slog.LevelDebug)
		return nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level '%s': %w", name, err)
	}
	return nil
}
