package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sofmeright/reviewbadge/src/config"
	"github.com/sofmeright/reviewbadge/src/output"
	"github.com/sofmeright/reviewbadge/src/session"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  = zerolog.Nop()
)

// noConfig lists commands that run without loading the config file.
var noConfig = map[string]bool{
	"version": true,
	"init":    true,
	"hex":     true,
	"hsba":    true,
	"color":   true,
}

var rootCmd = &cobra.Command{
	Use:   "reviewbadge",
	Short: "Review badge generator",
	Long:  "reviewbadge builds self-contained HTML review badges from a YAML or TOML configuration.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)

		if noConfig[cmd.Name()] {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		warnings, err := config.Validate(cfg)
		for _, w := range warnings {
			logger.Warn().Msg(w)
		}
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .reviewbadge.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// newLogger returns a console logger on stderr.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !output.UseColor(),
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// configPath is the file the config was (or would be) loaded from.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigFile()
}

// openSession starts a session for c. Relative logo paths resolve against the
// config file's directory.
func openSession(ctx context.Context, c *config.Config) (*session.Session, error) {
	s, err := session.New(ctx, c,
		session.WithBaseDir(filepath.Dir(configPath())),
		session.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}
	return s, nil
}
