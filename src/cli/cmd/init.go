package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/reviewbadge/src/config"
)

var (
	initLayout string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Long: `Write a config file holding the defaults for a layout.

The format follows the extension: .toml writes TOML, anything else YAML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initLayout, "layout", string(config.Layout1), "layout to start from")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if len(args) == 1 {
		path = args[0]
	}

	layout := config.LayoutID(initLayout)
	if !layout.Valid() {
		return fmt.Errorf("unknown layout %q", layout)
	}

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := config.Save(path, config.Defaults(layout)); err != nil {
		return err
	}
	logger.Info().Str("path", path).Str("layout", string(layout)).Msg("config written")
	return nil
}
