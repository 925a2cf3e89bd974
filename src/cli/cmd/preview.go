package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/reviewbadge/src/config"
	"github.com/sofmeright/reviewbadge/src/output"
)

var previewLayout string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the badge markup without embedding images",
	Long: `Print the badge container as it would appear in the exported document,
with image references left as they are. Nothing is fetched.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewLayout, "layout", "", "override the configured layout")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	color := output.UseColor()

	sess, err := openSession(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	if previewLayout != "" {
		if err := sess.SetLayout(config.LayoutID(previewLayout)); err != nil {
			return err
		}
	}
	if w := sess.Warning(); w != "" {
		output.Warning(os.Stderr, w, color)
	}

	html, err := sess.Preview()
	if err != nil {
		return err
	}
	return output.Display(os.Stdout, html, cfg.Output.Highlight && color)
}
