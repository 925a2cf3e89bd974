package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sofmeright/reviewbadge/src/config"
	"github.com/sofmeright/reviewbadge/src/imaging"
	"github.com/sofmeright/reviewbadge/src/output"
)

var (
	checkLayout string
	checkStrict bool
)

var checkImageCmd = &cobra.Command{
	Use:   "check-image <file>...",
	Short: "Check logo images against a layout's recommended size",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheckImage,
}

func init() {
	checkImageCmd.Flags().StringVar(&checkLayout, "layout", "", "layout to check against (default: configured layout)")
	checkImageCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit non-zero when an image does not fit")

	rootCmd.AddCommand(checkImageCmd)
}

func runCheckImage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	color := output.UseColor()

	layout := cfg.Badge.Layout
	if checkLayout != "" {
		layout = config.LayoutID(checkLayout)
	}
	if !layout.Valid() {
		return fmt.Errorf("unknown layout %q", layout)
	}
	size := imaging.RecommendedSize(layout)

	var warnings []string
	sec := output.NewSection(os.Stdout, fmt.Sprintf("%s · max %s", layout, size.Label), color)
	for _, path := range args {
		name := filepath.Base(path)
		data, err := os.ReadFile(path)
		if err != nil {
			output.RowStatus(sec, name, "unreadable", "failed", color)
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, err))
			continue
		}

		detail := "undecodable"
		if w, h, err := imaging.Dimensions(data); err == nil {
			detail = fmt.Sprintf("%dx%d", w, h)
		}
		if imaging.ValidateImageSize(ctx, data, layout) {
			output.RowStatus(sec, name, detail, "success", color)
			continue
		}
		output.RowStatus(sec, name, detail, "failed", color)
		warnings = append(warnings, imaging.OversizeWarning(name, layout))
	}
	sec.Close()

	for _, w := range warnings {
		output.Warning(os.Stderr, w, color)
	}
	if checkStrict && len(warnings) > 0 {
		return fmt.Errorf("%d of %d images do not fit %s", len(warnings), len(args), size.Label)
	}
	return nil
}
