package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/reviewbadge/src/config"
	"github.com/sofmeright/reviewbadge/src/output"
)

var (
	genOut    string
	genPrint  bool
	genCopy   bool
	genLayout string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the badge HTML document",
	Long: `Generate a standalone HTML document for the configured badge.

Every logo is embedded as a data URI. Logos that cannot be read are left as
their original reference and reported as warnings.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output file, - for none (default: output.file from config)")
	generateCmd.Flags().BoolVar(&genPrint, "print", false, "print the document to stdout")
	generateCmd.Flags().BoolVar(&genCopy, "copy", false, "copy the document to the clipboard")
	generateCmd.Flags().StringVar(&genLayout, "layout", "", "override the configured layout")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	color := output.UseColor()

	sess, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	if genLayout != "" {
		if err := sess.SetLayout(config.LayoutID(genLayout)); err != nil {
			return err
		}
	}
	if w := sess.Warning(); w != "" {
		output.Warning(os.Stderr, w, color)
	}

	start := time.Now()
	html, err := sess.Generate(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	path := genOut
	if path == "" {
		path = cfg.Output.File
	}
	if path != "-" && path != "" {
		if err := writeDocument(path, html); err != nil {
			return err
		}
	}

	if genPrint {
		if err := output.Display(os.Stdout, html, cfg.Output.Highlight && color); err != nil {
			return fmt.Errorf("printing document: %w", err)
		}
	}

	if genCopy {
		copyDocument(html, cfg.Output.Branding, color)
	}

	snap := sess.Snapshot()
	sec := output.NewSection(os.Stderr, "Generate", color)
	sec.KV("layout", string(snap.Layout))
	sec.KV("elapsed", output.Elapsed(elapsed))
	sec.KV("rating", snap.AverageRating())
	sec.KV("size", fmt.Sprintf("%d bytes", len(html)))
	if path != "-" && path != "" {
		sec.KV("written", path)
	}
	sec.Close()
	return nil
}

// writeDocument writes html to path, creating parent directories.
func writeDocument(path, html string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// copyDocument copies html to the clipboard. A failure is logged and the
// confirmation is skipped.
func copyDocument(html string, branding, color bool) {
	if err := output.Copy(output.NewOSC52(), html, branding); err != nil {
		logger.Error().Err(err).Msg("clipboard copy failed")
		return
	}
	output.Copied(os.Stderr, color)
}
