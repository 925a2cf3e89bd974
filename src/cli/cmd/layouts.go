package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/sofmeright/reviewbadge/src/badge"
	"github.com/sofmeright/reviewbadge/src/config"
	"github.com/sofmeright/reviewbadge/src/imaging"
	"github.com/sofmeright/reviewbadge/src/output"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List badge layouts and what each one shows",
	RunE:  runLayouts,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}

func runLayouts(cmd *cobra.Command, args []string) error {
	color := output.UseColor()

	for _, l := range badge.Layouts() {
		name := string(l.ID)
		if cfg != nil && cfg.Badge.Layout == l.ID {
			name += " (configured)"
		}

		sec := output.NewSection(os.Stdout, name, color)
		sec.KV("logo size", imaging.RecommendedSize(l.ID).Label)
		sec.KV("logo", l.Logo.String())
		sec.KV("stars", fmt.Sprintf("%dpx, gap %dpx", l.Stars.Size, l.Stars.Gap))
		sec.KV("fields", strings.Join(lo.Map(l.Fields, func(f badge.Field, _ int) string { return string(f) }), ", "))
		if l.Shows(badge.FieldVerifiedText) {
			sec.KV("verified text", output.Dimmed(config.DefaultVerifiedText(l.ID), color))
		}

		sec.Separator()
		defaults := config.DefaultColors(l.ID)
		for _, slot := range l.Slots {
			sec.KV(slot.String(), output.Swatch(defaults.Get(slot), color))
		}
		sec.Close()
	}
	return nil
}
