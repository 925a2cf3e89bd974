package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sofmeright/reviewbadge/src/colors"
	"github.com/sofmeright/reviewbadge/src/output"
)

var colorCmd = &cobra.Command{
	Use:   "color",
	Short: "Convert between hex and HSBA colours",
}

var colorHexCmd = &cobra.Command{
	Use:   "hex <#hex|transparent>",
	Short: "Show the HSBA components of a hex colour",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := colors.Parse(args[0])
		if err != nil {
			return err
		}
		c, err := v.HSBA()
		if err != nil {
			return err
		}
		r := c.Rounded()
		fmt.Printf("%s  hue %.0f  saturation %.2f  brightness %.2f  alpha %.2f\n",
			output.Swatch(v, output.UseColor()), r.Hue, r.Saturation, r.Brightness, r.Alpha)
		return nil
	},
}

var colorHSBACmd = &cobra.Command{
	Use:   "hsba <hue> <saturation> <brightness> [alpha]",
	Short: "Convert HSBA components to a hex colour",
	Long: `Convert HSBA components to a hex colour.

Hue is in degrees [0,360); saturation, brightness, and alpha are in [0,1].
Alpha defaults to 1, which prints #rrggbb; anything lower prints #rrggbbaa.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		vals := []float64{0, 0, 0, 1}
		names := []string{"hue", "saturation", "brightness", "alpha"}
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", names[i], err)
			}
			vals[i] = f
		}
		if vals[0] < 0 || vals[0] >= 360 {
			return fmt.Errorf("hue: must be in [0,360), got %g", vals[0])
		}
		for i := 1; i < 4; i++ {
			if vals[i] < 0 || vals[i] > 1 {
				return fmt.Errorf("%s: must be in [0,1], got %g", names[i], vals[i])
			}
		}

		hex := colors.HSBAToHex(vals[0], vals[1], vals[2], vals[3])
		fmt.Println(output.Swatch(colors.Value(hex), output.UseColor()))
		return nil
	},
}

func init() {
	colorCmd.AddCommand(colorHexCmd, colorHSBACmd)
	rootCmd.AddCommand(colorCmd)
}
