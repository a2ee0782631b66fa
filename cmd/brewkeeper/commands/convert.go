package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewkeeper/brewkeeper/pkg/units"
)

func convertCmd() *cobra.Command {
	var precision int
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between canonical and display units",
	}
	cmd.PersistentFlags().IntVar(&precision, "precision", -1, "decimal places (default per unit)")

	cmd.AddCommand(&cobra.Command{
		Use:   "weight GRAMS",
		Short: "Render grams in the display weight unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			if precision >= 0 {
				prefs.WeightPrecision[prefs.WeightUnit] = precision
			}
			out := units.FormatWeight(units.ParseAmount(args[0]), prefs.WeightUnit, prefs.WeightPrecision)
			return printValue(cmd, out, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "volume LITERS",
		Short: "Render liters in the display volume unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			if precision >= 0 {
				prefs.VolumePrecision[prefs.VolumeUnit] = precision
			}
			out := units.FormatVolume(units.ParseAmount(args[0]), prefs.VolumeUnit, prefs.VolumePrecision)
			return printValue(cmd, out, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "srm EBC",
		Short: "Render an EBC color value as SRM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srm, _ := units.ToDisplaySRM(units.ParseAmount(args[0]))
			return printValue(cmd, srm, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "liters AMOUNT",
		Short: "Convert an amount in the display volume unit to liters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			v := units.ToLiters(args[0], prefs.VolumeUnit)
			if !v.Valid {
				return printValue(cmd, "", args[0])
			}
			return printValue(cmd, v.Decimal.String()+" l", args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "grams AMOUNT",
		Short: "Convert an amount in the display weight unit to grams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			v := units.ToGrams(args[0], prefs.WeightUnit)
			if !v.Valid {
				return printValue(cmd, "", args[0])
			}
			return printValue(cmd, v.Decimal.String()+" g", args[0])
		},
	})
	return cmd
}

// printValue prints a converted value. Missing or non-numeric input prints
// nothing and fails, so scripts can tell an empty result from zero.
func printValue(cmd *cobra.Command, out, input string) error {
	if out == "" {
		return fmt.Errorf("no value for %q", input)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
