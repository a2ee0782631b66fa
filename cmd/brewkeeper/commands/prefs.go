package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewkeeper/brewkeeper/pkg/units"
)

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change display preferences",
	}
	cmd.AddCommand(prefsShowCmd(), prefsSetCmd(), prefsResetCmd())
	return cmd
}

func prefsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the preferences in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			data, err := appCtx.parser.Marshal(prefs)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func prefsSetCmd() *cobra.Command {
	var weight, volume, color string
	var weightPrecision, volumePrecision int
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences for the logged-in user, or the preferences file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := appCtx.currentUser()
			if err != nil {
				return err
			}
			prefs := appCtx.filePrefs.WithDefaults()
			if user != "" {
				if prefs, err = appCtx.prefs.Get(cmd.Context(), user); err != nil {
					return err
				}
			}

			if weight != "" {
				if prefs.WeightUnit, err = units.ParseWeightUnit(weight); err != nil {
					return err
				}
			}
			if volume != "" {
				if prefs.VolumeUnit, err = units.ParseVolumeUnit(volume); err != nil {
					return err
				}
			}
			if color != "" {
				if prefs.ColorScale, err = units.ParseColorScale(color); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("weight-precision") {
				prefs.WeightPrecision[prefs.WeightUnit] = weightPrecision
			}
			if cmd.Flags().Changed("volume-precision") {
				prefs.VolumePrecision[prefs.VolumeUnit] = volumePrecision
			}
			if err := prefs.Validate(); err != nil {
				return err
			}

			if user != "" {
				if err := appCtx.prefs.Set(cmd.Context(), user, prefs); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved preferences for %s\n", user)
				return nil
			}
			if err := appCtx.parser.SaveToFile(prefs, appCtx.settings.PrefsPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preferences to %s\n", appCtx.settings.PrefsPath)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&weight, "weight", "", "display weight unit (oz, g, kg)")
	fl.StringVar(&volume, "volume", "", "display volume unit (gal, l, ml)")
	fl.StringVar(&color, "color", "", "display color scale (ebc, srm)")
	fl.IntVar(&weightPrecision, "weight-precision", 0, "decimal places for the display weight unit")
	fl.IntVar(&volumePrecision, "volume-precision", 0, "decimal places for the display volume unit")
	return cmd
}

func prefsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop the logged-in user's preferences so the preferences file applies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := appCtx.currentUser()
			if err != nil {
				return err
			}
			if user == "" {
				return fmt.Errorf("not logged in")
			}
			if err := appCtx.prefs.Reset(cmd.Context(), user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset preferences for %s\n", user)
			return nil
		},
	}
}
