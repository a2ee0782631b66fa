package commands

import (
	"github.com/spf13/cobra"

	"github.com/brewkeeper/brewkeeper/internal/config"
	"github.com/brewkeeper/brewkeeper/internal/logging"
)

var (
	appCtx *app

	dataDir    string
	envFile    string
	logLevel   string
	weightFlag string
	volumeFlag string
	colorFlag  string
)

// Execute runs the brewkeeper CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Flag values are reset on every call.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "brewkeeper",
		Short:         "Brewing recipe and inventory manager",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadEnv(envFile)
			if err != nil {
				return err
			}
			if dataDir != "" {
				if err := settings.SetDataDir(dataDir); err != nil {
					return err
				}
			}
			if logLevel != "" {
				settings.LogLevel = logLevel
			}
			log := logging.New(logging.Config{Level: settings.LogLevel, Pretty: settings.LogPretty, Out: cmd.ErrOrStderr()})

			appCtx, err = newApp(settings, log)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			err := appCtx.close()
			appCtx = nil
			return err
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $BREWKEEPER_DATA_DIR or ~/.brewkeeper)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, disabled")
	root.PersistentFlags().StringVar(&weightFlag, "weight-unit", "", "display weight unit for this run (oz, g, kg)")
	root.PersistentFlags().StringVar(&volumeFlag, "volume-unit", "", "display volume unit for this run (gal, l, ml)")
	root.PersistentFlags().StringVar(&colorFlag, "color-scale", "", "display color scale for this run (ebc, srm)")

	root.AddCommand(convertCmd(), inventoryCmd(), recipeCmd(), prefsCmd(), loginCmd(), logoutCmd(), whoamiCmd(), serveCmd())
	return root
}
