package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spaghettifunk/walkthedog/engine/core"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "walkthedog",
	Short: "Walk the Dog sprite demo",
	Long: `walkthedog draws the idle dog, loads the red hat boy sprite sheet and
runs its animation. In a browser it is started by the wasm start hook; this
binary runs the same game against an in-memory canvas.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel == "" {
			return nil
		}
		l, err := core.ParseLogLevel(logLevel)
		if err != nil {
			return err
		}
		core.SetLogLevel(l)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "", "log level (debug, info, warn, error), overrides the configuration")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
