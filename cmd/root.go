// Package cmd implements the sdkgen command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sdkgen/config"
)

var (
	configFile string
	profile    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sdkgen",
	Short: "Generate ordered SDK headers from a reflection snapshot",
	Long: `sdkgen loads a reflected object universe snapshot, partitions it
into packages, resolves inter-package dependency cycles and emits one
pair of header files per package in dependency order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile, profile)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile, "configuration file")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "configuration profile to apply")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
