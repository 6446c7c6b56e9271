package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dwilhelm/optlist/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "optlist",
	Short: "Optlist manages boolean options bound to configuration values",
	Long: `Optlist drives a panel of boolean options declared in a manifest and
bound to a YAML configuration file. Options imply each other through
links, and policies can lock keys against changes.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("manifest", "m", "manifest.yaml", "Manifest file or loam directory declaring the panel")
	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "YAML configuration file the entries bind to")
	rootCmd.PersistentFlags().StringSlice("lock", nil, "Key prefixes to policy-lock (repeatable)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

// cliConfig collects the persistent flags into a factory config.
func cliConfig(cmd *cobra.Command) cli.Config {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	configPath, _ := cmd.Flags().GetString("config")
	lockPrefixes, _ := cmd.Flags().GetStringSlice("lock")
	logLevel, _ := cmd.Flags().GetString("log-level")

	return cli.Config{
		ManifestPath: manifestPath,
		ConfigPath:   configPath,
		LockPrefixes: lockPrefixes,
		LogLevel:     logLevel,
	}
}
