package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwilhelm/optlist/internal/cli"
	"github.com/dwilhelm/optlist/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the manifest for consistency",
	Long: `Lints the manifest: duplicate keys, dangling or malformed links, bad
enum values. Implication cycles are reported as warnings; they are
legal but settle on registration order.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cliConfig(cmd)
		if len(args) > 0 {
			cfg.ManifestPath = args[0]
		}

		m, err := cli.LoadManifest(cmd.Context(), cfg.ManifestPath)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		if err := validator.Validate(m); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		if cyclic := validator.Cycles(m); len(cyclic) > 0 {
			fmt.Printf("Warning: implication cycle through %s\n", strings.Join(cyclic, ", "))
		}

		fmt.Println("Manifest is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
