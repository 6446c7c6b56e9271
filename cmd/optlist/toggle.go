package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dwilhelm/optlist/internal/cli"
	"github.com/dwilhelm/optlist/internal/presentation/tui"
	"github.com/dwilhelm/optlist/pkg/domain"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <key> <true|false>",
	Short: "Set an option and commit the result",
	Long: `Sets an entry's checkbox, propagates implication links, and commits
all resulting states back to the configuration file. Use --dry-run to
preview the settled panel without writing.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		checked, err := strconv.ParseBool(args[1])
		if err != nil {
			fmt.Printf("Invalid state %q: want true or false\n", args[1])
			os.Exit(1)
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		panel, _, err := cli.BuildPanel(cmd.Context(), cliConfig(cmd))
		if err != nil {
			fmt.Printf("Error building panel: %v\n", err)
			os.Exit(1)
		}

		if err := panel.SetChecked(key, checked); err != nil {
			fmt.Printf("Toggle failed: %v\n", err)
			os.Exit(1)
		}

		if !dryRun {
			if err := panel.Commit(cmd.Context()); err != nil {
				if failures, ok := domain.CommitFailures(err); ok {
					for _, f := range failures {
						fmt.Printf("Write failed for %s: %v\n", f.Key, f.Err)
					}
				} else {
					fmt.Printf("Commit failed: %v\n", err)
				}
				os.Exit(1)
			}
		}

		if err := tui.RenderList(os.Stdout, panel.Entries(), tui.ListOptions{}); err != nil {
			fmt.Printf("Error rendering panel: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	toggleCmd.Flags().Bool("dry-run", false, "Propagate links but do not write the config file")
}
