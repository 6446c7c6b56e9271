package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/internal/cli"
	"github.com/dwilhelm/optlist/internal/presentation/tui"
	fileAdapter "github.com/dwilhelm/optlist/pkg/adapters/file"
	"github.com/dwilhelm/optlist/pkg/domain"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Write the panel states back to the configuration file",
	Long: `Commits the panel to the configuration file, materializing declared
defaults for keys the file does not have yet. With --draft, a parked
draft is applied first.`,
	Run: func(cmd *cobra.Command, args []string) {
		draftName, _ := cmd.Flags().GetString("draft")
		draftsDir, _ := cmd.Flags().GetString("drafts-dir")

		var opts []optlist.Option
		if draftName != "" {
			drafts, err := fileAdapter.NewDraftStore(draftsDir)
			if err != nil {
				fmt.Printf("Error opening draft store: %v\n", err)
				os.Exit(1)
			}
			opts = append(opts, optlist.WithDraftStore(drafts))
		}

		panel, _, err := cli.BuildPanel(cmd.Context(), cliConfig(cmd), opts...)
		if err != nil {
			fmt.Printf("Error building panel: %v\n", err)
			os.Exit(1)
		}

		if draftName != "" {
			if err := panel.RestoreDraft(cmd.Context(), draftName); err != nil {
				fmt.Printf("Restore draft failed: %v\n", err)
				os.Exit(1)
			}
		}

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

		if err := tui.RenderList(os.Stdout, panel.Entries(), tui.ListOptions{}); err != nil {
			fmt.Printf("Error rendering panel: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
	commitCmd.Flags().String("draft", "", "Apply this parked draft before committing")
	commitCmd.Flags().String("drafts-dir", ".optlist/drafts", "Directory for draft files")
}
