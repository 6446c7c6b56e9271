package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dwilhelm/optlist/internal/cli"
	"github.com/dwilhelm/optlist/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the implication graph visualization",
	Long:  `Inspects the panel and outputs a Mermaid diagram (graph TD) of the entries and their implication links.`,
	Run: func(cmd *cobra.Command, args []string) {
		withState, _ := cmd.Flags().GetBool("state")

		panel, _, err := cli.BuildPanel(cmd.Context(), cliConfig(cmd))
		if err != nil {
			fmt.Printf("Error building panel: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if withState {
			overlay = &graph.Overlay{Entries: panel.Entries()}
		}

		fmt.Print(graph.GenerateMermaid(panel.Entries(), panel.Links(), overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("state", false, "Style nodes by their current checked and locked state")
}
