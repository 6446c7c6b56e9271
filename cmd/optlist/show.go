package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dwilhelm/optlist/internal/cli"
	"github.com/dwilhelm/optlist/internal/presentation/tui"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the panel as a checkbox list",
	Run: func(cmd *cobra.Command, args []string) {
		tooltips, _ := cmd.Flags().GetBool("tooltips")
		banner, _ := cmd.Flags().GetBool("banner")

		panel, _, err := cli.BuildPanel(cmd.Context(), cliConfig(cmd))
		if err != nil {
			fmt.Printf("Error building panel: %v\n", err)
			os.Exit(1)
		}

		if banner {
			tui.PrintBanner()
		}

		if err := tui.RenderList(os.Stdout, panel.Entries(), tui.ListOptions{Tooltips: tooltips}); err != nil {
			fmt.Printf("Error rendering panel: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("tooltips", false, "Render tooltip markdown below each entry")
	showCmd.Flags().Bool("banner", false, "Print the startup banner")
}
