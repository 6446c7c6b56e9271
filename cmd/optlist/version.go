package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwilhelm/optlist"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of optlist",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("optlist version %s\n", strings.TrimSpace(optlist.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
