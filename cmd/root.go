package cmd

import (
	"fmt"

	"github.com/notare/notare/engine"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

// eng holds the single notation engine (and its immutable format registry)
// every command shares.
var eng = engine.New()

var rootCmd = &cobra.Command{
	Use:           "notare",
	Short:         "Swiss-knife commands for manipulating score files",
	Long:          `Swiss-knife commands for manipulating score files`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Prints the tool version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
