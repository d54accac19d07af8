package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(formatsCmd)
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Lists supported input and output formats",
	Long:  `Lists supported input and output formats`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Supported output formats:")
		for _, f := range eng.Formats().OutputFormats() {
			fmt.Printf(" - %s\n", f)
		}
		fmt.Println("Supported input formats:")
		for _, f := range eng.Formats().InputFormats() {
			fmt.Printf(" - %s\n", f)
		}
	},
}
