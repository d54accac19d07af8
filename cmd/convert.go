package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var convertFlags struct {
	source string
	output string
	format string
}

func init() {
	convertCmd.Flags().StringVar(&convertFlags.source, "source", "", "input score path (omit or '-' to read stdin)")
	convertCmd.Flags().StringVar(&convertFlags.output, "output", "", "output path (omit to write stdout)")
	convertCmd.Flags().StringVar(&convertFlags.format, "format", "", "target format")
	convertCmd.MarkFlagRequired("format")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a score to the requested format",
	Long:  `Converts a score to the requested format`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := eng.Load(convertFlags.source, os.Stdin)
		if err != nil {
			return err
		}
		_ = eng.Normalize(s)
		msg, err := eng.Write(s, convertFlags.format, convertFlags.output, os.Stdout)
		if err != nil {
			return err
		}
		if msg != "" {
			fmt.Println(msg)
		}
		return nil
	},
}
