package cmd

import (
	"fmt"
	"os"

	"github.com/notare/notare/extract"
	"github.com/spf13/cobra"
)

var extractFlags struct {
	source     string
	output     string
	format     string
	measures   string
	partName   string
	partNumber string
	chordsOnly bool
}

func init() {
	extractCmd.Flags().StringVar(&extractFlags.source, "source", "", "input score path (omit or '-' to read stdin)")
	extractCmd.Flags().StringVar(&extractFlags.output, "output", "", "output path (omit to write stdout)")
	extractCmd.Flags().StringVar(&extractFlags.format, "format", "", "output format override")
	extractCmd.Flags().StringVar(&extractFlags.measures, "measures", "", "measure ranges, e.g. '1-4,7'")
	extractCmd.Flags().StringVar(&extractFlags.partName, "part-name", "", "comma-separated part names")
	extractCmd.Flags().StringVar(&extractFlags.partNumber, "part-number", "", "comma-separated 1-based part numbers")
	extractCmd.Flags().BoolVar(&extractFlags.chordsOnly, "chords-only", false, "keep only chord events in the excerpt")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts specific measures and/or parts from a score",
	Long:  `Extracts specific measures and/or parts from a score`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := eng.Load(extractFlags.source, os.Stdin)
		if err != nil {
			return err
		}
		res, err := extract.Sections(s, extract.Options{
			Measures:    extractFlags.measures,
			PartNames:   extractFlags.partName,
			PartNumbers: extractFlags.partNumber,
			ChordsOnly:  extractFlags.chordsOnly,
		})
		if err != nil {
			return err
		}
		msg, err := eng.Write(res, extractFlags.format, extractFlags.output, os.Stdout)
		if err != nil {
			return err
		}
		if msg != "" {
			fmt.Println(msg)
		}
		return nil
	},
}
