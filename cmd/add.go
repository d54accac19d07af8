package cmd

import (
	"fmt"
	"os"

	"github.com/notare/notare/splice"
	"github.com/spf13/cobra"
)

var addFlags struct {
	original string
	toAdd    string
	measure  int
	after    bool
	output   string
	format   string
}

func init() {
	addCmd.Flags().StringVar(&addFlags.original, "original", "", "base score path")
	addCmd.Flags().StringVar(&addFlags.toAdd, "to-add", "", "score whose measures/parts get inserted")
	addCmd.Flags().IntVar(&addFlags.measure, "measure", 1, "1-based target measure in the base score")
	addCmd.Flags().BoolVar(&addFlags.after, "after", false, "insert after the target measure instead of before")
	addCmd.Flags().StringVar(&addFlags.output, "output", "", "output path (omit to write stdout)")
	addCmd.Flags().StringVar(&addFlags.format, "format", "", "output format override")
	addCmd.MarkFlagRequired("original")
	addCmd.MarkFlagRequired("to-add")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Inserts all measures of one score into another, keeping parts aligned",
	Long:  `Inserts all measures of one score into another, keeping parts aligned`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := eng.Load(addFlags.original, os.Stdin)
		if err != nil {
			return err
		}
		inc, err := eng.Load(addFlags.toAdd, os.Stdin)
		if err != nil {
			return err
		}
		if err := splice.Add(base, inc, addFlags.measure, !addFlags.after); err != nil {
			return err
		}
		msg, err := eng.Write(base, addFlags.format, addFlags.output, os.Stdout)
		if err != nil {
			return err
		}
		if msg != "" {
			fmt.Println(msg)
		}
		return nil
	},
}
