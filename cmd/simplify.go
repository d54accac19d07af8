package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/notare/notare/selection"
	"github.com/notare/notare/simplify"
	"github.com/spf13/cobra"
)

var simplifyFlags struct {
	source                  string
	output                  string
	format                  string
	measures                string
	partName                string
	partNumber              string
	algorithms              []string
	ornamentRemovalDuration string
}

func init() {
	simplifyCmd.Flags().StringVar(&simplifyFlags.source, "source", "", "input score path (omit or '-' to read stdin)")
	simplifyCmd.Flags().StringVar(&simplifyFlags.output, "output", "", "output path (omit to write stdout)")
	simplifyCmd.Flags().StringVar(&simplifyFlags.format, "format", "", "output format override")
	simplifyCmd.Flags().StringVar(&simplifyFlags.measures, "measures", "", "measure ranges, e.g. '1-4,7'")
	simplifyCmd.Flags().StringVar(&simplifyFlags.partName, "part-name", "", "comma-separated part names")
	simplifyCmd.Flags().StringVar(&simplifyFlags.partNumber, "part-number", "", "comma-separated 1-based part numbers")
	simplifyCmd.Flags().StringArrayVar(&simplifyFlags.algorithms, "algorithm", nil,
		"algorithm to run, in order (known: "+strings.Join(simplify.Names(), ", ")+"); unknown names are skipped")
	simplifyCmd.Flags().StringVar(&simplifyFlags.ornamentRemovalDuration, "ornament-removal-duration", "",
		"beat ratio threshold for ornament_removal, e.g. '1/8'")
	rootCmd.AddCommand(simplifyCmd)
}

var simplifyCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Applies simplification algorithms to a score",
	Long:  `Applies simplification algorithms to a score`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := eng.Load(simplifyFlags.source, os.Stdin)
		if err != nil {
			return err
		}

		ranges, err := selection.ParseMeasureSpec(simplifyFlags.measures)
		if err != nil {
			return err
		}
		staves, err := selection.SelectParts(s, simplifyFlags.partName, simplifyFlags.partNumber)
		if err != nil {
			return err
		}

		algs := make([]simplify.Algorithm, 0, len(simplifyFlags.algorithms))
		for _, name := range simplifyFlags.algorithms {
			params := map[string]string{}
			if simplifyFlags.ornamentRemovalDuration != "" {
				params["duration"] = simplifyFlags.ornamentRemovalDuration
			}
			algs = append(algs, simplify.Algorithm{Name: name, Params: params})
		}

		simplify.Apply(s, algs, simplify.Context{Ranges: ranges, Staves: staves})

		msg, err := eng.Write(s, simplifyFlags.format, simplifyFlags.output, os.Stdout)
		if err != nil {
			return err
		}
		if msg != "" {
			fmt.Println(msg)
		}
		return nil
	},
}
