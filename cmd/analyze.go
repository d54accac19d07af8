package cmd

import (
	"fmt"
	"os"

	"github.com/notare/notare/analyze"
	"github.com/spf13/cobra"
)

var analyzeFlags struct {
	source string

	title       bool
	key         bool
	tempo       bool
	rhythmic    bool
	noteCount   bool
	avgDuration bool
	pitchRange  bool
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.source, "source", "", "input score path (omit or '-' to read stdin)")
	f.BoolVar(&analyzeFlags.title, "title", false, "report the title")
	f.BoolVar(&analyzeFlags.key, "key", false, "report the estimated key")
	f.BoolVar(&analyzeFlags.tempo, "tempo", false, "report the tempo estimate")
	f.BoolVar(&analyzeFlags.rhythmic, "rhythmic-irregularity", false, "report the nPVI rhythmic-irregularity index")
	f.BoolVar(&analyzeFlags.noteCount, "note-count", false, "report the note count")
	f.BoolVar(&analyzeFlags.avgDuration, "avg-duration", false, "report the average note duration in beats")
	f.BoolVar(&analyzeFlags.pitchRange, "pitch-range", false, "report the lowest and highest notes")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyzes a score and reports requested metrics",
	Long:  `Analyzes a score and reports requested metrics; metrics that cannot be computed read "N/A"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := eng.Load(analyzeFlags.source, os.Stdin)
		if err != nil {
			return err
		}
		var requested []string
		for _, metric := range []struct {
			name    string
			enabled bool
		}{
			{"title", analyzeFlags.title},
			{"key", analyzeFlags.key},
			{"tempo", analyzeFlags.tempo},
			{"rhythmic_irregularity", analyzeFlags.rhythmic},
			{"note_count", analyzeFlags.noteCount},
			{"avg_duration", analyzeFlags.avgDuration},
			{"pitch_range", analyzeFlags.pitchRange},
		} {
			if metric.enabled {
				requested = append(requested, metric.name)
			}
		}
		report, err := analyze.Report(s, requested)
		if err != nil {
			return err
		}
		fmt.Print(report)
		return nil
	},
}
