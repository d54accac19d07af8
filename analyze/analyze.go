// Package analyze computes scalar metrics over a score. Metrics are
// best-effort: one that cannot be computed reports the "N/A" sentinel
// instead of failing the invocation.
package analyze

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/notare/notare/model"
	"github.com/notare/notare/util"
)

// Unavailable is printed for a metric that could not be computed.
const Unavailable = "N/A"

type metricFunc func(s *model.Score) (string, error)

var metrics = map[string]metricFunc{
	"title":                 metricTitle,
	"key":                   metricKey,
	"tempo":                 metricTempo,
	"rhythmic_irregularity": metricNPVI,
	"note_count":            metricNoteCount,
	"avg_duration":          metricAvgDuration,
	"pitch_range":           metricPitchRange,
}

// MetricNames lists the supported metrics, sorted.
func MetricNames() []string {
	names := util.Keys(metrics)
	sort.Strings(names)
	return names
}

// Report renders the requested metrics (all when none requested) as
// "name: value" lines. Unknown metric names are a validation error; a
// metric that fails to compute degrades to N/A.
func Report(s *model.Score, requested []string) (string, error) {
	if len(requested) == 0 {
		requested = MetricNames()
	}
	var b strings.Builder
	for _, name := range requested {
		fn, ok := metrics[name]
		if !ok {
			return "", &model.ValidationError{Field: "metric", Value: name}
		}
		value, err := fn(s)
		if err != nil {
			value = Unavailable
		}
		fmt.Fprintf(&b, "%s: %s\n", name, value)
	}
	return b.String(), nil
}

func metricTitle(s *model.Score) (string, error) {
	if s.Metadata == nil || s.Metadata.Title == "" {
		return "", errors.New("no title")
	}
	return s.Metadata.Title, nil
}

func metricTempo(s *model.Score) (string, error) {
	if s.Tempo <= 0 {
		return "", errors.New("no tempo marking")
	}
	return fmt.Sprintf("%.1f BPM", s.Tempo), nil
}

func metricNoteCount(s *model.Score) (string, error) {
	return fmt.Sprintf("%d", len(allNotes(s))), nil
}

func metricAvgDuration(s *model.Score) (string, error) {
	notes := allNotes(s)
	if len(notes) == 0 {
		return "", errors.New("no notes")
	}
	var total float64
	for _, n := range notes {
		total += n.Duration
	}
	return fmt.Sprintf("%.3f", total/float64(len(notes))), nil
}

func metricPitchRange(s *model.Score) (string, error) {
	notes := allNotes(s)
	if len(notes) == 0 {
		return "", errors.New("no notes")
	}
	low, high := notes[0].Pitch, notes[0].Pitch
	for _, n := range notes[1:] {
		if n.Pitch < low {
			low = n.Pitch
		}
		if n.Pitch > high {
			high = n.Pitch
		}
	}
	return pitchName(low) + "-" + pitchName(high), nil
}

// metricNPVI is the normalized pairwise variability index over consecutive
// note durations, a standard rhythmic-irregularity measure.
func metricNPVI(s *model.Score) (string, error) {
	notes := allNotes(s)
	if len(notes) < 2 {
		return "", errors.New("not enough notes")
	}
	var sum float64
	pairs := 0
	for i := 0; i < len(notes)-1; i++ {
		a, b := notes[i].Duration, notes[i+1].Duration
		mean := (a + b) / 2
		if mean == 0 {
			continue
		}
		sum += math.Abs(a-b) / mean
		pairs++
	}
	if pairs == 0 {
		return "", errors.New("no measurable pairs")
	}
	return fmt.Sprintf("%.2f", 100*sum/float64(pairs)), nil
}

// Krumhansl-Kessler key profiles.
var majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
var minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}

var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func metricKey(s *model.Score) (string, error) {
	var histogram [12]float64
	any := false
	for _, st := range s.Staves() {
		for _, m := range st.MeasureSlice() {
			for _, e := range m.Events {
				weight := e.Duration
				if weight == 0 {
					weight = 0.25
				}
				switch e.Kind {
				case model.KindNote:
					histogram[e.Pitch%12] += weight
					any = true
				case model.KindChord:
					for _, p := range e.Pitches {
						histogram[p%12] += weight
						any = true
					}
				}
			}
		}
	}
	if !any {
		return "", errors.New("no pitched events")
	}

	best := math.Inf(-1)
	bestName := ""
	for tonic := 0; tonic < 12; tonic++ {
		if r := correlate(histogram, majorProfile, tonic); r > best {
			best, bestName = r, pitchClassNames[tonic]+" major"
		}
		if r := correlate(histogram, minorProfile, tonic); r > best {
			best, bestName = r, pitchClassNames[tonic]+" minor"
		}
	}
	return bestName, nil
}

// correlate computes the Pearson correlation between the histogram and the
// profile rotated to the given tonic.
func correlate(hist [12]float64, profile [12]float64, tonic int) float64 {
	var sumX, sumY float64
	for i := 0; i < 12; i++ {
		sumX += hist[i]
		sumY += profile[i]
	}
	meanX, meanY := sumX/12, sumY/12
	var num, denX, denY float64
	for i := 0; i < 12; i++ {
		x := hist[(tonic+i)%12] - meanX
		y := profile[i] - meanY
		num += x * y
		denX += x * x
		denY += y * y
	}
	if denX == 0 || denY == 0 {
		return math.Inf(-1)
	}
	return num / math.Sqrt(denX*denY)
}

func allNotes(s *model.Score) []model.Event {
	var notes []model.Event
	for _, st := range s.Staves() {
		for _, m := range st.MeasureSlice() {
			for _, e := range m.Events {
				if e.Kind == model.KindNote {
					notes = append(notes, e)
				}
			}
		}
	}
	return notes
}

func pitchName(midi uint8) string {
	return fmt.Sprintf("%s%d", pitchClassNames[midi%12], int(midi)/12-1)
}
