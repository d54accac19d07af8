package simplify

import (
	"sort"
	"strconv"
	"strings"

	"github.com/notare/notare/model"
	"github.com/notare/notare/score"
	"github.com/notare/notare/selection"
)

const defaultRatio = 1.0 / 8.0

// OrnamentRemoval strips ornament markings and removes decorative notes:
// grace notes unconditionally, and short stepwise weak-beat notes between
// two longer neighbors via a sliding-window heuristic. The "duration" param
// is the beat ratio used as the shortness threshold, default 1/8.
func OrnamentRemoval(s *model.Score, ctx Context, params map[string]string) {
	ratio := parseRatio(params["duration"], defaultRatio)

	staves := ctx.Staves
	if len(staves) == 0 {
		staves = s.Staves()
	}
	for _, st := range staves {
		stripOrnaments(st)
		removeOrnamentNotes(st, ratio, ctx.Ranges)
	}
}

// stripOrnaments deletes every ornament marking and ornament-extension
// spanner in the stave, independent of the duration heuristic and of any
// measure-range restriction.
func stripOrnaments(st model.Stave) {
	measures := st.MeasureSlice()
	for i := range measures {
		kept := measures[i].Events[:0]
		for _, e := range measures[i].Events {
			if e.Kind == model.KindOrnament || e.Kind == model.KindSpanner {
				continue
			}
			kept = append(kept, e)
		}
		measures[i].Events = kept
	}
}

// noteRef pins one note by its owning measure and event index, with a
// snapshot of the values the heuristic reads.
type noteRef struct {
	mi, ei  int
	event   model.Event
	inScope bool
}

func removeOrnamentNotes(st model.Stave, ratio float64, ranges []selection.Range) {
	measures := st.MeasureSlice()

	var notes []noteRef
	for mi := range measures {
		for ei := range measures[mi].Events {
			e := measures[mi].Events[ei]
			if e.Kind != model.KindNote {
				continue
			}
			notes = append(notes, noteRef{
				mi:      mi,
				ei:      ei,
				event:   e,
				inScope: selection.InRanges(measures[mi].Number, ranges),
			})
		}
	}

	marked := make(map[[2]int]bool)

	// grace notes go unconditionally, first and last included
	for _, n := range notes {
		if n.inScope && n.event.IsGrace() {
			marked[[2]int{n.mi, n.ei}] = true
		}
	}

	// Sliding window over the original sequence. Neighbor durations are read
	// from the pre-removal snapshot, so a note that is itself marked still
	// counts as a qualifying longer neighbor for the note beside it.
	for i := 1; i < len(notes)-1; i++ {
		prev, n, next := notes[i-1], notes[i], notes[i+1]
		if !n.inScope {
			continue
		}
		threshold := score.BeatBeatsAt(measures, n.mi) * ratio
		if n.event.Duration >= threshold {
			continue
		}
		if prev.event.Duration < threshold || next.event.Duration < threshold {
			continue
		}
		if !isStep(prev.event, n.event) || !isStep(n.event, next.event) {
			continue
		}
		if !isWeakBeat(measures, n) {
			continue
		}
		marked[[2]int{n.mi, n.ei}] = true
	}

	if len(marked) == 0 {
		return
	}

	// deferred structural removal: delete at index, highest indices first
	byMeasure := make(map[int][]int)
	for key := range marked {
		byMeasure[key[0]] = append(byMeasure[key[0]], key[1])
	}
	for mi, indices := range byMeasure {
		sort.Sort(sort.Reverse(sort.IntSlice(indices)))
		events := measures[mi].Events
		for _, ei := range indices {
			events = append(events[:ei], events[ei+1:]...)
		}
		measures[mi].Events = events
	}
}

func isStep(a, b model.Event) bool {
	semis, ok := score.Interval(a, b)
	return ok && (semis == 1 || semis == 2)
}

// isWeakBeat treats a note whose strength cannot be computed as weak.
func isWeakBeat(measures []model.Measure, n noteRef) bool {
	ts := score.EffectiveTimeSig(measures, n.mi)
	strength, ok := score.BeatStrength(measures[n.mi], n.ei, ts)
	if !ok {
		return true
	}
	return strength < 0.5
}

// parseRatio reads "1/8" or "0.125" style ratio strings, falling back to
// the default on any parse failure.
func parseRatio(value string, fallback float64) float64 {
	text := strings.TrimSpace(value)
	if text == "" {
		return fallback
	}
	if i := strings.Index(text, "/"); i >= 0 {
		num, err1 := strconv.ParseFloat(strings.TrimSpace(text[:i]), 64)
		den, err2 := strconv.ParseFloat(strings.TrimSpace(text[i+1:]), 64)
		if err1 != nil || err2 != nil || den == 0 {
			return fallback
		}
		return num / den
	}
	ratio, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fallback
	}
	return ratio
}
