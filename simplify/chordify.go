package simplify

import (
	"sort"

	"github.com/notare/notare/model"
	"github.com/notare/notare/score"
)

// Chordify collapses all simultaneous parts into a single part of chords:
// for every bar, pitches sounding at the same onset across parts merge into
// one chord event. The optional "name" param names the resulting part.
func Chordify(s *model.Score, ctx Context, params map[string]string) {
	if len(s.Parts) < 2 {
		return
	}

	name := params["name"]
	if name == "" {
		name = "Chords"
	}

	maxLen := 0
	for i := range s.Parts {
		if n := len(s.Parts[i].Measures); n > maxLen {
			maxLen = n
		}
	}

	merged := model.Part{Name: name}
	for mi := 0; mi < maxLen; mi++ {
		m := model.Measure{}
		if mi < len(s.Parts[0].Measures) && s.Parts[0].Measures[mi].TimeSig != nil {
			sig := *s.Parts[0].Measures[mi].TimeSig
			m.TimeSig = &sig
		}

		type slot struct {
			pitches map[uint8]bool
			dur     float64
		}
		slots := make(map[float64]*slot)
		for pi := range s.Parts {
			if mi >= len(s.Parts[pi].Measures) {
				continue
			}
			var at float64
			for _, e := range s.Parts[pi].Measures[mi].Events {
				if !e.Sounding() {
					continue
				}
				if e.Kind != model.KindRest {
					sl := slots[at]
					if sl == nil {
						sl = &slot{pitches: make(map[uint8]bool)}
						slots[at] = sl
					}
					switch e.Kind {
					case model.KindNote:
						sl.pitches[e.Pitch] = true
					case model.KindChord:
						for _, p := range e.Pitches {
							sl.pitches[p] = true
						}
					}
					if e.Duration > sl.dur {
						sl.dur = e.Duration
					}
				}
				at += e.Duration
			}
		}

		onsets := make([]float64, 0, len(slots))
		for at := range slots {
			onsets = append(onsets, at)
		}
		sort.Float64s(onsets)

		bar := score.BarBeatsNear(s.Parts[0].Measures, mi)
		cursor := 0.0
		for _, at := range onsets {
			if at > cursor {
				m.Events = append(m.Events, model.Event{Kind: model.KindRest, Duration: at - cursor})
			}
			sl := slots[at]
			pitches := make([]uint8, 0, len(sl.pitches))
			for p := range sl.pitches {
				pitches = append(pitches, p)
			}
			sort.Slice(pitches, func(i, j int) bool { return pitches[i] < pitches[j] })
			if len(pitches) == 1 {
				m.Events = append(m.Events, model.Event{Kind: model.KindNote, Pitch: pitches[0], Duration: sl.dur})
			} else {
				m.Events = append(m.Events, model.Event{Kind: model.KindChord, Pitches: pitches, Duration: sl.dur})
			}
			cursor = at + sl.dur
		}
		if cursor < bar && len(m.Events) > 0 {
			m.Events = append(m.Events, model.Event{Kind: model.KindRest, Duration: bar - cursor})
		}

		merged.Measures = append(merged.Measures, m)
	}

	s.Parts = []model.Part{merged}
}
