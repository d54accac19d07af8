package score

import (
	"math"

	"github.com/notare/notare/model"
)

// EffectiveTimeSig resolves the signature governing measures[idx] by looking
// outward through preceding measures. Returns nil when no signature exists
// anywhere up to that point.
func EffectiveTimeSig(measures []model.Measure, idx int) *model.TimeSig {
	if len(measures) == 0 {
		return nil
	}
	if idx >= len(measures) {
		idx = len(measures) - 1
	}
	if idx < 0 {
		idx = 0
	}
	for i := idx; i >= 0; i-- {
		if measures[i].TimeSig != nil {
			return measures[i].TimeSig
		}
	}
	return nil
}

// BarBeatsNear infers the bar duration governing an insertion at 0-based
// position pos0 by inspecting the measure at or immediately before it.
// Defaults to a 4-beat bar when no signature is discoverable.
func BarBeatsNear(measures []model.Measure, pos0 int) float64 {
	ts := EffectiveTimeSig(measures, pos0)
	if ts == nil {
		return 4.0
	}
	return ts.BarBeats()
}

// BeatBeatsAt returns the metric beat duration governing measures[idx],
// defaulting to 1 beat when no signature is discoverable.
func BeatBeatsAt(measures []model.Measure, idx int) float64 {
	ts := EffectiveTimeSig(measures, idx)
	if ts == nil {
		return 1.0
	}
	return ts.BeatBeats()
}

// Onset returns the beat offset of the event at index i within m, summing
// the durations of the sounding events before it.
func Onset(m model.Measure, i int) float64 {
	var at float64
	for j := 0; j < i && j < len(m.Events); j++ {
		if m.Events[j].Sounding() {
			at += m.Events[j].Duration
		}
	}
	return at
}

// BeatStrength reports the metric weight of the event at index i in m under
// the governing signature. An explicit per-event strength wins; otherwise
// the weight is derived from the onset: 1.0 on the downbeat, 0.5 on other
// beats, 0.25 off the beat. ok is false when the event is out of range.
func BeatStrength(m model.Measure, i int, ts *model.TimeSig) (float64, bool) {
	if i < 0 || i >= len(m.Events) {
		return 0, false
	}
	if s := m.Events[i].BeatStrength; s > 0 {
		return s, true
	}
	beat := 1.0
	if ts != nil {
		beat = ts.BeatBeats()
	}
	at := Onset(m, i)
	if at == 0 {
		return 1.0, true
	}
	if rem := math.Mod(at, beat); rem < 1e-9 || beat-rem < 1e-9 {
		return 0.5, true
	}
	return 0.25, true
}

// Interval returns the melodic interval in semitones between two pitched
// events. Chords contribute their lowest pitch. ok is false when either
// event carries no pitch.
func Interval(a, b model.Event) (int, bool) {
	pa, okA := soundingPitch(a)
	pb, okB := soundingPitch(b)
	if !okA || !okB {
		return 0, false
	}
	semis := int(pb) - int(pa)
	if semis < 0 {
		semis = -semis
	}
	return semis, true
}

func soundingPitch(e model.Event) (uint8, bool) {
	switch e.Kind {
	case model.KindNote:
		return e.Pitch, true
	case model.KindChord:
		if len(e.Pitches) == 0 {
			return 0, false
		}
		low := e.Pitches[0]
		for _, p := range e.Pitches[1:] {
			if p < low {
				low = p
			}
		}
		return low, true
	}
	return 0, false
}
