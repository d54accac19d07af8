package engine

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/notare/notare/model"
	"github.com/notare/notare/score"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 480

type midiNote struct {
	pitch uint8
	start float64 // beats from track start
	dur   float64
}

// decodeMIDI converts an SMF byte stream into a score tree: one part per
// track carrying notes, bars chopped by the first notated meter, and
// simultaneous equal-length notes folded into chords.
func decodeMIDI(data []byte) (s *model.Score, e error) {
	// the smf reader can panic on malformed files
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("could not parse score: %v", r)
		}
	}()

	mf, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not parse score: %w", err)
	}

	resolution := float64(ticksPerQuarter)
	if mt, ok := mf.TimeFormat.(smf.MetricTicks); ok && mt > 0 {
		resolution = float64(mt)
	}

	out := &model.Score{}
	var meter *model.TimeSig
	for _, track := range mf.Tracks {
		var name string
		var notes []midiNote
		pressed := make(map[uint8]int64)
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			var num, denom uint8
			var bpm float64
			var text string
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				if velocity == 0 {
					closeNote(&notes, pressed, key, absTicks, resolution)
					continue
				}
				pressed[key] = absTicks
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				closeNote(&notes, pressed, key, absTicks, resolution)
			case event.Message.GetMetaMeter(&num, &denom):
				if meter == nil {
					meter = &model.TimeSig{Numerator: int(num), Denominator: int(denom)}
				}
			case event.Message.GetMetaTempo(&bpm):
				if out.Tempo == 0 {
					out.Tempo = bpm
				}
			case event.Message.GetMetaTrackName(&text):
				name = text
			}
		}
		if len(notes) == 0 {
			continue
		}
		sort.Slice(notes, func(i, j int) bool {
			if notes[i].start != notes[j].start {
				return notes[i].start < notes[j].start
			}
			return notes[i].pitch < notes[j].pitch
		})
		out.Parts = append(out.Parts, model.Part{
			Name:     name,
			Measures: barNotes(notes, meter),
		})
	}
	return out, nil
}

func closeNote(notes *[]midiNote, pressed map[uint8]int64, key uint8, absTicks int64, resolution float64) {
	start, ok := pressed[key]
	if !ok {
		return
	}
	delete(pressed, key)
	*notes = append(*notes, midiNote{
		pitch: key,
		start: float64(start) / resolution,
		dur:   float64(absTicks-start) / resolution,
	})
}

// barNotes chops a sorted note list into measures, folding notes sharing an
// onset and duration into chords and filling gaps with rests.
func barNotes(notes []midiNote, meter *model.TimeSig) []model.Measure {
	ts := meter
	if ts == nil {
		ts = &model.TimeSig{Numerator: 4, Denominator: 4}
	}
	bar := ts.BarBeats()

	var end float64
	for _, n := range notes {
		if n.start+n.dur > end {
			end = n.start + n.dur
		}
	}
	numBars := int(math.Ceil(end / bar))
	if numBars == 0 {
		numBars = 1
	}

	groups := groupChords(notes)
	measures := make([]model.Measure, numBars)
	measures[0].TimeSig = &model.TimeSig{Numerator: ts.Numerator, Denominator: ts.Denominator}
	gi := 0
	for b := 0; b < numBars; b++ {
		barStart := float64(b) * bar
		barEnd := barStart + bar
		cursor := barStart
		for gi < len(groups) && groups[gi].start < barEnd {
			g := groups[gi]
			if g.start > cursor {
				measures[b].Events = append(measures[b].Events,
					model.Event{Kind: model.KindRest, Duration: g.start - cursor})
			}
			measures[b].Events = append(measures[b].Events, g.event())
			cursor = g.start + g.dur
			gi++
		}
		if cursor < barEnd && end > 0 {
			measures[b].Events = append(measures[b].Events,
				model.Event{Kind: model.KindRest, Duration: barEnd - cursor})
		}
	}
	return measures
}

type chordGroup struct {
	pitches []uint8
	start   float64
	dur     float64
}

func (g chordGroup) event() model.Event {
	if len(g.pitches) == 1 {
		return model.Event{Kind: model.KindNote, Pitch: g.pitches[0], Duration: g.dur}
	}
	return model.Event{Kind: model.KindChord, Pitches: g.pitches, Duration: g.dur}
}

func groupChords(notes []midiNote) []chordGroup {
	var groups []chordGroup
	for _, n := range notes {
		if len(groups) > 0 {
			last := &groups[len(groups)-1]
			if last.start == n.start && last.dur == n.dur {
				last.pitches = append(last.pitches, n.pitch)
				continue
			}
		}
		groups = append(groups, chordGroup{pitches: []uint8{n.pitch}, start: n.start, dur: n.dur})
	}
	return groups
}

// encodeMIDI serializes the tree as a type-1 SMF: one track per part, meter
// and tempo on the first track, ornament markings and spanners dropped as
// unrepresentable.
func encodeMIDI(s *model.Score) ([]byte, error) {
	var mf smf.SMF
	mf.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	staves := s.Staves()
	for i, st := range staves {
		var tr smf.Track
		if label := st.Label(); label != "" && label != "score" {
			tr.Add(0, smf.MetaTrackSequenceName(label))
		}
		if i == 0 {
			if ts := score.EffectiveTimeSig(st.MeasureSlice(), 0); ts != nil {
				tr.Add(0, smf.MetaMeter(uint8(ts.Numerator), uint8(ts.Denominator)))
			}
			if s.Tempo > 0 {
				tr.Add(0, smf.MetaTempo(s.Tempo))
			}
		}

		var delta uint32
		for _, m := range st.MeasureSlice() {
			for _, e := range m.Events {
				switch e.Kind {
				case model.KindRest:
					delta += ticks(e.Duration)
				case model.KindNote:
					tr.Add(delta, midi.NoteOn(0, e.Pitch, 64))
					tr.Add(ticks(e.Duration), midi.NoteOff(0, e.Pitch))
					delta = 0
				case model.KindChord:
					if len(e.Pitches) == 0 {
						delta += ticks(e.Duration)
						continue
					}
					for _, p := range e.Pitches {
						tr.Add(delta, midi.NoteOn(0, p, 64))
						delta = 0
					}
					off := ticks(e.Duration)
					for _, p := range e.Pitches {
						tr.Add(off, midi.NoteOff(0, p))
						off = 0
					}
				}
			}
		}
		tr.Close(0)
		mf.Tracks = append(mf.Tracks, tr)
	}

	var buf bytes.Buffer
	if _, err := mf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing midi: %w", err)
	}
	return buf.Bytes(), nil
}

func ticks(beats float64) uint32 {
	if beats <= 0 {
		return 0
	}
	return uint32(math.Round(beats * ticksPerQuarter))
}
