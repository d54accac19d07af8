package score

import (
	"errors"

	"github.com/notare/notare/model"
)

// CloneEvent deep-copies an event, including chord pitch sets.
func CloneEvent(e model.Event) model.Event {
	out := e
	if e.Pitches != nil {
		out.Pitches = append([]uint8(nil), e.Pitches...)
	}
	return out
}

// CloneMeasure deep-copies a measure.
func CloneMeasure(m model.Measure) model.Measure {
	out := m
	if m.TimeSig != nil {
		ts := *m.TimeSig
		out.TimeSig = &ts
	}
	out.Events = make([]model.Event, 0, len(m.Events))
	for _, e := range m.Events {
		out.Events = append(out.Events, CloneEvent(e))
	}
	return out
}

// CloneMeasures deep-copies a measure sequence.
func CloneMeasures(ms []model.Measure) []model.Measure {
	out := make([]model.Measure, 0, len(ms))
	for _, m := range ms {
		out = append(out, CloneMeasure(m))
	}
	return out
}

// ClonePart deep-copies a part.
func ClonePart(p model.Part) model.Part {
	return model.Part{Name: p.Name, ID: p.ID, Measures: CloneMeasures(p.Measures)}
}

// CloneMetadata duplicates score metadata. Fails on nil input so callers can
// treat the miss as the recoverable condition it is.
func CloneMetadata(md *model.Metadata) (*model.Metadata, error) {
	if md == nil {
		return nil, errors.New("no metadata to clone")
	}
	out := *md
	return &out, nil
}

// CloneScore deep-copies an entire score tree.
func CloneScore(s *model.Score) *model.Score {
	out := &model.Score{Tempo: s.Tempo}
	if md, err := CloneMetadata(s.Metadata); err == nil {
		out.Metadata = md
	}
	for _, p := range s.Parts {
		out.Parts = append(out.Parts, ClonePart(p))
	}
	out.Measures = CloneMeasures(s.Measures)
	return out
}
