package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/notare/notare/model"
)

// musicjson is the canonical interchange encoding: a direct JSON rendering
// of the score tree with events tagged by type.

type jsonScore struct {
	Metadata *jsonMetadata `json:"metadata,omitempty"`
	Tempo    float64       `json:"tempo,omitempty"`
	Parts    []jsonPart    `json:"parts,omitempty"`
	Measures []jsonMeasure `json:"measures,omitempty"`
}

type jsonMetadata struct {
	Title    string `json:"title,omitempty"`
	Composer string `json:"composer,omitempty"`
	Arranger string `json:"arranger,omitempty"`
}

type jsonPart struct {
	Name     string        `json:"name,omitempty"`
	ID       string        `json:"id,omitempty"`
	Measures []jsonMeasure `json:"measures"`
}

type jsonMeasure struct {
	Number int         `json:"number,omitempty"`
	Time   string      `json:"time,omitempty"`
	Events []jsonEvent `json:"events"`
}

type jsonEvent struct {
	Type         string  `json:"type"`
	Pitch        uint8   `json:"pitch,omitempty"`
	Pitches      []uint8 `json:"pitches,omitempty"`
	Duration     float64 `json:"duration"`
	Grace        bool    `json:"grace,omitempty"`
	BeatStrength float64 `json:"beat_strength,omitempty"`
	Ornament     string  `json:"ornament,omitempty"`
}

func encodeMusicJSON(s *model.Score, pretty bool) ([]byte, error) {
	doc := jsonScore{Tempo: s.Tempo}
	if s.Metadata != nil {
		doc.Metadata = &jsonMetadata{
			Title:    s.Metadata.Title,
			Composer: s.Metadata.Composer,
			Arranger: s.Metadata.Arranger,
		}
	}
	for _, p := range s.Parts {
		doc.Parts = append(doc.Parts, jsonPart{
			Name:     p.Name,
			ID:       p.ID,
			Measures: measuresToJSON(p.Measures),
		})
	}
	doc.Measures = measuresToJSON(s.Measures)

	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func measuresToJSON(ms []model.Measure) []jsonMeasure {
	out := make([]jsonMeasure, 0, len(ms))
	for _, m := range ms {
		jm := jsonMeasure{Number: m.Number, Events: make([]jsonEvent, 0, len(m.Events))}
		if m.TimeSig != nil {
			jm.Time = fmt.Sprintf("%d/%d", m.TimeSig.Numerator, m.TimeSig.Denominator)
		}
		for _, e := range m.Events {
			jm.Events = append(jm.Events, jsonEvent{
				Type:         string(e.Kind),
				Pitch:        e.Pitch,
				Pitches:      e.Pitches,
				Duration:     e.Duration,
				Grace:        e.Grace,
				BeatStrength: e.BeatStrength,
				Ornament:     e.Ornament,
			})
		}
		out = append(out, jm)
	}
	return out
}

func decodeMusicJSON(data []byte) (*model.Score, error) {
	var doc jsonScore
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse score: %w", err)
	}
	s := &model.Score{Tempo: doc.Tempo}
	if doc.Metadata != nil {
		s.Metadata = &model.Metadata{
			Title:    doc.Metadata.Title,
			Composer: doc.Metadata.Composer,
			Arranger: doc.Metadata.Arranger,
		}
	}
	for _, jp := range doc.Parts {
		ms, err := measuresFromJSON(jp.Measures)
		if err != nil {
			return nil, err
		}
		s.Parts = append(s.Parts, model.Part{Name: jp.Name, ID: jp.ID, Measures: ms})
	}
	ms, err := measuresFromJSON(doc.Measures)
	if err != nil {
		return nil, err
	}
	s.Measures = ms
	return s, nil
}

func measuresFromJSON(jms []jsonMeasure) ([]model.Measure, error) {
	var out []model.Measure
	for _, jm := range jms {
		m := model.Measure{Number: jm.Number}
		if jm.Time != "" {
			ts, err := parseTimeSig(jm.Time)
			if err != nil {
				return nil, err
			}
			m.TimeSig = ts
		}
		for _, je := range jm.Events {
			kind := model.EventKind(je.Type)
			switch kind {
			case model.KindNote, model.KindChord, model.KindRest,
				model.KindOrnament, model.KindSpanner:
			default:
				return nil, fmt.Errorf("could not parse score: unknown event type %q", je.Type)
			}
			m.Events = append(m.Events, model.Event{
				Kind:         kind,
				Pitch:        je.Pitch,
				Pitches:      je.Pitches,
				Duration:     je.Duration,
				Grace:        je.Grace,
				BeatStrength: je.BeatStrength,
				Ornament:     je.Ornament,
			})
		}
		out = append(out, m)
	}
	return out, nil
}

func parseTimeSig(text string) (*model.TimeSig, error) {
	parts := strings.SplitN(text, "/", 2)
	if len(parts) != 2 {
		return nil, &model.ValidationError{Field: "time signature", Value: text}
	}
	num, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	den, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || num < 1 || den < 1 {
		return nil, &model.ValidationError{Field: "time signature", Value: text}
	}
	return &model.TimeSig{Numerator: num, Denominator: den}, nil
}
