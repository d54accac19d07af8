// Package extract builds excerpt scores: selected parts sliced to selected
// measure ranges, optionally filtered down to chords.
package extract

import (
	"github.com/notare/notare/model"
	"github.com/notare/notare/score"
	"github.com/notare/notare/selection"
)

// Options scope an extraction. Empty specs mean whole score / all parts.
type Options struct {
	Measures    string
	PartNames   string
	PartNumbers string
	ChordsOnly  bool
}

// Sections assembles a new score from the selected parts of src, each built
// by concatenating, range by range, the measures whose numbers fall inside
// the range. Parts with nothing in any range are omitted. Metadata is copied
// when it can be; a clone failure is not fatal. The result is renumbered and
// notation-normalized (best effort) before returning.
func Sections(src *model.Score, opts Options) (*model.Score, error) {
	ranges, err := selection.ParseMeasureSpec(opts.Measures)
	if err != nil {
		return nil, err
	}
	staves, err := selection.SelectParts(src, opts.PartNames, opts.PartNumbers)
	if err != nil {
		return nil, err
	}

	out := &model.Score{Tempo: src.Tempo}
	if md, err := score.CloneMetadata(src.Metadata); err == nil {
		out.Metadata = md
	}

	for _, st := range staves {
		var measures []model.Measure
		if len(ranges) == 0 {
			measures = score.CloneMeasures(st.MeasureSlice())
		} else {
			measures = sliceMeasures(st.MeasureSlice(), ranges)
		}
		if len(measures) == 0 {
			continue
		}
		if p, ok := st.(*model.Part); ok {
			out.Parts = append(out.Parts, model.Part{Name: p.Name, ID: p.ID, Measures: measures})
		} else {
			// partless source: the score stream itself was the unit
			out.Measures = measures
		}
	}

	if opts.ChordsOnly {
		retainOnlyChords(out)
	}

	score.RenumberMeasures(out)
	_ = score.NormalizeNotation(out)
	return out, nil
}

// sliceMeasures concatenates, for every range in order, the measures whose
// numbers fall within it. Overlapping ranges duplicate coverage by design.
func sliceMeasures(measures []model.Measure, ranges []selection.Range) []model.Measure {
	var out []model.Measure
	for _, r := range ranges {
		for _, m := range measures {
			if r.Contains(m.Number) {
				out = append(out, score.CloneMeasure(m))
			}
		}
	}
	return out
}

// retainOnlyChords strips every note and rest, keeping chord events and the
// measure structure itself. Measures left without sounding events stay.
func retainOnlyChords(s *model.Score) {
	for _, st := range s.Staves() {
		measures := st.MeasureSlice()
		for i := range measures {
			kept := measures[i].Events[:0]
			for _, e := range measures[i].Events {
				switch e.Kind {
				case model.KindNote, model.KindRest:
					continue
				}
				kept = append(kept, e)
			}
			measures[i].Events = kept
		}
	}
}
