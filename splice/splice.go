// Package splice merges all measures of one score into another at a given
// position, keeping every part of the result equal in total measure count.
package splice

import (
	"strconv"
	"strings"

	"github.com/notare/notare/model"
	"github.com/notare/notare/score"
	"github.com/notare/notare/util"
)

// Add inserts every measure of incoming into base at the requested 1-based
// target measure (before it, or after it when before is false), mutating
// base. Parts are matched by normalized name; base parts with no incoming
// counterpart receive rest-filled placeholder measures, and incoming parts
// unknown to base are appended as new parts flanked by rest measures.
// Postcondition: every part of base ends up with its original maximum
// measure count plus the width of the inserted block.
func Add(base, incoming *model.Score, target int, before bool) error {
	if target < 1 {
		return &model.ValidationError{Field: "measure", Value: strconv.Itoa(target)}
	}

	insertAt := target
	if !before {
		insertAt = target + 1
	}
	if insertAt < 1 {
		insertAt = 1
	}

	baseStaves := base.Staves()
	incStaves := incoming.Staves()

	incByKey := make(map[string]model.Stave)
	for _, st := range incStaves {
		incByKey[staveKey(st)] = st
	}
	baseKeys := make(map[string]bool)
	baseTotal := 0
	for _, st := range baseStaves {
		baseKeys[staveKey(st)] = true
		baseTotal = util.Max(baseTotal, len(st.MeasureSlice()))
	}

	// width of the inserted block: the longest incoming part fixes it
	insertLen := 0
	for _, st := range incStaves {
		insertLen = util.Max(insertLen, len(st.MeasureSlice()))
	}

	for _, st := range baseStaves {
		measures := st.MeasureSlice()
		pos := util.Min(insertAt, len(measures)+1) - 1 // 0-based

		barBeats := score.BarBeatsNear(measures, pos)

		var block []model.Measure
		if inc, ok := incByKey[staveKey(st)]; ok {
			block = score.CloneMeasures(inc.MeasureSlice())
			if len(block) < insertLen {
				block = append(block, score.RestMeasures(insertLen-len(block), barBeats)...)
			}
		} else {
			block = score.RestMeasures(insertLen, barBeats)
		}

		merged := make([]model.Measure, 0, len(measures)+len(block))
		merged = append(merged, measures[:pos]...)
		merged = append(merged, block...)
		merged = append(merged, measures[pos:]...)
		st.SetMeasures(merged)
	}

	// incoming parts with no base counterpart become new parts, flanked by
	// rest measures so they stay aligned with everyone else
	barBeatsBase := 4.0
	if len(baseStaves) > 0 {
		barBeatsBase = score.BarBeatsNear(baseStaves[0].MeasureSlice(), 0)
	}
	for _, st := range incStaves {
		if baseKeys[staveKey(st)] {
			continue
		}
		beforeCount := util.Min(insertAt-1, baseTotal)
		afterCount := baseTotal - beforeCount

		seq := score.RestMeasures(beforeCount, barBeatsBase)
		seq = append(seq, score.CloneMeasures(st.MeasureSlice())...)
		if n := len(st.MeasureSlice()); n < insertLen {
			seq = append(seq, score.RestMeasures(insertLen-n, barBeatsBase)...)
		}
		seq = append(seq, score.RestMeasures(afterCount, barBeatsBase)...)

		base.Parts = append(base.Parts, model.Part{
			Name:     newPartName(st),
			Measures: seq,
		})
	}

	score.RenumberMeasures(base)
	_ = score.NormalizeNotation(base)
	return nil
}

// staveKey normalizes a part's matching key: display name, else identifier,
// else the literal "part".
func staveKey(st model.Stave) string {
	if p, ok := st.(*model.Part); ok {
		if key := strings.ToLower(strings.TrimSpace(p.Name)); key != "" {
			return key
		}
		if key := strings.ToLower(strings.TrimSpace(p.ID)); key != "" {
			return key
		}
	}
	return "part"
}

func newPartName(st model.Stave) string {
	if p, ok := st.(*model.Part); ok {
		if p.Name != "" {
			return p.Name
		}
		if p.ID != "" {
			return p.ID
		}
	}
	return "Part"
}
