package splice

import (
	"errors"
	"testing"

	"github.com/notare/notare/model"
	"github.com/stretchr/testify/assert"
)

func note(pitch uint8, dur float64) model.Event {
	return model.Event{Kind: model.KindNote, Pitch: pitch, Duration: dur}
}

func noteMeasures(count int, pitch uint8) []model.Measure {
	out := make([]model.Measure, count)
	for i := range out {
		out[i] = model.Measure{Number: i + 1, Events: []model.Event{note(pitch, 4)}}
	}
	return out
}

func isRestMeasure(m model.Measure) bool {
	return len(m.Events) == 1 && m.Events[0].Kind == model.KindRest
}

func TestAddSameNamedPartBeforeMeasure(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(4, 60)}}}
	inc := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(2, 72)}}}

	assert.NoError(Add(base, inc, 2, true))
	assert.Len(base.Parts, 1)
	assert.Len(base.Parts[0].Measures, 6)

	pitches := []uint8{}
	for _, m := range base.Parts[0].Measures {
		pitches = append(pitches, m.Events[0].Pitch)
	}
	assert.Equal([]uint8{60, 72, 72, 60, 60, 60}, pitches)

	// renumbered contiguously
	for i, m := range base.Parts[0].Measures {
		assert.Equal(i+1, m.Number)
	}
}

func TestAddAfterMeasure(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(4, 60)}}}
	inc := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(1, 72)}}}

	assert.NoError(Add(base, inc, 2, false))
	pitches := []uint8{}
	for _, m := range base.Parts[0].Measures {
		pitches = append(pitches, m.Events[0].Pitch)
	}
	assert.Equal([]uint8{60, 60, 72, 60, 60}, pitches)
}

func TestAddMissingPartGetsRestPlaceholders(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{
		{Name: "Flute", Measures: noteMeasures(3, 60)},
		{Name: "Oboe", Measures: noteMeasures(3, 62)},
	}}
	inc := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(2, 72)}}}

	assert.NoError(Add(base, inc, 2, true))
	for _, p := range base.Parts {
		assert.Len(p.Measures, 5, p.Name)
	}

	oboe := base.Parts[1]
	assert.True(isRestMeasure(oboe.Measures[1]))
	assert.True(isRestMeasure(oboe.Measures[2]))
	assert.Equal(uint8(62), oboe.Measures[0].Events[0].Pitch)
	assert.Equal(uint8(62), oboe.Measures[3].Events[0].Pitch)
}

func TestAddPartMatchingIsCaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{{Name: "FLUTE", Measures: noteMeasures(2, 60)}}}
	inc := &model.Score{Parts: []model.Part{{Name: "flute", Measures: noteMeasures(1, 72)}}}

	assert.NoError(Add(base, inc, 1, true))
	assert.Len(base.Parts, 1)
	assert.Len(base.Parts[0].Measures, 3)
}

func TestAddNewPartFlankedByRests(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(4, 60)}}}
	inc := &model.Score{Parts: []model.Part{{Name: "Cello", Measures: noteMeasures(2, 48)}}}

	assert.NoError(Add(base, inc, 3, true))
	assert.Len(base.Parts, 2)

	cello := base.Parts[1]
	assert.Equal("Cello", cello.Name)
	assert.Len(cello.Measures, 6)
	// 2 rest measures before, the 2 incoming, 2 rests after
	assert.True(isRestMeasure(cello.Measures[0]))
	assert.True(isRestMeasure(cello.Measures[1]))
	assert.Equal(uint8(48), cello.Measures[2].Events[0].Pitch)
	assert.Equal(uint8(48), cello.Measures[3].Events[0].Pitch)
	assert.True(isRestMeasure(cello.Measures[4]))
	assert.True(isRestMeasure(cello.Measures[5]))
}

func TestAddAlignmentLawMixedParts(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{
		{Name: "Flute", Measures: noteMeasures(4, 60)},
		{Name: "Oboe", Measures: noteMeasures(4, 62)},
	}}
	inc := &model.Score{Parts: []model.Part{
		{Name: "Flute", Measures: noteMeasures(3, 72)},
		{Name: "Cello", Measures: noteMeasures(1, 48)},
	}}

	assert.NoError(Add(base, inc, 2, true))
	// insert_len = 3, base_total = 4: every part ends at 7
	assert.Len(base.Parts, 3)
	for _, p := range base.Parts {
		assert.Len(p.Measures, 7, p.Name)
	}

	// the short incoming part was right-padded inside its block
	cello := base.Parts[2]
	assert.True(isRestMeasure(cello.Measures[0]))
	assert.Equal(uint8(48), cello.Measures[1].Events[0].Pitch)
	assert.True(isRestMeasure(cello.Measures[2]))
	assert.True(isRestMeasure(cello.Measures[3]))
}

func TestAddRestFillUsesLocalBarDuration(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{
		{Name: "Flute", Measures: noteMeasures(2, 60)},
		{Name: "Oboe", Measures: noteMeasures(2, 62)},
	}}
	base.Parts[0].Measures[0].TimeSig = &model.TimeSig{Numerator: 3, Denominator: 4}
	base.Parts[1].Measures[0].TimeSig = &model.TimeSig{Numerator: 3, Denominator: 4}
	inc := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(1, 72)}}}

	assert.NoError(Add(base, inc, 2, true))
	oboe := base.Parts[1]
	assert.True(isRestMeasure(oboe.Measures[1]))
	assert.Equal(3.0, oboe.Measures[1].Events[0].Duration)
}

func TestAddTargetBeyondEndClampsToAppend(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(2, 60)}}}
	inc := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(1, 72)}}}

	assert.NoError(Add(base, inc, 99, true))
	pitches := []uint8{}
	for _, m := range base.Parts[0].Measures {
		pitches = append(pitches, m.Events[0].Pitch)
	}
	assert.Equal([]uint8{60, 60, 72}, pitches)
}

func TestAddTargetBelowOneIsValidationError(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(2, 60)}}}
	inc := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: noteMeasures(1, 72)}}}

	err := Add(base, inc, 0, true)
	var verr *model.ValidationError
	assert.True(errors.As(err, &verr))
	// no mutation happened
	assert.Len(base.Parts[0].Measures, 2)
}

func TestAddPartlessScoresMatchOnFallbackKey(t *testing.T) {
	assert := assert.New(t)

	base := &model.Score{Measures: noteMeasures(2, 60)}
	inc := &model.Score{Measures: noteMeasures(1, 72)}

	assert.NoError(Add(base, inc, 1, true))
	assert.Len(base.Measures, 3)
	assert.Equal(uint8(72), base.Measures[0].Events[0].Pitch)
}
