package score

import (
	"testing"

	"github.com/notare/notare/model"
	"github.com/stretchr/testify/assert"
)

func note(pitch uint8, dur float64) model.Event {
	return model.Event{Kind: model.KindNote, Pitch: pitch, Duration: dur}
}

func rest(dur float64) model.Event {
	return model.Event{Kind: model.KindRest, Duration: dur}
}

func measures(count int) []model.Measure {
	out := make([]model.Measure, count)
	return out
}

func TestRenumberMeasuresStartsAtOne(t *testing.T) {
	assert := assert.New(t)

	s := &model.Score{Parts: []model.Part{{Name: "Flute", Measures: measures(3)}}}
	// simulate an anacrusis import labeled 0
	s.Parts[0].Measures[0].Number = 0
	s.Parts[0].Measures[1].Number = 7
	RenumberMeasures(s)

	nums := []int{}
	for _, m := range s.Parts[0].Measures {
		nums = append(nums, m.Number)
	}
	assert.Equal([]int{1, 2, 3}, nums)
}

func TestRenumberMeasuresIdempotent(t *testing.T) {
	assert := assert.New(t)

	s := &model.Score{Parts: []model.Part{{Measures: measures(4)}}}
	RenumberMeasures(s)
	first := append([]model.Measure(nil), s.Parts[0].Measures...)
	RenumberMeasures(s)
	assert.Equal(first, s.Parts[0].Measures)
}

func TestRenumberMeasuresPartlessScore(t *testing.T) {
	assert := assert.New(t)

	s := &model.Score{Measures: measures(2)}
	RenumberMeasures(s)
	assert.Equal(1, s.Measures[0].Number)
	assert.Equal(2, s.Measures[1].Number)
}

func TestEffectiveTimeSigLooksBackward(t *testing.T) {
	assert := assert.New(t)

	ms := measures(3)
	ms[0].TimeSig = &model.TimeSig{Numerator: 3, Denominator: 4}
	ts := EffectiveTimeSig(ms, 2)
	assert.NotNil(ts)
	assert.Equal(3, ts.Numerator)

	assert.Nil(EffectiveTimeSig(measures(3), 2))
	assert.Nil(EffectiveTimeSig(nil, 0))
}

func TestBarBeatsNearDefaultsToFourBeats(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(4.0, BarBeatsNear(measures(2), 1))
	assert.Equal(4.0, BarBeatsNear(nil, 0))

	ms := measures(2)
	ms[0].TimeSig = &model.TimeSig{Numerator: 3, Denominator: 4}
	assert.Equal(3.0, BarBeatsNear(ms, 1))
	// position past the end still inspects the last measure's context
	assert.Equal(3.0, BarBeatsNear(ms, 5))
}

func TestBeatBeatsCompoundMeter(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1.0, model.TimeSig{Numerator: 4, Denominator: 4}.BeatBeats())
	assert.Equal(1.5, model.TimeSig{Numerator: 6, Denominator: 8}.BeatBeats())
	assert.Equal(0.5, model.TimeSig{Numerator: 3, Denominator: 8}.BeatBeats())
}

func TestBeatStrength(t *testing.T) {
	assert := assert.New(t)

	ts := &model.TimeSig{Numerator: 4, Denominator: 4}
	m := model.Measure{Events: []model.Event{
		note(60, 1),   // downbeat
		note(62, 0.5), // beat 2
		note(64, 0.5), // off-beat
	}}

	s, ok := BeatStrength(m, 0, ts)
	assert.True(ok)
	assert.Equal(1.0, s)

	s, ok = BeatStrength(m, 1, ts)
	assert.True(ok)
	assert.Equal(0.5, s)

	s, ok = BeatStrength(m, 2, ts)
	assert.True(ok)
	assert.Equal(0.25, s)

	_, ok = BeatStrength(m, 9, ts)
	assert.False(ok)
}

func TestBeatStrengthExplicitValueWins(t *testing.T) {
	assert := assert.New(t)

	m := model.Measure{Events: []model.Event{
		{Kind: model.KindNote, Pitch: 60, Duration: 1, BeatStrength: 0.3},
	}}
	s, ok := BeatStrength(m, 0, nil)
	assert.True(ok)
	assert.Equal(0.3, s)
}

func TestInterval(t *testing.T) {
	assert := assert.New(t)

	semis, ok := Interval(note(60, 1), note(62, 1))
	assert.True(ok)
	assert.Equal(2, semis)

	semis, ok = Interval(note(67, 1), note(60, 1))
	assert.True(ok)
	assert.Equal(7, semis)

	// chords contribute their lowest pitch
	chord := model.Event{Kind: model.KindChord, Pitches: []uint8{64, 60}, Duration: 1}
	semis, ok = Interval(chord, note(62, 1))
	assert.True(ok)
	assert.Equal(2, semis)

	_, ok = Interval(rest(1), note(60, 1))
	assert.False(ok)
}

func TestCloneMeasureIsDeep(t *testing.T) {
	assert := assert.New(t)

	m := model.Measure{
		TimeSig: &model.TimeSig{Numerator: 4, Denominator: 4},
		Events:  []model.Event{{Kind: model.KindChord, Pitches: []uint8{60, 64}, Duration: 1}},
	}
	cp := CloneMeasure(m)
	cp.TimeSig.Numerator = 3
	cp.Events[0].Pitches[0] = 10

	assert.Equal(4, m.TimeSig.Numerator)
	assert.Equal(uint8(60), m.Events[0].Pitches[0])
}

func TestCloneMetadataNilFails(t *testing.T) {
	assert := assert.New(t)

	_, err := CloneMetadata(nil)
	assert.Error(err)

	orig := &model.Metadata{Title: "Air"}
	md, err := CloneMetadata(orig)
	assert.NoError(err)
	md.Title = "changed"
	assert.Equal("Air", orig.Title)
}

func TestRestMeasures(t *testing.T) {
	assert := assert.New(t)

	ms := RestMeasures(2, 3.0)
	assert.Len(ms, 2)
	assert.Equal(model.KindRest, ms[0].Events[0].Kind)
	assert.Equal(3.0, ms[0].Events[0].Duration)

	assert.Empty(RestMeasures(-1, 4.0))
}

func TestNormalizeNotationSnapsToGrid(t *testing.T) {
	assert := assert.New(t)

	s := &model.Score{Parts: []model.Part{{Measures: []model.Measure{
		{Events: []model.Event{note(60, 0.5001), note(62, 0.013)}},
	}}}}
	assert.NoError(NormalizeNotation(s))
	assert.Equal(0.5, s.Parts[0].Measures[0].Events[0].Duration)
	// tiny but non-grace durations round up to the finest expressible value
	assert.Equal(0.0625, s.Parts[0].Measures[0].Events[1].Duration)
}

func TestNormalizeNotationKeepsGraceNotes(t *testing.T) {
	assert := assert.New(t)

	s := &model.Score{Measures: []model.Measure{
		{Events: []model.Event{{Kind: model.KindNote, Pitch: 60, Grace: true}}},
	}}
	assert.NoError(NormalizeNotation(s))
	assert.Equal(0.0, s.Measures[0].Events[0].Duration)
}

func TestNormalizeNotationRejectsNegativeDuration(t *testing.T) {
	assert := assert.New(t)

	s := &model.Score{Measures: []model.Measure{
		{Number: 1, Events: []model.Event{note(60, -1)}},
	}}
	assert.Error(NormalizeNotation(s))
}
