package score

import "github.com/notare/notare/model"

// RestMeasure builds a single measure holding one rest spanning barBeats.
func RestMeasure(barBeats float64) model.Measure {
	return model.Measure{
		Events: []model.Event{{Kind: model.KindRest, Duration: barBeats}},
	}
}

// RestMeasures builds count rest-only measures sized to barBeats, used as
// alignment filler by the splicer.
func RestMeasures(count int, barBeats float64) []model.Measure {
	if count < 0 {
		count = 0
	}
	out := make([]model.Measure, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, RestMeasure(barBeats))
	}
	return out
}
