package score

import "github.com/notare/notare/model"

// RenumberMeasures assigns sequential 1-based numbers to every measure of
// every part (or the bare score when partless), overwriting whatever the
// import carried, including 0/anacrusis labels. Idempotent. Every mutating
// operation must call this as its last structural step.
func RenumberMeasures(s *model.Score) {
	for _, st := range s.Staves() {
		measures := st.MeasureSlice()
		for i := range measures {
			measures[i].Number = i + 1
		}
	}
}
