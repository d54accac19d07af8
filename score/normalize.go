package score

import (
	"fmt"
	"math"

	"github.com/notare/notare/model"
)

// grid is the finest expressible duration, a 64th note.
const grid = 0.0625

// NormalizeNotation snaps sounding durations onto the 64th-note grid so the
// tree serializes without inexpressible values. Grace notes keep their zero
// duration. Returns an error on durations that cannot be repaired (NaN,
// infinite, negative); callers treat the failure as recoverable and keep the
// tree as-is.
func NormalizeNotation(s *model.Score) error {
	for _, st := range s.Staves() {
		measures := st.MeasureSlice()
		for i := range measures {
			for j := range measures[i].Events {
				e := &measures[i].Events[j]
				if !e.Sounding() {
					continue
				}
				if math.IsNaN(e.Duration) || math.IsInf(e.Duration, 0) || e.Duration < 0 {
					return fmt.Errorf("inexpressible duration %v in %s measure %d",
						e.Duration, st.Label(), measures[i].Number)
				}
				if e.IsGrace() {
					continue
				}
				snapped := math.Round(e.Duration/grid) * grid
				if snapped == 0 {
					snapped = grid
				}
				e.Duration = snapped
			}
		}
	}
	return nil
}
