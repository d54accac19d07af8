package model

// EventKind tags the closed set of event variants a measure can hold.
type EventKind string

const (
	KindNote     EventKind = "note"
	KindChord    EventKind = "chord"
	KindRest     EventKind = "rest"
	KindOrnament EventKind = "ornament"
	KindSpanner  EventKind = "spanner"
)

// Ornament names carried by KindOrnament and KindSpanner events.
const (
	OrnamentTrill         = "trill"
	OrnamentTurn          = "turn"
	OrnamentMordent       = "mordent"
	SpannerTrillExtension = "trill-extension"
)

// Event is one notational object inside a measure. Which fields are
// meaningful depends on Kind:
//
//	note     Pitch, Duration, Grace, BeatStrength
//	chord    Pitches, Duration
//	rest     Duration
//	ornament Ornament (trill/turn/mordent)
//	spanner  Ornament (e.g. trill-extension)
//
// Durations are in beats with a quarter note = 1.0; a duration of exactly 0
// marks a grace note. BeatStrength is a 0-1 metric weight, 0 when unknown.
type Event struct {
	Kind         EventKind
	Pitch        uint8
	Pitches      []uint8
	Duration     float64
	Grace        bool
	BeatStrength float64
	Ornament     string
}

// Sounding reports whether the event occupies time in the measure.
func (e Event) Sounding() bool {
	switch e.Kind {
	case KindNote, KindChord, KindRest:
		return true
	}
	return false
}

// IsGrace reports whether the event is a grace note, either flagged or
// carrying a zero duration.
func (e Event) IsGrace() bool {
	return e.Kind == KindNote && (e.Grace || e.Duration == 0)
}

// TimeSig is a notated time signature. A nil TimeSig on a measure means the
// governing signature is inherited from an earlier measure.
type TimeSig struct {
	Numerator   int
	Denominator int
}

// BarBeats returns the total beat length of one bar under the signature.
func (ts TimeSig) BarBeats() float64 {
	if ts.Denominator == 0 {
		return 4.0
	}
	return float64(ts.Numerator) * 4.0 / float64(ts.Denominator)
}

// BeatBeats returns the duration of one metric beat. Compound meters (6/8,
// 9/8, 12/8) count in dotted units; everything else counts the denominator.
func (ts TimeSig) BeatBeats() float64 {
	if ts.Denominator == 0 {
		return 1.0
	}
	if ts.Denominator == 8 && ts.Numerator > 3 && ts.Numerator%3 == 0 {
		return 1.5
	}
	return 4.0 / float64(ts.Denominator)
}

// Measure is one bar: an ordered event sequence plus a 1-based number. The
// number is authoritative only after renumbering. A measure with no events
// is legal and still counts as one measure.
type Measure struct {
	Number  int
	TimeSig *TimeSig
	Events  []Event
}

// Part is one instrumental or vocal line.
type Part struct {
	Name     string
	ID       string
	Measures []Measure
}

// Metadata carries the score-level descriptive fields.
type Metadata struct {
	Title    string
	Composer string
	Arranger string
}

// Score is the root of the tree. Parts is the normal case; a score without
// explicit parts keeps its bars directly in Measures and is treated as the
// sole selectable unit by every operation. Tempo is in BPM, 0 when unknown.
type Score struct {
	Metadata *Metadata
	Tempo    float64
	Parts    []Part
	Measures []Measure
}

// Stave is any ordered measure sequence an operation can act on: a part, or
// the score itself when it has no parts. MeasureSlice returns the underlying
// slice so element edits stick; SetMeasures replaces it wholesale.
type Stave interface {
	Label() string
	MeasureSlice() []Measure
	SetMeasures([]Measure)
}

func (p *Part) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func (p *Part) MeasureSlice() []Measure  { return p.Measures }
func (p *Part) SetMeasures(ms []Measure) { p.Measures = ms }

func (s *Score) Label() string {
	if s.Metadata != nil && s.Metadata.Title != "" {
		return s.Metadata.Title
	}
	return "score"
}

func (s *Score) MeasureSlice() []Measure  { return s.Measures }
func (s *Score) SetMeasures(ms []Measure) { s.Measures = ms }

// Staves returns the sequences operations iterate: one per part, or the
// score itself when partless.
func (s *Score) Staves() []Stave {
	if len(s.Parts) == 0 {
		return []Stave{s}
	}
	staves := make([]Stave, 0, len(s.Parts))
	for i := range s.Parts {
		staves = append(staves, &s.Parts[i])
	}
	return staves
}
