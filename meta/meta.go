// Package meta inspects and updates score-level descriptive fields.
package meta

import (
	"fmt"
	"strings"

	"github.com/notare/notare/model"
)

// fieldOrder is the display order of Summary.
var fieldOrder = []string{"title", "composer", "arranger", "number_parts", "number_measures"}

// Summary renders the requested fields (all when none requested) as
// "name: value" lines. Unknown field names are a validation error.
func Summary(s *model.Score, fields []string) (string, error) {
	if len(fields) == 0 {
		fields = fieldOrder
	}
	var b strings.Builder
	for _, field := range fields {
		value, err := fieldValue(s, field)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s: %s\n", field, value)
	}
	return b.String(), nil
}

func fieldValue(s *model.Score, field string) (string, error) {
	md := s.Metadata
	if md == nil {
		md = &model.Metadata{}
	}
	switch field {
	case "title":
		return md.Title, nil
	case "composer":
		return md.Composer, nil
	case "arranger":
		return md.Arranger, nil
	case "number_parts":
		return fmt.Sprintf("%d", len(s.Parts)), nil
	case "number_measures":
		max := 0
		for _, st := range s.Staves() {
			if n := len(st.MeasureSlice()); n > max {
				max = n
			}
		}
		return fmt.Sprintf("%d", max), nil
	}
	return "", &model.ValidationError{Field: "metadata field", Value: field}
}

// Updates carries the writable fields; nil pointers leave a field alone.
// PartNames renames parts positionally, skipping empty entries.
type Updates struct {
	Title     *string
	Composer  *string
	Arranger  *string
	PartNames []string
}

// Empty reports whether the update set would change nothing.
func (u Updates) Empty() bool {
	return u.Title == nil && u.Composer == nil && u.Arranger == nil && len(u.PartNames) == 0
}

// Apply writes the updates onto the score in place.
func Apply(s *model.Score, u Updates) {
	if s.Metadata == nil {
		s.Metadata = &model.Metadata{}
	}
	if u.Title != nil {
		s.Metadata.Title = *u.Title
	}
	if u.Composer != nil {
		s.Metadata.Composer = *u.Composer
	}
	if u.Arranger != nil {
		s.Metadata.Arranger = *u.Arranger
	}
	for i, name := range u.PartNames {
		if name == "" || i >= len(s.Parts) {
			continue
		}
		s.Parts[i].Name = name
	}
}
