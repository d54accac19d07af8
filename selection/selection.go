// Package selection resolves measure-range and part specifications into
// normalized criteria the structural operations share.
package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notare/notare/model"
)

// Range is an inclusive, normalized (Start <= End) measure range.
type Range struct {
	Start int
	End   int
}

// Contains reports whether the 1-based measure number lies in the range.
func (r Range) Contains(num int) bool {
	return num >= r.Start && num <= r.End
}

// InRanges reports whether num falls in any of the ranges. An empty list
// means no restriction.
func InRanges(num int, ranges []Range) bool {
	if len(ranges) == 0 {
		return true
	}
	for _, r := range ranges {
		if r.Contains(num) {
			return true
		}
	}
	return false
}

// ParseMeasureSpec parses a comma-separated measure spec into ranges. Tokens
// are single integers or start-end pairs, tolerant of whitespace and stray
// bracket/parenthesis wrappers. Reversed ranges are swapped. Overlaps are
// kept as given. An empty spec yields no ranges, which callers read as
// "whole score".
func ParseMeasureSpec(spec string) ([]Range, error) {
	spec = strings.Trim(strings.TrimSpace(spec), "()[]")
	if spec == "" {
		return nil, nil
	}
	var ranges []Range
	for _, token := range strings.Split(spec, ",") {
		token = strings.Trim(strings.TrimSpace(token), "()[]")
		if token == "" {
			continue
		}
		var start, end int
		if i := strings.Index(token, "-"); i >= 0 {
			var err error
			start, err = parseBound(token[:i], token)
			if err != nil {
				return nil, err
			}
			end, err = parseBound(token[i+1:], token)
			if err != nil {
				return nil, err
			}
		} else {
			n, err := parseBound(token, token)
			if err != nil {
				return nil, err
			}
			start, end = n, n
		}
		if start > end {
			start, end = end, start
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges, nil
}

func parseBound(text, token string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &model.ValidationError{Field: "measure spec token", Value: token}
	}
	return n, nil
}

// ParseCSV splits a comma-separated value into trimmed non-empty tokens,
// optionally lowercased.
func ParseCSV(value string, lower bool) []string {
	var tokens []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if lower {
			item = strings.ToLower(item)
		}
		tokens = append(tokens, item)
	}
	return tokens
}

// SelectParts resolves part-name and 1-based part-number specs against the
// score. Matching is case-insensitive over both display name and identifier;
// a part also matches when its position appears in the number spec. With no
// criteria every part is selected. A partless score yields the score itself
// as the sole unit. Explicit criteria matching nothing fail with a
// SelectionError listing what was available.
func SelectParts(s *model.Score, partNames, partNumbers string) ([]model.Stave, error) {
	if len(s.Parts) == 0 {
		return []model.Stave{s}, nil
	}

	nameSet := make(map[string]bool)
	for _, name := range ParseCSV(partNames, true) {
		nameSet[name] = true
	}
	numberSet := make(map[int]bool)
	for _, tok := range ParseCSV(partNumbers, false) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &model.ValidationError{Field: "part number", Value: tok}
		}
		numberSet[n] = true
	}

	if len(nameSet) == 0 && len(numberSet) == 0 {
		return s.Staves(), nil
	}

	var selected []model.Stave
	for i := range s.Parts {
		p := &s.Parts[i]
		match := nameSet[strings.ToLower(p.Name)] || nameSet[strings.ToLower(p.ID)]
		if numberSet[i+1] {
			match = true
		}
		if match {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		available := make([]string, 0, len(s.Parts))
		for i := range s.Parts {
			label := s.Parts[i].Label()
			if label == "" {
				label = fmt.Sprintf("Part %d", i+1)
			}
			available = append(available, label)
		}
		return nil, &model.SelectionError{Available: available}
	}
	return selected, nil
}
