// Package simplify applies named simplification algorithms to a score. The
// registry of built-ins is populated at init and read-only afterwards, so
// concurrent lookups need no locking.
package simplify

import (
	"sort"
	"strings"

	"github.com/notare/notare/model"
	"github.com/notare/notare/score"
	"github.com/notare/notare/selection"
	"github.com/notare/notare/util"
)

// Context scopes an algorithm run: which staves to touch and, optionally,
// which measure numbers. Empty fields mean no restriction.
type Context struct {
	Ranges []selection.Range
	Staves []model.Stave
}

// Func is the registry contract: mutate the score in place under the given
// scope and parameters.
type Func func(s *model.Score, ctx Context, params map[string]string)

// Algorithm names one pipeline step with its parameters.
type Algorithm struct {
	Name   string
	Params map[string]string
}

var registry = map[string]Func{}

func init() {
	Register("ornament_removal", OrnamentRemoval)
	Register("chordify", Chordify)
}

// Register installs an algorithm under a normalized name (lowercase,
// hyphens to underscores). Meant to be called from init functions only.
func Register(name string, fn Func) {
	registry[normalizeName(name)] = fn
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// Names lists the registered algorithm names, sorted.
func Names() []string {
	names := util.Keys(registry)
	sort.Strings(names)
	return names
}

// Apply runs the algorithms in caller order against the same tree. Unknown
// names are skipped so pipelines stay forward-compatible with algorithm
// lists this build does not know. Finishes with renumbering and a
// best-effort notation fix-up.
func Apply(s *model.Score, algs []Algorithm, ctx Context) {
	for _, alg := range algs {
		fn, ok := registry[normalizeName(alg.Name)]
		if !ok {
			continue
		}
		fn(s, ctx, alg.Params)
	}
	score.RenumberMeasures(s)
	_ = score.NormalizeNotation(s)
}
