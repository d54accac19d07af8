// Package engine is the notation boundary: it parses score files or streams
// into the model tree, serializes trees back out, and owns the registry of
// supported formats. Everything between those two boundaries works on the
// in-memory tree only.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/notare/notare/model"
	"github.com/notare/notare/score"
)

// FormatMusicJSON is the canonical interchange format and the fallback
// whenever no format can be inferred.
const FormatMusicJSON = "musicjson"

// Registry is the immutable set of formats the engine can read and write.
// It is built once at startup and passed by reference to whoever needs it;
// nothing mutates it afterwards.
type Registry struct {
	input  []string
	output []string
}

// NewRegistry builds the registry of built-in codecs. Output formats include
// sub-format variants (musicjson.pretty).
func NewRegistry() Registry {
	return Registry{
		input:  []string{"midi", FormatMusicJSON},
		output: []string{"midi", FormatMusicJSON, FormatMusicJSON + ".pretty"},
	}
}

// InputFormats lists readable formats, sorted.
func (r Registry) InputFormats() []string {
	return append([]string(nil), r.input...)
}

// OutputFormats lists writable formats including sub-format variants, sorted.
func (r Registry) OutputFormats() []string {
	return append([]string(nil), r.output...)
}

// SupportsOutput reports whether the format is in the registered output set.
func (r Registry) SupportsOutput(format string) bool {
	for _, f := range r.output {
		if f == format {
			return true
		}
	}
	return false
}

// Engine performs all score IO against its registry.
type Engine struct {
	formats Registry
}

func New() *Engine {
	return &Engine{formats: NewRegistry()}
}

// Formats exposes the engine's registry.
func (e *Engine) Formats() Registry {
	return e.formats
}

// Load reads a score from a path, or from stdin when source is empty or "-",
// then normalizes it: metadata always present, placeholder titles/composers
// blanked, unnamed parts become "Part N", missing part identifiers are
// backfilled, and measures are renumbered from 1 so every later operation
// can trust 1-based contiguous numbering.
func (e *Engine) Load(source string, stdin io.Reader) (*model.Score, error) {
	var data []byte
	if strings.TrimSpace(source) == "" || strings.TrimSpace(source) == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if len(raw) == 0 {
			return nil, model.ErrNoInput
		}
		data = raw
	} else {
		raw, err := os.ReadFile(source)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrSourceNotFound, source)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		data = raw
	}

	s, err := e.parse(data)
	if err != nil {
		return nil, err
	}
	normalizeLoaded(s)
	return s, nil
}

func (e *Engine) parse(data []byte) (*model.Score, error) {
	if bytes.HasPrefix(data, []byte("MThd")) {
		return decodeMIDI(data)
	}
	return decodeMusicJSON(data)
}

// Write serializes the score. The format is the explicit override when
// given, else inferred from the output path suffix, else musicjson. With no
// output path the bytes go to stdout, silently falling back to musicjson if
// the requested format is unsupported so pipes stay usable; with a path an
// unsupported format is an error listing the registered set. Returns a
// human-readable message for file output, empty for stdout.
func (e *Engine) Write(s *model.Score, format, output string, stdout io.Writer) (string, error) {
	name := determineFormat(format, output)

	if output == "" {
		if !e.formats.SupportsOutput(name) {
			name = FormatMusicJSON
		}
		data, err := e.encode(s, name)
		if err != nil {
			return "", err
		}
		if _, err := stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing stdout: %w", err)
		}
		return "", nil
	}

	if !e.formats.SupportsOutput(name) {
		return "", &model.UnsupportedFormatError{Format: name, Supported: e.formats.OutputFormats()}
	}
	data, err := e.encode(s, name)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(output); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", output, err)
	}
	return fmt.Sprintf("Created %s using format '%s'.", output, name), nil
}

func (e *Engine) encode(s *model.Score, format string) ([]byte, error) {
	switch format {
	case FormatMusicJSON:
		return encodeMusicJSON(s, false)
	case FormatMusicJSON + ".pretty":
		return encodeMusicJSON(s, true)
	case "midi":
		return encodeMIDI(s)
	}
	return nil, &model.UnsupportedFormatError{Format: format, Supported: e.formats.OutputFormats()}
}

// Normalize is the best-effort notation fix-up applied before serialization.
// Callers ignore its error by contract.
func (e *Engine) Normalize(s *model.Score) error {
	return score.NormalizeNotation(s)
}

func determineFormat(explicit, output string) string {
	if f := strings.ToLower(strings.TrimSpace(explicit)); f != "" {
		return f
	}
	if output != "" {
		if suffix := strings.TrimPrefix(filepath.Ext(output), "."); suffix != "" {
			return normalizeSuffix(strings.ToLower(suffix))
		}
	}
	return FormatMusicJSON
}

func normalizeSuffix(suffix string) string {
	switch suffix {
	case "mid", "midi":
		return "midi"
	case "json", FormatMusicJSON:
		return FormatMusicJSON
	}
	return suffix
}

var titlePlaceholders = map[string]bool{"untitled": true, "title": true}
var composerPlaceholders = map[string]bool{"unknown": true, "composer": true}
var partPlaceholders = map[string]bool{"part": true}

func normalizeLoaded(s *model.Score) {
	if s.Metadata == nil {
		s.Metadata = &model.Metadata{}
	}
	if isPlaceholder(s.Metadata.Title, titlePlaceholders) {
		s.Metadata.Title = ""
	}
	if isPlaceholder(s.Metadata.Composer, composerPlaceholders) {
		s.Metadata.Composer = ""
	}
	for i := range s.Parts {
		p := &s.Parts[i]
		if isPlaceholder(p.Name, partPlaceholders) {
			p.Name = fmt.Sprintf("Part %d", i+1)
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
	}
	score.RenumberMeasures(s)
}

func isPlaceholder(value string, placeholders map[string]bool) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || placeholders[strings.ToLower(trimmed)]
}
