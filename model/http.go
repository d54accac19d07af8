package model

import "encoding/json"

// Request/response bodies for the transform server. Scores travel as raw
// musicjson documents so the engine codec stays the single decode path.

type ExtractRequest struct {
	Score       json.RawMessage `json:"score"`
	Measures    string          `json:"measures,omitempty"`
	PartNames   string          `json:"part_names,omitempty"`
	PartNumbers string          `json:"part_numbers,omitempty"`
	ChordsOnly  bool            `json:"chords_only,omitempty"`
}

type AddRequest struct {
	Score   json.RawMessage `json:"score"`
	ToAdd   json.RawMessage `json:"to_add"`
	Measure int             `json:"measure"`
	After   bool            `json:"after,omitempty"`
}

type AlgorithmSpec struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

type SimplifyRequest struct {
	Score       json.RawMessage `json:"score"`
	Algorithms  []AlgorithmSpec `json:"algorithms"`
	Measures    string          `json:"measures,omitempty"`
	PartNames   string          `json:"part_names,omitempty"`
	PartNumbers string          `json:"part_numbers,omitempty"`
}

type AnalyzeRequest struct {
	Score   json.RawMessage `json:"score"`
	Metrics []string        `json:"metrics,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
