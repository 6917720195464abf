package llm

import (
	"encoding/json"
	"strings"
)

// Kind discriminates the analysis result variants. Callers switch on Kind
// rather than probing for key presence.
type Kind int

const (
	// KindStructured is a model response parsed into the six-field schema.
	KindStructured Kind = iota
	// KindRaw is unparseable model output carried verbatim.
	KindRaw
	// KindError is an absorbed evaluator failure: score 0, diagnostic
	// summary, empty lists.
	KindError
)

// Structured is the six-field analysis schema.
type Structured struct {
	OverallScore           int      `json:"overall_score"`
	Summary                string   `json:"summary"`
	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
	MissingKeywords        []string `json:"missing_keywords"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// Result is the evaluator outcome. Exactly one variant is populated.
type Result struct {
	kind       Kind
	structured Structured
	raw        string
}

// NewStructured wraps a parsed schema, normalizing nil slices to empty ones
// so the serialized form always carries arrays.
func NewStructured(s Structured) Result {
	s.Strengths = nonNil(s.Strengths)
	s.Weaknesses = nonNil(s.Weaknesses)
	s.MissingKeywords = nonNil(s.MissingKeywords)
	s.ImprovementSuggestions = nonNil(s.ImprovementSuggestions)
	return Result{kind: KindStructured, structured: s}
}

// NewRaw wraps verbatim model text that could not be parsed.
func NewRaw(text string) Result {
	return Result{kind: KindRaw, raw: text}
}

// NewErrorShaped builds the absorbed-failure variant with the given summary.
func NewErrorShaped(summary string) Result {
	return Result{
		kind: KindError,
		structured: Structured{
			OverallScore:           0,
			Summary:                summary,
			Strengths:              []string{},
			Weaknesses:             []string{},
			MissingKeywords:        []string{},
			ImprovementSuggestions: []string{},
		},
	}
}

// Kind reports the populated variant.
func (r Result) Kind() Kind { return r.kind }

// Structured returns the schema fields for KindStructured and KindError.
func (r Result) Structured() (Structured, bool) {
	if r.kind == KindRaw {
		return Structured{}, false
	}
	return r.structured, true
}

// Raw returns the verbatim text for KindRaw.
func (r Result) Raw() (string, bool) {
	if r.kind != KindRaw {
		return "", false
	}
	return r.raw, true
}

// MarshalJSON serializes the conventional mapping: the six-key object for
// structured and error variants, {"raw": text} otherwise.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.kind == KindRaw {
		return json.Marshal(map[string]string{"raw": r.raw})
	}
	return json.Marshal(r.structured)
}

// Normalize turns candidate text from the model into a Result. Preference
// order: strict parse of the whole text, then a greedy first-{ to last-}
// substring, then the verbatim raw fallback. The substring heuristic can
// capture trailing garbage on adversarial output; it is kept for parity with
// the documented fallback contract.
func Normalize(text string) Result {
	if s, err := parseStructured(text); err == nil {
		return NewStructured(s)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if s, err := parseStructured(text[start : end+1]); err == nil {
			return NewStructured(s)
		}
	}

	return NewRaw(text)
}

func parseStructured(text string) (Structured, error) {
	var s Structured
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return Structured{}, err
	}
	return s, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
