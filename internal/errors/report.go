package errors

import (
	"encoding/json"

	"github.com/hexen-lang/hexen/internal/ast"
)

// Fix is a suggested textual replacement for a diagnosed error, e.g. the
// exact `:i64` or `a[..]` syntax the user should add.
type Fix struct {
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

// Report is the canonical structured diagnostic. Every analyzer component
// builds one of these instead of returning a plain error string, so a Sink
// can be inspected field-by-field by callers and tests.
type Report struct {
	Schema  string         `json:"schema"` // always "hexen.diagnostic/v1"
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// New builds a Report with the schema field pre-filled.
func New(code, phase, message string, span *ast.Span) *Report {
	return &Report{
		Schema:  "hexen.diagnostic/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    span,
		Data:    map[string]any{},
	}
}

// WithData attaches a structured detail field and returns the Report for chaining.
func (r *Report) WithData(key string, value any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data[key] = value
	return r
}

// WithFix attaches a suggested fix and returns the Report for chaining.
func (r *Report) WithFix(description, suggestion string) *Report {
	r.Fix = &Fix{Description: description, Suggestion: suggestion}
	return r
}

// Error implements the error interface so a *Report can be used anywhere
// Go code expects one, e.g. from a test helper that wants a single error
// to fail fast on.
func (r *Report) Error() string {
	if r == nil {
		return "<nil report>"
	}
	return r.Code + ": " + r.Message
}

// ToJSON renders the report as JSON, indented unless compact is requested.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Sink collects diagnostics across a single analysis run. It never aborts
// on the first error (spec §2, §7): every component appends and keeps going.
type Sink struct {
	reports []*Report
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{reports: []*Report{}}
}

// Add appends a report. Nil reports are ignored so call sites can write
// `sink.Add(maybeNilReport)` without a guard.
func (s *Sink) Add(r *Report) {
	if r == nil {
		return
	}
	s.reports = append(s.reports, r)
}

// Reports returns the accumulated diagnostics in emission order, which for
// a single-pass top-down analyzer is source-position order (spec §7).
func (s *Sink) Reports() []*Report {
	return s.reports
}

// HasErrors reports whether any diagnostic was recorded. A non-empty sink
// means the program is rejected (spec §7); an empty one means it is accepted.
func (s *Sink) HasErrors() bool {
	return len(s.reports) > 0
}
