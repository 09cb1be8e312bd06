package service

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"

	"zamanat_backend/internals/features/learning/assessments/model"
)

type Result struct {
	OverallScore float64                   `json:"overallScore"`
	Summary      string                    `json:"summary"`
	Sections     []model.AssessmentSection `json:"sections"`
}

// ParseError keeps the model's raw reply so the client can see what came back.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return "assessment reply is not valid JSON: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// ParseResult strips ```json fences and decodes the reply. When the text
// around the object is not JSON, the outermost {...} is tried as well.
func ParseResult(text string) (Result, error) {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.TrimSpace(strings.ReplaceAll(clean, "```", ""))

	var r Result
	err := sonic.UnmarshalString(clean, &r)
	if err != nil {
		start, end := strings.Index(clean, "{"), strings.LastIndex(clean, "}")
		if start < 0 || end <= start {
			return Result{}, &ParseError{Raw: text, Err: err}
		}
		r = Result{}
		if err2 := sonic.UnmarshalString(clean[start:end+1], &r); err2 != nil {
			return Result{}, &ParseError{Raw: text, Err: err2}
		}
	}
	if strings.TrimSpace(r.Summary) == "" {
		return Result{}, &ParseError{Raw: text, Err: errors.New("summary is missing")}
	}
	if r.Sections == nil {
		r.Sections = []model.AssessmentSection{}
	}
	return r, nil
}
