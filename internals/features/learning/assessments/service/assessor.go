package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"zamanat_backend/internals/constants"
	"zamanat_backend/internals/features/learning/assessments/model"
	"zamanat_backend/internals/features/learning/assessments/repository"
	assignmentModel "zamanat_backend/internals/features/learning/assignments/model"
	"zamanat_backend/internals/helpers/storage"
)

var ErrNoAssignments = errors.New("no submitted assignments for this course")

// Submissions lists what a user uploaded for a course.
type Submissions interface {
	ListByCourse(ctx context.Context, userID uuid.UUID, courseName string) ([]assignmentModel.AssignmentModel, error)
}

type Assessor struct {
	Submissions Submissions
	Store       repository.Store
	AI          Generator
	Root        string
	// MaxTextBytes caps each code file inlined into the prompt.
	MaxTextBytes int
}

func NewAssessor(subs Submissions, store repository.Store, ai Generator, root string) *Assessor {
	return &Assessor{Submissions: subs, Store: store, AI: ai, Root: root, MaxTextBytes: 200 << 10}
}

const promptTemplate = `You are an expert coding instructor and AI grader.
Analyze the following code files and screenshots submitted by a student for the course "%s".

Your task is to:
1. Evaluate the code quality, structure, and best practices (HTML, CSS, JS, etc.).
2. Analyze screenshots to judge the visual output (UI/UX).
3. Provide an overall score (0-100) and a brief summary.
4. Break down the assessment into sections (e.g., HTML, CSS, JavaScript, Accessibility, Design).
5. Provide specific, constructive feedback for each section.
6. Return the result strictly in valid JSON format with no markdown formatting.

JSON Structure:
{
  "overallScore": Number,
  "summary": "String",
  "sections": [
    {
      "name": "String (e.g. HTML)",
      "score": Number,
      "status": "String (Good/Needs Improvement/Excellent)",
      "feedback": "String"
    }
  ]
}
`

// BuildParts turns the submissions into prompt parts. Unreadable files are skipped.
func (a *Assessor) BuildParts(courseName string, subs []assignmentModel.AssignmentModel) []Part {
	parts := []Part{{Text: fmt.Sprintf(promptTemplate, courseName)}}
	for _, s := range subs {
		data, err := storage.ReadFile(a.Root, s.AssignmentServerPath)
		if err != nil {
			log.Printf("[ASSESS] ⚠️ skip %q: %v", s.AssignmentOriginalName, err)
			continue
		}
		switch s.AssignmentType {
		case constants.SubmissionCode:
			if !constants.IsTextSubmission(s.AssignmentOriginalName) {
				continue
			}
			if a.MaxTextBytes > 0 && len(data) > a.MaxTextBytes {
				data = data[:a.MaxTextBytes]
			}
			parts = append(parts, Part{Text: fmt.Sprintf("\n--- File: %s ---\n%s\n", s.AssignmentOriginalName, data)})
		case constants.SubmissionScreenshot:
			mime := s.AssignmentMimeType
			if !strings.HasPrefix(mime, "image/") {
				mime = "image/png"
			}
			parts = append(parts,
				Part{InlineData: &InlineData{MimeType: mime, Data: base64.StdEncoding.EncodeToString(data)}},
				Part{Text: fmt.Sprintf("\n[Attached Screenshot: %s]\n", s.AssignmentOriginalName)},
			)
		}
	}
	return parts
}

// Assess grades everything the user uploaded for courseName and stores the result.
func (a *Assessor) Assess(ctx context.Context, userID uuid.UUID, courseName string) (*model.AssessmentModel, error) {
	courseName = strings.TrimSpace(courseName)
	subs, err := a.Submissions.ListByCourse(ctx, userID, courseName)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if len(subs) == 0 {
		return nil, ErrNoAssignments
	}

	text, err := a.AI.Generate(ctx, a.BuildParts(courseName, subs))
	if err != nil {
		return nil, err
	}
	result, err := ParseResult(text)
	if err != nil {
		log.Printf("[ASSESS] ❌ unparseable reply user=%s course=%q", userID, courseName)
		return nil, err
	}

	row := &model.AssessmentModel{
		AssessmentUserID:       userID,
		AssessmentCourseName:   courseName,
		AssessmentOverallScore: result.OverallScore,
		AssessmentSummary:      result.Summary,
		AssessmentSections:     result.Sections,
		AssessmentAIResponse:   text,
	}
	if err := a.Store.Create(ctx, row); err != nil {
		return nil, err
	}
	log.Printf("[ASSESS] ✅ user=%s course=%q score=%.0f", userID, courseName, result.OverallScore)
	return row, nil
}

func (a *Assessor) Latest(ctx context.Context, userID uuid.UUID, courseName string) (*model.AssessmentModel, error) {
	return a.Store.Latest(ctx, userID, courseName)
}
