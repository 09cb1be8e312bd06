package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zamanat_backend/internals/features/learning/assessments/repository"
	assignmentModel "zamanat_backend/internals/features/learning/assignments/model"
)

type stubSubmissions struct {
	rows []assignmentModel.AssignmentModel
	err  error
}

func (s stubSubmissions) ListByCourse(context.Context, uuid.UUID, string) ([]assignmentModel.AssignmentModel, error) {
	return s.rows, s.err
}

type stubAI struct {
	reply string
	err   error
	seen  []Part
}

func (s *stubAI) Generate(_ context.Context, parts []Part) (string, error) {
	s.seen = parts
	return s.reply, s.err
}

func writeSubmission(t *testing.T, root, name, typ, mime string, data []byte) assignmentModel.AssignmentModel {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return assignmentModel.AssignmentModel{
		AssignmentType:         typ,
		AssignmentOriginalName: name,
		AssignmentServerPath:   path,
		AssignmentMimeType:     mime,
	}
}

func TestAssessBuildsPromptAndStores(t *testing.T) {
	root := t.TempDir()
	subs := stubSubmissions{rows: []assignmentModel.AssignmentModel{
		writeSubmission(t, root, "index.html", "code", "text/html", []byte("<h1>Hi</h1>")),
		writeSubmission(t, root, "shot.webp", "screenshot", "image/webp", []byte{1, 2, 3}),
		{AssignmentType: "code", AssignmentOriginalName: "gone.js", AssignmentServerPath: filepath.Join(root, "gone.js")},
	}}
	ai := &stubAI{reply: "```json\n" + plainReply + "\n```"}
	store := repository.NewMemoryStore()
	a := NewAssessor(subs, store, ai, root)
	userID := uuid.New()

	row, err := a.Assess(context.Background(), userID, " Web Dev ")
	require.NoError(t, err)
	assert.Equal(t, "Web Dev", row.AssessmentCourseName)
	assert.Equal(t, 82.0, row.AssessmentOverallScore)
	assert.Len(t, row.AssessmentSections, 1)
	assert.Equal(t, ai.reply, row.AssessmentAIResponse)

	require.Len(t, ai.seen, 4)
	assert.Contains(t, ai.seen[0].Text, `"Web Dev"`)
	assert.Contains(t, ai.seen[1].Text, "--- File: index.html ---\n<h1>Hi</h1>")
	require.NotNil(t, ai.seen[2].InlineData)
	assert.Equal(t, "image/webp", ai.seen[2].InlineData.MimeType)
	assert.Equal(t, "AQID", ai.seen[2].InlineData.Data)
	assert.Contains(t, ai.seen[3].Text, "[Attached Screenshot: shot.webp]")

	latest, err := a.Latest(context.Background(), userID, "Web Dev")
	require.NoError(t, err)
	assert.Equal(t, row.AssessmentID, latest.AssessmentID)
}

func TestAssessNoSubmissions(t *testing.T) {
	ai := &stubAI{}
	a := NewAssessor(stubSubmissions{}, repository.NewMemoryStore(), ai, t.TempDir())

	_, err := a.Assess(context.Background(), uuid.New(), "Web Dev")
	assert.ErrorIs(t, err, ErrNoAssignments)
	assert.Nil(t, ai.seen)
}

func TestAssessBadReplyStoresNothing(t *testing.T) {
	root := t.TempDir()
	subs := stubSubmissions{rows: []assignmentModel.AssignmentModel{
		writeSubmission(t, root, "a.js", "code", "text/javascript", []byte("x")),
	}}
	store := repository.NewMemoryStore()
	a := NewAssessor(subs, store, &stubAI{reply: "sorry"}, root)
	userID := uuid.New()

	_, err := a.Assess(context.Background(), userID, "Web Dev")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "sorry", pe.Raw)

	_, err = store.Latest(context.Background(), userID, "Web Dev")
	assert.ErrorIs(t, err, repository.ErrAssessmentNotFound)
}

func TestAssessTruncatesLargeCode(t *testing.T) {
	root := t.TempDir()
	big := make([]byte, 100)
	for i := range big {
		big[i] = 'a'
	}
	subs := stubSubmissions{rows: []assignmentModel.AssignmentModel{
		writeSubmission(t, root, "big.js", "code", "text/javascript", big),
	}}
	ai := &stubAI{reply: plainReply}
	a := NewAssessor(subs, repository.NewMemoryStore(), ai, root)
	a.MaxTextBytes = 10

	_, err := a.Assess(context.Background(), uuid.New(), "Web Dev")
	require.NoError(t, err)
	assert.Equal(t, "\n--- File: big.js ---\naaaaaaaaaa\n", ai.seen[1].Text)
}
