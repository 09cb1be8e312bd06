package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zamanat_backend/internals/features/learning/assessments/repository"
	"zamanat_backend/internals/features/learning/assessments/service"
	assignmentModel "zamanat_backend/internals/features/learning/assignments/model"
)

type fixedSubmissions []assignmentModel.AssignmentModel

func (f fixedSubmissions) ListByCourse(_ context.Context, _ uuid.UUID, course string) ([]assignmentModel.AssignmentModel, error) {
	if course != "Web Dev" {
		return nil, nil
	}
	return f, nil
}

type fixedAI struct {
	reply string
	err   error
}

func (f fixedAI) Generate(context.Context, []service.Part) (string, error) { return f.reply, f.err }

func newAssessApp(t *testing.T, ai service.Generator) *fiber.App {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "app.js")
	require.NoError(t, os.WriteFile(path, []byte("let a = 1"), 0o644))
	subs := fixedSubmissions{{AssignmentType: "code", AssignmentOriginalName: "app.js", AssignmentServerPath: path}}

	ctl := NewAssessmentController(service.NewAssessor(subs, repository.NewMemoryStore(), ai, root))
	userID := uuid.New()
	auth := func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	}
	app := fiber.New()
	app.Post("/api/assessment", auth, ctl.Assess)
	app.Get("/api/assessment/:courseName", auth, ctl.Latest)
	return app
}

func hit(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestAssessAndFetchLatest(t *testing.T) {
	app := newAssessApp(t, fixedAI{reply: `{"overallScore":70,"summary":"Fine","sections":[]}`})

	code, _ := hit(t, app, http.MethodGet, "/api/assessment/Web%20Dev", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, out := hit(t, app, http.MethodPost, "/api/assessment", `{"courseName":"Web Dev"}`)
	require.Equal(t, http.StatusOK, code, out)
	assert.EqualValues(t, 70, out["data"].(map[string]any)["overallScore"])

	code, out = hit(t, app, http.MethodGet, "/api/assessment/Web%20Dev", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Fine", out["data"].(map[string]any)["summary"])
}

func TestAssessErrors(t *testing.T) {
	app := newAssessApp(t, fixedAI{reply: "not json at all"})

	code, out := hit(t, app, http.MethodPost, "/api/assessment", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Course name is required", out["message"])

	code, _ = hit(t, app, http.MethodPost, "/api/assessment", `{"courseName":"Unknown"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, out = hit(t, app, http.MethodPost, "/api/assessment", `{"courseName":"Web Dev"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "not json at all", out["raw"])
}

func TestAssessUpstreamFailure(t *testing.T) {
	app := newAssessApp(t, fixedAI{err: &service.GeminiError{StatusCode: 503, Body: "overloaded"}})
	code, _ := hit(t, app, http.MethodPost, "/api/assessment", `{"courseName":"Web Dev"}`)
	assert.Equal(t, http.StatusBadGateway, code)

	app = newAssessApp(t, fixedAI{err: service.ErrGeneratorNotConfigured})
	code, _ = hit(t, app, http.MethodPost, "/api/assessment", `{"courseName":"Web Dev"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
