package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zamanat_backend/internals/features/users/user/model"
	"zamanat_backend/internals/features/users/user/repository"
)

type userFixture struct {
	app   *fiber.App
	store *repository.MemoryStore
	admin model.UserModel
	asha  model.UserModel
	ravi  model.UserModel
}

func newUserApp(t *testing.T) *userFixture {
	t.Helper()
	store := repository.NewMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &userFixture{
		store: store,
		admin: store.Put(model.UserModel{Name: "Root", Email: "root@zamanat.com", Role: "admin", CreatedAt: base}),
		asha:  store.Put(model.UserModel{Name: "Asha Rao", Email: "asha@example.com", IsVerified: true, CreatedAt: base.Add(time.Hour)}),
		ravi:  store.Put(model.UserModel{Name: "Ravi", Email: "ravi@example.com", CreatedAt: base.Add(2 * time.Hour)}),
	}

	ctl := NewUserController(store)
	auth := func(c *fiber.Ctx) error {
		c.Locals("user_id", f.admin.ID.String())
		c.Locals("userRole", "admin")
		return c.Next()
	}
	f.app = fiber.New()
	f.app.Get("/api/users", auth, ctl.List)
	f.app.Get("/api/users/:id", auth, ctl.Get)
	f.app.Patch("/api/users/:id/role", auth, ctl.UpdateRole)
	f.app.Delete("/api/users/:id", auth, ctl.Delete)
	return f
}

func (f *userFixture) do(t *testing.T, method, target, body string) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestListUsersNewestFirst(t *testing.T) {
	f := newUserApp(t)

	code, out := f.do(t, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, code, out)

	data := out["data"].([]any)
	require.Len(t, data, 3)
	assert.Equal(t, "ravi@example.com", data[0].(map[string]any)["email"])
	assert.NotContains(t, data[0].(map[string]any), "password")
	assert.EqualValues(t, 3, out["pagination"].(map[string]any)["total"])
}

func TestListUsersSearchAndRole(t *testing.T) {
	f := newUserApp(t)

	code, out := f.do(t, http.MethodGet, "/api/users?q=ASHA", "")
	require.Equal(t, http.StatusOK, code)
	data := out["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Asha Rao", data[0].(map[string]any)["name"])
	assert.Equal(t, true, data[0].(map[string]any)["isVerified"])

	_, out = f.do(t, http.MethodGet, "/api/users?role=admin", "")
	assert.Len(t, out["data"].([]any), 1)
}

func TestGetUser(t *testing.T) {
	f := newUserApp(t)

	code, _ := f.do(t, http.MethodGet, "/api/users/"+f.asha.ID.String(), "")
	assert.Equal(t, http.StatusOK, code)

	code, out := f.do(t, http.MethodGet, "/api/users/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", out["message"])

	code, _ = f.do(t, http.MethodGet, "/api/users/nope", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpdateRole(t *testing.T) {
	f := newUserApp(t)

	code, out := f.do(t, http.MethodPatch, "/api/users/"+f.ravi.ID.String()+"/role", `{"role":" Admin "}`)
	require.Equal(t, http.StatusOK, code, out)
	assert.Equal(t, "admin", out["data"].(map[string]any)["role"])

	stored, err := f.store.FindByID(context.Background(), f.ravi.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", stored.Role)
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	f := newUserApp(t)

	code, _ := f.do(t, http.MethodPatch, "/api/users/"+f.ravi.ID.String()+"/role", `{"role":"owner"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminCannotTargetSelf(t *testing.T) {
	f := newUserApp(t)

	code, out := f.do(t, http.MethodPatch, "/api/users/"+f.admin.ID.String()+"/role", `{"role":"user"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "You cannot change your own account here", out["message"])

	code, _ = f.do(t, http.MethodDelete, "/api/users/"+f.admin.ID.String(), "")
	assert.Equal(t, http.StatusBadRequest, code)

	stored, err := f.store.FindByID(context.Background(), f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", stored.Role)
}

func TestDeleteUser(t *testing.T) {
	f := newUserApp(t)

	code, _ := f.do(t, http.MethodDelete, "/api/users/"+f.asha.ID.String(), "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodDelete, "/api/users/"+f.asha.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, code)
}
