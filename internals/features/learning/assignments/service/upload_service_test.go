package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zamanat_backend/internals/features/learning/assignments/repository"
	"zamanat_backend/internals/helpers/imagex"
	"zamanat_backend/internals/helpers/storage"
)

func newUploadService(t *testing.T) (*UploadService, *repository.MemoryStore, string) {
	t.Helper()
	root := t.TempDir()
	store := repository.NewMemoryStore()
	svc := NewUploadService(store, root, 1024*1024, func(context.Context, uuid.UUID) (string, error) {
		return "Asha Rao", nil
	})
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, store, root
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadCodeFile(t *testing.T) {
	svc, store, root := newUploadService(t)
	userID := uuid.New()

	row, err := svc.Upload(context.Background(), userID, UploadInput{
		CourseName: "Full Stack Web Development",
		Step:       2,
		Type:       "code",
		Filename:   "Index.HTML",
		MimeType:   "text/html",
		Data:       []byte("<h1>hi</h1>"),
	})
	require.NoError(t, err)

	want := filepath.Join(root, "asha_rao", "full_stack_web_development", "Step2", "1700000000000-index.html")
	assert.Equal(t, want, row.AssignmentServerPath)
	assert.Equal(t, "Index.HTML", row.AssignmentOriginalName)
	assert.EqualValues(t, 11, row.AssignmentSize)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", string(data))

	rows, err := store.ListByCourse(context.Background(), userID, "Full Stack Web Development")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUploadScreenshotBecomesWebP(t *testing.T) {
	svc, _, _ := newUploadService(t)

	row, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		CourseName: "Web", Step: 1, Type: "screenshot",
		Filename: "shot.png", MimeType: "image/png", Data: pngBytes(t, 2000, 20),
	})
	require.NoError(t, err)

	assert.Equal(t, "image/webp", row.AssignmentMimeType)
	assert.Equal(t, ".webp", filepath.Ext(row.AssignmentServerPath))
	assert.Equal(t, "shot.png", row.AssignmentOriginalName)

	data, err := os.ReadFile(row.AssignmentServerPath)
	require.NoError(t, err)
	img, err := imagex.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, ScreenshotWidth, img.Bounds().Dx())
}

func TestUploadScreenshotKeepsUnconvertibleBytes(t *testing.T) {
	svc, _, _ := newUploadService(t)
	garbage := []byte("GIF89a not really")

	row, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		CourseName: "Web", Step: 1, Type: "screenshot", Filename: "x.gif", MimeType: "image/gif", Data: garbage,
	})
	require.NoError(t, err)
	assert.Equal(t, "image/gif", row.AssignmentMimeType)
	data, _ := os.ReadFile(row.AssignmentServerPath)
	assert.Equal(t, garbage, data)
}

func TestUploadRejectsBadInput(t *testing.T) {
	svc, _, _ := newUploadService(t)
	ok := UploadInput{CourseName: "Web", Step: 1, Type: "code", Filename: "a.js", Data: []byte("x")}

	cases := []struct {
		name   string
		mutate func(*UploadInput)
		want   error
	}{
		{"no course", func(in *UploadInput) { in.CourseName = " " }, ErrMissingCourse},
		{"no step", func(in *UploadInput) { in.Step = 0 }, ErrMissingCourse},
		{"step too high", func(in *UploadInput) { in.Step = 7 }, ErrInvalidStep},
		{"bad type", func(in *UploadInput) { in.Type = "video" }, ErrInvalidType},
		{"empty", func(in *UploadInput) { in.Data = nil }, ErrEmptyFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := ok
			tc.mutate(&in)
			_, err := svc.Upload(context.Background(), uuid.New(), in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	in := ok
	in.Data = make([]byte, svc.MaxBytes+1)
	_, err := svc.Upload(context.Background(), uuid.New(), in)
	var tooLarge *FileTooLargeError
	assert.True(t, errors.As(err, &tooLarge))
}

func TestUploadWithoutStorageRoot(t *testing.T) {
	svc, _, _ := newUploadService(t)
	svc.Root = ""

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		CourseName: "Web", Step: 1, Type: "code", Filename: "a.js", Data: []byte("x"),
	})
	assert.ErrorIs(t, err, storage.ErrStorageNotConfigured)
}

func TestRemoveChecksOwnerAndToleratesMissingFile(t *testing.T) {
	svc, store, _ := newUploadService(t)
	owner := uuid.New()
	ctx := context.Background()

	row, err := svc.Upload(ctx, owner, UploadInput{
		CourseName: "Web", Step: 3, Type: "code", Filename: "a.js", Data: []byte("x"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(ctx, uuid.New(), row.AssignmentID), ErrNotOwner)

	require.NoError(t, os.Remove(row.AssignmentServerPath))
	require.NoError(t, svc.Remove(ctx, owner, row.AssignmentID))

	_, err = store.FindByID(ctx, row.AssignmentID)
	assert.ErrorIs(t, err, repository.ErrAssignmentNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, owner, row.AssignmentID), repository.ErrAssignmentNotFound)
}

func TestListOrdersByStepThenType(t *testing.T) {
	svc, _, _ := newUploadService(t)
	user := uuid.New()
	ctx := context.Background()

	for _, in := range []UploadInput{
		{CourseName: "Web", Step: 2, Type: "code", Filename: "b.js", Data: []byte("b")},
		{CourseName: "Web", Step: 1, Type: "screenshot", Filename: "s.txt", Data: []byte("s")},
		{CourseName: "Web", Step: 1, Type: "code", Filename: "a.js", Data: []byte("a")},
		{CourseName: "Other", Step: 1, Type: "code", Filename: "z.js", Data: []byte("z")},
	} {
		_, err := svc.Upload(ctx, user, in)
		require.NoError(t, err)
	}

	rows, err := svc.List(ctx, user, "Web")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a.js", rows[0].AssignmentOriginalName)
	assert.Equal(t, "s.txt", rows[1].AssignmentOriginalName)
	assert.Equal(t, "b.js", rows[2].AssignmentOriginalName)
}
