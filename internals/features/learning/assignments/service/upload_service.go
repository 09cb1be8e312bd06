package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"zamanat_backend/internals/constants"
	"zamanat_backend/internals/features/learning/assignments/model"
	"zamanat_backend/internals/features/learning/assignments/repository"
	"zamanat_backend/internals/helpers/imagex"
	"zamanat_backend/internals/helpers/storage"
)

const (
	DefaultMaxBytes   = 10 * 1024 * 1024
	ScreenshotWidth   = 1600
	ScreenshotQuality = 85
)

var (
	ErrMissingCourse = errors.New("course name and step are required")
	ErrInvalidStep   = fmt.Errorf("step must be between 1 and %d", model.MaxStep)
	ErrInvalidType   = errors.New("invalid upload type")
	ErrEmptyFile     = errors.New("no file uploaded")
	ErrNotOwner      = errors.New("assignment belongs to another user")
)

type FileTooLargeError struct {
	Size, Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, limit is %d", e.Size, e.Limit)
}

// NameResolver returns the display name used for the user's storage folder.
type NameResolver func(ctx context.Context, userID uuid.UUID) (string, error)

type UploadInput struct {
	CourseName string
	Step       int
	Type       string
	Filename   string
	MimeType   string
	Data       []byte
}

type UploadService struct {
	Store       repository.Store
	Root        string
	MaxBytes    int64
	ResolveName NameResolver
	now         func() time.Time
}

func NewUploadService(store repository.Store, root string, maxBytes int64, names NameResolver) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &UploadService{Store: store, Root: root, MaxBytes: maxBytes, ResolveName: names, now: time.Now}
}

func (s *UploadService) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*model.AssignmentModel, error) {
	in.CourseName = strings.TrimSpace(in.CourseName)
	if in.CourseName == "" || in.Step == 0 {
		return nil, ErrMissingCourse
	}
	if in.Step < 1 || in.Step > model.MaxStep {
		return nil, ErrInvalidStep
	}
	if in.Type != constants.SubmissionCode && in.Type != constants.SubmissionScreenshot {
		return nil, ErrInvalidType
	}
	if len(in.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(in.Data)) > s.MaxBytes {
		return nil, &FileTooLargeError{Size: int64(len(in.Data)), Limit: s.MaxBytes}
	}

	userName := userID.String()
	if s.ResolveName != nil {
		name, err := s.ResolveName(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("resolve user name: %w", err)
		}
		if strings.TrimSpace(name) != "" {
			userName = name
		}
	}

	data, storedName, mime := in.Data, in.Filename, in.MimeType
	if mime == "" {
		mime = imagex.SniffContentType(data)
	}
	if in.Type == constants.SubmissionScreenshot {
		data, storedName, mime = s.compactScreenshot(data, storedName, mime)
	}

	path, err := storage.WriteStepFile(s.Root, userName, in.CourseName, in.Step, storage.StampedName(s.now(), storedName), data)
	if err != nil {
		return nil, err
	}

	row := &model.AssignmentModel{
		AssignmentUserID:       userID,
		AssignmentCourseName:   in.CourseName,
		AssignmentStep:         in.Step,
		AssignmentType:         in.Type,
		AssignmentOriginalName: in.Filename,
		AssignmentServerPath:   path,
		AssignmentMimeType:     mime,
		AssignmentSize:         int64(len(data)),
	}
	if err := s.Store.Create(ctx, row); err != nil {
		// keep disk and table in step
		if rmErr := storage.RemoveFile(s.Root, path); rmErr != nil {
			log.Printf("[UPLOAD] ⚠️ orphan file %s: %v", path, rmErr)
		}
		return nil, err
	}
	log.Printf("[UPLOAD] ✅ user=%s course=%q step=%d type=%s size=%d", userID, in.CourseName, in.Step, in.Type, row.AssignmentSize)
	return row, nil
}

// compactScreenshot re-encodes png/jpeg to webp. Any failure keeps the original bytes.
func (s *UploadService) compactScreenshot(data []byte, name, mime string) ([]byte, string, string) {
	sniffed := imagex.SniffContentType(data)
	if sniffed != "image/png" && sniffed != "image/jpeg" {
		return data, name, mime
	}
	out, err := imagex.ToWebP(data, imagex.WebPOptions{MaxWidth: ScreenshotWidth, Quality: ScreenshotQuality})
	if err != nil {
		log.Printf("[UPLOAD] ⚠️ webp conversion failed for %q, keeping original: %v", name, err)
		return data, name, mime
	}
	return out, strings.TrimSuffix(name, filepath.Ext(name)) + ".webp", "image/webp"
}

func (s *UploadService) List(ctx context.Context, userID uuid.UUID, courseName string) ([]model.AssignmentModel, error) {
	return s.Store.ListByCourse(ctx, userID, courseName)
}

// Remove deletes the file (a missing one is fine) and then the row. Only the owner may remove.
func (s *UploadService) Remove(ctx context.Context, userID, id uuid.UUID) error {
	row, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if row.AssignmentUserID != userID {
		return ErrNotOwner
	}
	if err := storage.RemoveFile(s.Root, row.AssignmentServerPath); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return s.Store.Delete(ctx, id)
}
