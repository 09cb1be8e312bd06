package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrOutsideRoot = errors.New("path escapes storage root")

// SafeFileName sanitizes the base name and keeps a lowercase extension:
// "My Screenshot.PNG" -> "my_screenshot.png".
func SafeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || SanitizeFolderName(ext[1:]) != ext[1:] {
		ext = ""
	}
	base := SanitizeFolderName(name[:len(name)-len(ext)])
	if base == "" {
		base = "file"
	}
	return base + ext
}

// StampedName prefixes the sanitized name with unix milliseconds.
func StampedName(at time.Time, original string) string {
	return fmt.Sprintf("%d-%s", at.UnixMilli(), SafeFileName(original))
}

// WriteStepFile stores data under root/<user>/<course>/Step<n>/<name>, creating folders as needed.
func WriteStepFile(root, userName, courseName string, step int, name string, data []byte) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", ErrStorageNotConfigured
	}
	dir := StepDir(root, userName, courseName, step)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// RemoveFile deletes path when it lies under root. A missing file is not an error.
func RemoveFile(root, path string) error {
	if err := insideRoot(root, path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ReadFile reads path when it lies under root.
func ReadFile(root, path string) ([]byte, error) {
	if err := insideRoot(root, path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func insideRoot(root, path string) error {
	if strings.TrimSpace(root) == "" {
		return ErrStorageNotConfigured
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ErrOutsideRoot
	}
	return nil
}
