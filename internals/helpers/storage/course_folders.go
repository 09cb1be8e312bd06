// Package storage lays out per-user course folders under STORAGE_PATH.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9]`)

var ErrStorageNotConfigured = errors.New("STORAGE_PATH is not set")

// SanitizeFolderName maps every non [A-Za-z0-9] char to '_' and lowercases.
// Distinct names may collide ("a-b" and "a b").
func SanitizeFolderName(name string) string {
	return strings.ToLower(reUnsafe.ReplaceAllString(name, "_"))
}

// StepFolder is the name of the n-th module folder (1-based).
func StepFolder(n int) string {
	return fmt.Sprintf("Step%d", n)
}

// CourseDir returns root/<user>/<course>.
func CourseDir(root, userName, courseName string) string {
	return filepath.Join(root, SanitizeFolderName(userName), SanitizeFolderName(courseName))
}

// StepDir returns root/<user>/<course>/Step<n>.
func StepDir(root, userName, courseName string, step int) string {
	return filepath.Join(CourseDir(root, userName, courseName), StepFolder(step))
}

// InitializeCourseFolders creates Step1..StepN under the user's course dir. Existing folders are kept.
func InitializeCourseFolders(root, userName, courseName string, modules int) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", ErrStorageNotConfigured
	}
	if modules <= 0 {
		return "", fmt.Errorf("module count must be positive, got %d", modules)
	}
	base := CourseDir(root, userName, courseName)
	for i := 1; i <= modules; i++ {
		if err := os.MkdirAll(filepath.Join(base, StepFolder(i)), 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", StepFolder(i), err)
		}
	}
	return base, nil
}
