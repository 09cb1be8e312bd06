package constants

import (
	"path/filepath"
	"strings"
)

const (
	SubmissionCode       = "code"
	SubmissionScreenshot = "screenshot"
)

// DetectSubmissionType guesses code vs screenshot from the extension; "" when unsupported.
func DetectSubmissionType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return SubmissionScreenshot
	case ".html", ".htm", ".css", ".js", ".jsx", ".ts", ".tsx", ".json", ".py", ".go",
		".java", ".c", ".cpp", ".md", ".txt", ".sql", ".php", ".rb", ".zip":
		return SubmissionCode
	default:
		return ""
	}
}

// IsTextSubmission reports whether the file can be inlined as text in an assessment prompt.
func IsTextSubmission(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return DetectSubmissionType(filename) == SubmissionCode && ext != ".zip"
}
