package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Input validation and sanitization for intake payloads

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// allowed source document formats, per the intake form
var allowedDocumentExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

// ValidateEmail checks the requester address is plausibly deliverable.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if len(email) > 254 {
		return fmt.Errorf("email too long")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateProjectName checks the free-text project name.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("project name too long (max 255 chars)")
	}
	return nil
}

// ValidateDocumentFilename checks the uploaded document name and format.
func ValidateDocumentFilename(name string) error {
	if name == "" {
		return fmt.Errorf("document filename cannot be empty")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("invalid document filename")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedDocumentExts[ext] {
		return fmt.Errorf("unsupported document format: %s (allowed: pdf, docx, txt, md)", ext)
	}
	return nil
}

// SanitizeString removes null bytes and control characters from form input.
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
