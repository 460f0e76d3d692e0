package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateEmail("a@x.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("a b@x.com"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidateProjectName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateProjectName("Acme Robotics"))
	assert.Error(t, ValidateProjectName("   "))
	assert.Error(t, ValidateProjectName(strings.Repeat("x", 256)))
}

func TestValidateDocumentFilename(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateDocumentFilename("deck.pdf"))
	assert.NoError(t, ValidateDocumentFilename("Plan.DOCX"))
	assert.Error(t, ValidateDocumentFilename(""))
	assert.Error(t, ValidateDocumentFilename("../etc/passwd.pdf"))
	assert.Error(t, ValidateDocumentFilename("dir/deck.pdf"))
	assert.Error(t, ValidateDocumentFilename("deck.exe"))
}

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello world", SanitizeString("  hello\x00 world\x07  "))
	assert.Equal(t, "a\tb", SanitizeString("a\tb"))
}
