package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

func clientVars() map[string]string {
	return map[string]string{
		"FirstName":      "Ada",
		"ProjectName":    "Acme",
		"Company":        "Vantage Capital",
		"SupportURL":     "https://vantage.example/contact",
		"SignatureName":  "Jordan Miles",
		"SignatureTitle": "Managing Director",
		"Phone":          "+1 555 0100",
		"UnderwriteLink": "http://files.local/underwrite",
		"KIQLink":        "http://files.local/kiq",
	}
}

func TestRender_ClientResults(t *testing.T) {
	t.Parallel()

	subject, body, err := Render(domain.TemplateClientResults, clientVars())
	require.NoError(t, err)
	assert.Equal(t, "Your Vantage Capital Deal Submission", subject)
	assert.Contains(t, body, "Hi Ada,")
	assert.Contains(t, body, "http://files.local/underwrite")
	assert.Contains(t, body, "http://files.local/kiq")
	assert.Contains(t, body, "Jordan Miles | Managing Director | Vantage Capital")
	assert.NotContains(t, body, "pending manual review")
}

func TestRender_ClientResultsPending(t *testing.T) {
	t.Parallel()

	vars := clientVars()
	vars["Pending"] = "1"
	_, body, err := Render(domain.TemplateClientResults, vars)
	require.NoError(t, err)
	assert.Contains(t, body, "pending manual review")
	assert.NotContains(t, body, "http://files.local/underwrite")
}

func TestRender_ClientDuplicate(t *testing.T) {
	t.Parallel()

	subject, body, err := Render(domain.TemplateClientDuplicate, clientVars())
	require.NoError(t, err)
	assert.Equal(t, "Duplicate Project Submission Detected - Vantage Capital", subject)
	assert.Contains(t, body, "already submitted a project with this name")
	assert.Contains(t, body, "https://vantage.example/contact")
}

func TestRender_InternalNewDeal(t *testing.T) {
	t.Parallel()

	subject, body, err := Render(domain.TemplateInternalNewDeal, map[string]string{
		"Email":          "a@x.com",
		"ProjectName":    "Acme",
		"ProjectLink":    "http://files.local/deals/acme/",
		"UnderwriteLink": "http://files.local/underwrite",
		"KIQLink":        "http://files.local/kiq",
		"Summary":        "New deal processed.",
	})
	require.NoError(t, err)
	assert.Equal(t, "NEW DEAL SUBMITTED", subject)
	assert.Contains(t, body, "New Deal Submission from: a@x.com")
	assert.Contains(t, body, "Project Folder: http://files.local/deals/acme/")
}

func TestRender_UnknownTemplate(t *testing.T) {
	t.Parallel()

	_, _, err := Render(domain.TemplateID("nope"), nil)
	assert.Error(t, err)
}
