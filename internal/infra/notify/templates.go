package notify

import (
	"fmt"
	"strings"
	"text/template"

	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

// mailTemplate pairs a subject line with a plain-text body template.
type mailTemplate struct {
	subject *template.Template
	body    *template.Template
}

var templates = map[domain.TemplateID]mailTemplate{
	domain.TemplateClientResults: {
		subject: mustParse("client_results_subject", `Your {{.Company}} Deal Submission`),
		body: mustParse("client_results_body", `Hi {{.FirstName}},

Thank you for your submission. I'd like to provide you with two important documents which were built by our Project Optimization Modules for your review and consideration:

The first attachment is our "{{.Company}} Underwrite" document, which presents a hyper-critical analysis of your submitted project. We've specifically designed this analysis to mirror the scrutinizing perspective that potential investors would likely take when evaluating your deal. This thorough examination should provide valuable insights into how your project might be perceived by investment stakeholders.

Additionally, you'll find the "KIQ_1" document which contains essential questions for your team to address regarding the deal.

Once you've completed the KIQ (Key Investor Questions) worksheet, if you're interested in learning more about our services and potentially engaging with our full suite of Project Optimization Modules, we would be happy to schedule a call to discuss next steps.
{{if .Pending}}
Please note: part of the automated analysis is pending manual review. Our team will follow up with the completed documents shortly.
{{else}}
{{.Company}} Underwrite Analysis: {{.UnderwriteLink}}

Key Investor Questions (KIQ_1): {{.KIQLink}}
{{end}}
Best regards,

{{.SignatureName}} | {{.SignatureTitle}} | {{.Company}}
{{.Phone}}`),
	},

	domain.TemplateClientDuplicate: {
		subject: mustParse("client_duplicate_subject", `Duplicate Project Submission Detected - {{.Company}}`),
		body: mustParse("client_duplicate_body", `Dear {{.FirstName}},

We've detected that you've already submitted a project with this name. To maintain accurate records in our system, please submit each project only once.

If you believe this is an error or need to submit an updated version, please contact our support team at {{.SupportURL}}.

Best regards,

{{.Company}}`),
	},

	domain.TemplateInternalNewDeal: {
		subject: mustParse("internal_new_deal_subject", `NEW DEAL SUBMITTED`),
		body: mustParse("internal_new_deal_body", `New Deal Submission from: {{.Email}}

Project Name: {{.ProjectName}}

{{.Summary}}

Underwriting Report: {{.UnderwriteLink}}

KIQ's: {{.KIQLink}}

Project Folder: {{.ProjectLink}}`),
	},
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// Render produces the subject and body for a message template.
func Render(id domain.TemplateID, vars map[string]string) (subject, body string, err error) {
	t, ok := templates[id]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template: %s", id)
	}
	var sb, bb strings.Builder
	if err := t.subject.Execute(&sb, vars); err != nil {
		return "", "", fmt.Errorf("render subject %s: %w", id, err)
	}
	if err := t.body.Execute(&bb, vars); err != nil {
		return "", "", fmt.Errorf("render body %s: %w", id, err)
	}
	return sb.String(), bb.String(), nil
}
