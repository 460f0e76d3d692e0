package deals

import (
	"fmt"
	"strings"
	"time"
)

// SubmissionID identifier type
type SubmissionID string

// Document is the single source document attached to a submission.
type Document struct {
	Filename string
	Content  []byte
}

// Ext returns the lowercase file extension including the dot.
func (d Document) Ext() string {
	i := strings.LastIndex(d.Filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(d.Filename[i:])
}

// Submission is one deal intake request. Immutable once created; one
// submission maps to exactly one workflow run.
type Submission struct {
	ID          SubmissionID `json:"id"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	ProjectName string       `json:"project_name"`
	Document    Document     `json:"-"`
	ReceivedAt  time.Time    `json:"received_at"`
}

// FolderName is the display key the folder hierarchy is created under.
func (s Submission) FolderName() string {
	return fmt.Sprintf("%s - %s", strings.TrimSpace(s.Email), strings.TrimSpace(s.ProjectName))
}

// ProjectKey is the normalized (email, project name) pair used for
// duplicate detection. Email is lowercased and trimmed; project names
// compare case-insensitively.
type ProjectKey struct {
	Email       string `json:"email"`
	ProjectName string `json:"project_name"`
}

// NewProjectKey normalizes raw submission fields into a dedup key.
func NewProjectKey(email, projectName string) ProjectKey {
	return ProjectKey{
		Email:       strings.ToLower(strings.TrimSpace(email)),
		ProjectName: strings.ToLower(strings.TrimSpace(projectName)),
	}
}

// ProjectRecord is the durable artifact of a processed submission.
// At most one record exists per ProjectKey; the registry enforces this
// with a conditional create.
type ProjectRecord struct {
	Key       ProjectKey `json:"key"`
	Folder    string     `json:"folder,omitempty"`
	FolderURL string     `json:"folder_url,omitempty"`
	Marker    string     `json:"marker,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// OutcomeKind enum
type OutcomeKind string

const (
	OutcomeProcessed OutcomeKind = "processed"
	OutcomeDuplicate OutcomeKind = "duplicate"
	OutcomeFailed    OutcomeKind = "failed"
)

// ProcessingOutcome is the sole externally observable result of one
// workflow run.
type ProcessingOutcome struct {
	SubmissionID SubmissionID   `json:"submission_id"`
	Kind         OutcomeKind    `json:"kind"`
	Record       *ProjectRecord `json:"record,omitempty"`
	Report       string         `json:"report,omitempty"`
	Questions    string         `json:"questions,omitempty"`
	Degraded     bool           `json:"degraded,omitempty"`
	Markers      []string       `json:"markers,omitempty"`
	Error        string         `json:"error,omitempty"`
}
