package deals

import "context"

// FolderTree holds the handles of the provisioned hierarchy.
type FolderTree struct {
	Root          string `json:"root"`
	RootURL       string `json:"root_url"`
	PreUnderwrite string `json:"pre_underwrite"`
	KIQ           string `json:"kiq"`
}

// ArtifactRef points at a stored artifact.
type ArtifactRef struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	URL  string `json:"url"`
}

// Organizer port (interface for folder provisioning and artifact storage)
type Organizer interface {
	CreateHierarchy(ctx context.Context, key string) (*FolderTree, error)
	Store(ctx context.Context, folder, name string, content []byte) (ArtifactRef, error)
}

// Registry port (interface for the duplicate-detection index).
//
// Reserve must be atomic check-then-create: concurrent reservations for the
// same key see exactly one success and ErrDuplicateProject for the rest.
// Release only removes reservations that never got a folder attached.
type Registry interface {
	Find(ctx context.Context, key ProjectKey) (*ProjectRecord, error)
	Reserve(ctx context.Context, rec *ProjectRecord) error
	Attach(ctx context.Context, key ProjectKey, folder, folderURL, marker string) error
	Release(ctx context.Context, key ProjectKey) error
}

// Extractor port (interface for document text extraction)
type Extractor interface {
	Extract(ctx context.Context, doc Document) (string, error)
}

// Generator port (interface for AI text generation)
type Generator interface {
	GenerateReport(ctx context.Context, documentText string) (string, error)
	GenerateQuestions(ctx context.Context, reportText string) (string, error)
}

// TemplateID enumerates the notification templates.
type TemplateID string

const (
	TemplateClientResults   TemplateID = "client_results"
	TemplateClientDuplicate TemplateID = "client_duplicate"
	TemplateInternalNewDeal TemplateID = "internal_new_deal"
)

// Message is one templated notification.
type Message struct {
	To          []string
	Template    TemplateID
	Vars        map[string]string
	Attachments []ArtifactRef
}

// Notifier port (interface for templated message delivery)
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
