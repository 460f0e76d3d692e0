package deals

import "errors"

// ErrDuplicateProject is returned by the registry when a project with the
// same normalized (email, project name) key already exists. Not a true
// error: the coordinator maps it to the duplicate outcome.
var ErrDuplicateProject = errors.New("duplicate project submission")

// ErrStorageFailure indicates the storage organizer could not provision or
// write. Fatal only at the folder-provisioning step.
var ErrStorageFailure = errors.New("storage failure")

// Adapter failure kinds. The coordinator does not branch on these beyond
// abort-vs-degrade, but the kind is preserved in fallback markers.
var (
	ErrUnreadable     = errors.New("document unreadable")
	ErrUnsupported    = errors.New("document format unsupported")
	ErrServiceFailure = errors.New("external service failure")
	ErrTimeout        = errors.New("external call timed out")
)

// FailureKind reduces an adapter error to its taxonomy label for marker
// and log text.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrUnreadable):
		return "unreadable"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrServiceFailure):
		return "service_error"
	case errors.Is(err, ErrStorageFailure):
		return "storage_error"
	default:
		return "error"
	}
}
