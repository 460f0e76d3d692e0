package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bryanwahyu/dealflow/internal/application/intake"
	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
	"github.com/bryanwahyu/dealflow/internal/middleware"
)

// maxDocumentSize bounds the uploaded source document (32 MiB).
const maxDocumentSize = 32 << 20

var errBadRequest = errors.New("bad request")

// Router exposes the intake workflow over HTTP. Outcomes are kept
// in-memory for the life of the process so a webhook caller can re-read
// the result of a submission it just posted.
type Router struct {
	svc *intake.Service

	mu       sync.RWMutex
	outcomes map[domain.SubmissionID]domain.ProcessingOutcome
}

func NewRouter(svc *intake.Service) http.Handler {
	r := &Router{svc: svc, outcomes: make(map[domain.SubmissionID]domain.ProcessingOutcome)}
	mux := chi.NewRouter()

	mux.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/v1/intake", func(rt chi.Router) {
		rt.Post("/submissions", r.wrap(r.handleSubmit))
		rt.Post("/webhook/jotform", r.wrap(r.handleJotform))
		rt.Get("/submissions/{id}", r.wrap(r.handleOutcome))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, errBadRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /v1/intake/submissions
// Multipart form: email, first_name, project_name, document (file).
func (r *Router) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxDocumentSize); err != nil {
		return fmt.Errorf("%w: invalid multipart form: %v", errBadRequest, err)
	}

	sub := domain.Submission{
		Email:       middleware.SanitizeString(req.FormValue("email")),
		FirstName:   middleware.SanitizeString(req.FormValue("first_name")),
		ProjectName: middleware.SanitizeString(req.FormValue("project_name")),
	}

	file, header, err := req.FormFile("document")
	if err != nil {
		return fmt.Errorf("%w: document file is required", errBadRequest)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("%w: could not read document: %v", errBadRequest, err)
	}
	sub.Document = domain.Document{Filename: header.Filename, Content: content}

	return r.process(w, req, sub)
}

// jotformWebhook is the payload shape of the form vendor's webhook, mapped
// onto the same Submission as the direct endpoint.
type jotformWebhook struct {
	SubmissionID string            `json:"submissionID"`
	CreatedAt    string            `json:"created_at"`
	Answers      map[string]string `json:"answers"`
	Document     struct {
		Filename string `json:"filename"`
		Content  string `json:"content"`
	} `json:"document"`
}

// POST /v1/intake/webhook/jotform
func (r *Router) handleJotform(w http.ResponseWriter, req *http.Request) error {
	var body jotformWebhook
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxDocumentSize)).Decode(&body); err != nil {
		return fmt.Errorf("%w: invalid webhook payload: %v", errBadRequest, err)
	}

	content, err := base64.StdEncoding.DecodeString(body.Document.Content)
	if err != nil {
		return fmt.Errorf("%w: invalid document encoding: %v", errBadRequest, err)
	}

	sub := domain.Submission{
		Email:       middleware.SanitizeString(body.Answers["Email"]),
		FirstName:   middleware.SanitizeString(body.Answers["Name - First Name"]),
		ProjectName: middleware.SanitizeString(body.Answers["Project Name"]),
		Document:    domain.Document{Filename: body.Document.Filename, Content: content},
	}
	if body.SubmissionID != "" {
		sub.ID = domain.SubmissionID(body.SubmissionID)
	}

	return r.process(w, req, sub)
}

// GET /v1/intake/submissions/{id}
func (r *Router) handleOutcome(w http.ResponseWriter, req *http.Request) error {
	id := domain.SubmissionID(chi.URLParam(req, "id"))
	r.mu.RLock()
	out, ok := r.outcomes[id]
	r.mu.RUnlock()
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return nil
	}
	return writeJSON(w, http.StatusOK, out)
}

func (r *Router) process(w http.ResponseWriter, req *http.Request, sub domain.Submission) error {
	if err := middleware.ValidateEmail(sub.Email); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := middleware.ValidateProjectName(sub.ProjectName); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := middleware.ValidateDocumentFilename(sub.Document.Filename); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	if sub.ID == "" {
		sub.ID = domain.SubmissionID(uuid.New().String())
	}
	sub.ReceivedAt = time.Now()

	middleware.CountSubmission()
	out := r.svc.Process(req.Context(), sub)
	middleware.CountOutcome(string(out.Kind), out.Degraded)

	r.mu.Lock()
	r.outcomes[sub.ID] = out
	r.mu.Unlock()

	status := http.StatusOK
	if out.Kind == domain.OutcomeFailed {
		status = http.StatusBadGateway
	}
	return writeJSON(w, status, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
