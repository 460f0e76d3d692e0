package httpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/dealflow/internal/application/intake"
	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

// In-memory port implementations; the handler tests only need the workflow
// to run end to end, not to exercise adapter behavior.

type stubRegistry struct {
	records map[domain.ProjectKey]*domain.ProjectRecord
}

func (s *stubRegistry) Find(_ context.Context, key domain.ProjectKey) (*domain.ProjectRecord, error) {
	if rec, ok := s.records[key]; ok {
		return rec, nil
	}
	return nil, nil
}

func (s *stubRegistry) Reserve(_ context.Context, rec *domain.ProjectRecord) error {
	if _, ok := s.records[rec.Key]; ok {
		return domain.ErrDuplicateProject
	}
	s.records[rec.Key] = rec
	return nil
}

func (s *stubRegistry) Attach(_ context.Context, key domain.ProjectKey, folder, folderURL, marker string) error {
	return nil
}

func (s *stubRegistry) Release(_ context.Context, key domain.ProjectKey) error {
	delete(s.records, key)
	return nil
}

type stubOrganizer struct{}

func (stubOrganizer) CreateHierarchy(_ context.Context, key string) (*domain.FolderTree, error) {
	return &domain.FolderTree{
		Root:          key + "/",
		RootURL:       "http://files.local/deals/" + key + "/",
		PreUnderwrite: key + "/PRE-UNDERWRITE/",
		KIQ:           key + "/KIQ SUBMISSIONS/",
	}, nil
}

func (stubOrganizer) Store(_ context.Context, folder, name string, _ []byte) (domain.ArtifactRef, error) {
	return domain.ArtifactRef{Name: name, Key: folder + name, URL: "http://files.local/deals/" + folder + name}, nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, _ domain.Document) (string, error) {
	return "document text", nil
}

type stubGenerator struct{}

func (stubGenerator) GenerateReport(_ context.Context, _ string) (string, error) {
	return "1. LACK OF DURABLE COMPETITIVE ADVANTAGES\n\n2. INVESTOR RED FLAGS\n\nCONCLUSION\n\nRisky.", nil
}

func (stubGenerator) GenerateQuestions(_ context.Context, _ string) (string, error) {
	return "3. Who owns the IP?\nA:\n4. What is the burn rate?\nA:", nil
}

type stubNotifier struct{}

func (stubNotifier) Send(_ context.Context, _ domain.Message) error { return nil }

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func newTestHandler() http.Handler {
	svc := &intake.Service{
		Registry:  &stubRegistry{records: make(map[domain.ProjectKey]*domain.ProjectRecord)},
		Organizer: stubOrganizer{},
		Extractor: stubExtractor{},
		Generator: stubGenerator{},
		Notifier:  stubNotifier{},
		Clock:     stubClock{},
		Log:       zerolog.Nop(),
		Company:   "Vantage Capital",
		Internal:  []string{"team@vantage.example"},
	}
	return NewRouter(svc)
}

func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("document", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func submitFields() map[string]string {
	return map[string]string{
		"email":        "a@x.com",
		"first_name":   "Ada",
		"project_name": "Acme",
	}
}

func TestHandleSubmit(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	body, contentType := multipartBody(t, submitFields(), "notes.txt", []byte("pitch"))
	req := httptest.NewRequest(http.MethodPost, "/v1/intake/submissions", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var out domain.ProcessingOutcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, domain.OutcomeProcessed, out.Kind)
	assert.NotEmpty(t, out.SubmissionID)
	assert.NotEmpty(t, out.Questions)

	// outcome is retrievable afterwards
	req = httptest.NewRequest(http.MethodGet, "/v1/intake/submissions/"+string(out.SubmissionID), nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleSubmit_DuplicateProject(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	for i, wantKind := range []domain.OutcomeKind{domain.OutcomeProcessed, domain.OutcomeDuplicate} {
		body, contentType := multipartBody(t, submitFields(), "notes.txt", []byte("pitch"))
		req := httptest.NewRequest(http.MethodPost, "/v1/intake/submissions", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, "request %d", i)
		var out domain.ProcessingOutcome
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, wantKind, out.Kind, "request %d", i)
	}
}

func TestHandleSubmit_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(map[string]string)
		filename string
	}{
		{"bad email", func(f map[string]string) { f["email"] = "nope" }, "notes.txt"},
		{"empty project", func(f map[string]string) { f["project_name"] = "  " }, "notes.txt"},
		{"bad extension", func(f map[string]string) {}, "deck.exe"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newTestHandler()
			fields := submitFields()
			tc.mutate(fields)
			body, contentType := multipartBody(t, fields, tc.filename, []byte("pitch"))
			req := httptest.NewRequest(http.MethodPost, "/v1/intake/submissions", body)
			req.Header.Set("Content-Type", contentType)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandleSubmit_MissingDocument(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	body, contentType := multipartBody(t, submitFields(), "", nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/intake/submissions", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleJotform(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	payload := map[string]any{
		"submissionID": "jf-123",
		"created_at":   "2025-06-01 12:00:00",
		"answers": map[string]string{
			"Email":             "a@x.com",
			"Name - First Name": "Ada",
			"Project Name":      "Acme",
		},
		"document": map[string]string{
			"filename": "deck.txt",
			"content":  base64.StdEncoding.EncodeToString([]byte("pitch text")),
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/intake/webhook/jotform", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var out domain.ProcessingOutcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, domain.OutcomeProcessed, out.Kind)
	assert.Equal(t, domain.SubmissionID("jf-123"), out.SubmissionID)
}

func TestHandleJotform_BadEncoding(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	raw := []byte(`{"answers":{"Email":"a@x.com","Project Name":"Acme"},"document":{"filename":"deck.txt","content":"%%%not-base64%%%"}}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/intake/webhook/jotform", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleOutcome_NotFound(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/v1/intake/submissions/unknown", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
