package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/dealflow/internal/application"
	"github.com/bryanwahyu/dealflow/internal/domain/analysis"
	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

// Service implements the deal-intake workflow coordinator.
// One call to Process is one strictly sequential run; safety across
// concurrent runs for the same project rests on Registry.Reserve being a
// conditional create, not on any in-process locking here.
type Service struct {
	Registry  domain.Registry
	Organizer domain.Organizer
	Extractor domain.Extractor
	Generator domain.Generator
	Notifier  domain.Notifier
	Clock     application.Clock
	Log       zerolog.Logger

	Company    string
	SupportURL string
	Internal   []string
	Signature  Signature
}

// Signature is the sender block appended to client mail.
type Signature struct {
	Name  string
	Title string
	Phone string
}

// Names of the stored artifacts inside the hierarchy.
const (
	kiqArtifactName = "KIQ_1 Questions"
)

// Process runs one submission through the workflow:
//
//	DuplicateCheck -> FolderProvisioning -> Ingestion -> Extraction ->
//	Generation -> ArtifactStorage -> ClientNotify -> InternalNotify
//
// Only duplicate detection and folder provisioning may short-circuit.
// Every later step degrades instead of aborting: once a folder exists the
// requester always receives a response.
func (s *Service) Process(ctx context.Context, sub domain.Submission) domain.ProcessingOutcome {
	out := domain.ProcessingOutcome{SubmissionID: sub.ID}
	log := s.Log.With().
		Str("submission_id", string(sub.ID)).
		Str("project", sub.ProjectName).
		Logger()

	key := domain.NewProjectKey(sub.Email, sub.ProjectName)

	// 1. Duplicate check, strictly before any resource creation.
	existing, err := s.Registry.Find(ctx, key)
	if err != nil {
		// A broken lookup must not block intake; the conditional create
		// below still guarantees at most one record per key.
		log.Warn().Err(err).Msg("duplicate lookup failed, continuing")
	}
	if existing != nil {
		return s.duplicate(ctx, log, sub, key, existing, out)
	}

	// 2. Folder provisioning. The reservation row carries the unique key,
	// so check-then-create is atomic even across processes.
	rec := &domain.ProjectRecord{Key: key, CreatedAt: s.Clock.Now()}
	if err := s.Registry.Reserve(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateProject) {
			// Lost the race to a concurrent run for the same key.
			return s.duplicate(ctx, log, sub, key, nil, out)
		}
		log.Error().Err(err).Msg("project record reservation failed")
		out.Kind = domain.OutcomeFailed
		out.Error = fmt.Sprintf("reserve project record: %v", err)
		return out
	}

	tree, err := s.Organizer.CreateHierarchy(ctx, sub.FolderName())
	if err != nil {
		// Release the reservation so a retry may attempt provisioning again.
		if rerr := s.Registry.Release(ctx, key); rerr != nil {
			log.Warn().Err(rerr).Msg("failed to release reservation")
		}
		log.Error().Err(err).Msg("folder provisioning failed")
		out.Kind = domain.OutcomeFailed
		out.Error = fmt.Sprintf("provision folder hierarchy: %v", err)
		return out
	}
	log.Info().Str("folder", tree.Root).Msg("project hierarchy provisioned")

	var markers []string
	degrade := func(step string, err error) {
		marker := fmt.Sprintf("manual review required: %s failed (%s)", step, domain.FailureKind(err))
		markers = append(markers, marker)
		log.Warn().Err(err).Str("step", step).Msg("continuing in degraded mode")
	}

	// 3. Document ingestion.
	var textErr error
	ingested := false
	originalName := fmt.Sprintf("%s - Original%s", sub.FolderName(), sub.Document.Ext())
	if _, err := s.Organizer.Store(ctx, tree.PreUnderwrite, originalName, sub.Document.Content); err != nil {
		degrade("document upload", err)
		textErr = err
	} else {
		ingested = true
	}

	// 4. Text extraction, skipped when ingestion already degraded.
	text := ""
	if ingested {
		text, err = s.Extractor.Extract(ctx, sub.Document)
		if err != nil {
			degrade("text extraction", err)
			textErr = err
			text = ""
		} else if strings.TrimSpace(text) == "" {
			degrade("text extraction", domain.ErrUnreadable)
			textErr = domain.ErrUnreadable
			text = ""
		}
	}

	// 5. Analysis generation. The two calls degrade independently; the
	// question call runs against whatever report text exists, fallback
	// included.
	var res analysis.Result
	if text != "" {
		report, err := s.Generator.GenerateReport(ctx, text)
		if err != nil {
			degrade("report generation", err)
			res.Report = analysis.FallbackReport(domain.FailureKind(err))
			res.DegradedReport = true
		} else {
			res.Report = report
		}

		raw, err := s.Generator.GenerateQuestions(ctx, res.Report)
		if err != nil {
			degrade("question generation", err)
			res.Questions = analysis.FallbackQuestionSet()
			res.DegradedQuestions = true
		} else {
			res.Questions = analysis.BuildQuestionSet(analysis.ParseQuestions(raw))
		}
	} else {
		reason := "document text unavailable"
		if textErr != nil {
			reason = domain.FailureKind(textErr)
		}
		res.Report = analysis.FallbackReport(reason)
		res.Questions = analysis.FallbackQuestionSet()
		res.DegradedReport = true
		res.DegradedQuestions = true
	}

	// 6. Artifact storage.
	var reportRef, kiqRef domain.ArtifactRef
	reportName := fmt.Sprintf("%s - %s Underwrite", sub.FolderName(), s.Company)
	if reportRef, err = s.Organizer.Store(ctx, tree.PreUnderwrite, reportName, []byte(res.Report)); err != nil {
		degrade("report storage", err)
	}
	if kiqRef, err = s.Organizer.Store(ctx, tree.KIQ, kiqArtifactName, []byte(res.Questions.Render())); err != nil {
		degrade("question storage", err)
	}

	pending := res.DegradedReport || res.DegradedQuestions || reportRef.URL == "" || kiqRef.URL == ""

	// 7. Client notification.
	vars := s.clientVars(sub)
	vars["UnderwriteLink"] = reportRef.URL
	vars["KIQLink"] = kiqRef.URL
	if pending {
		vars["Pending"] = "1"
	}
	var attachments []domain.ArtifactRef
	for _, ref := range []domain.ArtifactRef{reportRef, kiqRef} {
		if ref.URL != "" {
			attachments = append(attachments, ref)
		}
	}
	s.notify(ctx, log, domain.Message{
		To:          []string{sub.Email},
		Template:    domain.TemplateClientResults,
		Vars:        vars,
		Attachments: attachments,
	})

	// 8. Internal notification.
	s.notify(ctx, log, domain.Message{
		To:       s.Internal,
		Template: domain.TemplateInternalNewDeal,
		Vars: map[string]string{
			"Email":          sub.Email,
			"ProjectName":    sub.ProjectName,
			"ProjectLink":    tree.RootURL,
			"UnderwriteLink": reportRef.URL,
			"KIQLink":        kiqRef.URL,
			"Summary":        s.summaryLine(sub, markers),
		},
	})

	// 9. Commit the record and return.
	marker := strings.Join(markers, "; ")
	if err := s.Registry.Attach(ctx, key, tree.Root, tree.RootURL, marker); err != nil {
		log.Warn().Err(err).Msg("failed to attach folder to project record")
	}
	rec.Folder = tree.Root
	rec.FolderURL = tree.RootURL
	rec.Marker = marker

	log.Info().Bool("degraded", len(markers) > 0).Msg("submission processed")

	out.Kind = domain.OutcomeProcessed
	out.Record = rec
	out.Report = res.Report
	out.Questions = res.Questions.Render()
	out.Degraded = len(markers) > 0
	out.Markers = markers
	return out
}

// duplicate finishes a run on the duplicate path: a polite notice is the one
// side effect permitted before returning.
func (s *Service) duplicate(ctx context.Context, log zerolog.Logger, sub domain.Submission, key domain.ProjectKey, rec *domain.ProjectRecord, out domain.ProcessingOutcome) domain.ProcessingOutcome {
	log.Info().Msg("duplicate submission detected")
	if rec == nil {
		rec, _ = s.Registry.Find(ctx, key)
	}
	s.notify(ctx, log, domain.Message{
		To:       []string{sub.Email},
		Template: domain.TemplateClientDuplicate,
		Vars:     s.clientVars(sub),
	})
	out.Kind = domain.OutcomeDuplicate
	out.Record = rec
	return out
}

// notify sends best-effort: delivery failures are logged and never change
// the run's outcome kind.
func (s *Service) notify(ctx context.Context, log zerolog.Logger, msg domain.Message) {
	if err := s.Notifier.Send(ctx, msg); err != nil {
		log.Warn().Err(err).Str("template", string(msg.Template)).Msg("notification send failed")
	}
}

func (s *Service) clientVars(sub domain.Submission) map[string]string {
	return map[string]string{
		"FirstName":      sub.FirstName,
		"ProjectName":    sub.ProjectName,
		"Company":        s.Company,
		"SupportURL":     s.SupportURL,
		"SignatureName":  s.Signature.Name,
		"SignatureTitle": s.Signature.Title,
		"Phone":          s.Signature.Phone,
	}
}

func (s *Service) summaryLine(sub domain.Submission, markers []string) string {
	if len(markers) > 0 {
		return fmt.Sprintf("New deal %q from %s processed in degraded mode: %s", sub.ProjectName, sub.Email, strings.Join(markers, "; "))
	}
	return fmt.Sprintf("New deal %q from %s processed.", sub.ProjectName, sub.Email)
}
