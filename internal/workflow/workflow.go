// internal/workflow/workflow.go
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tara/internal/common/errors"
	"tara/internal/common/logger"
	"tara/internal/common/metrics"
	"tara/internal/intelligence"
	"tara/internal/models"
	"tara/internal/store"
)

// State enumerates the wizard's positions. All transitions go through the
// Workflow methods; no other combination is representable.
type State string

const (
	StateSelectDestination State = "SELECT_DESTINATION"
	StateAnsweringContext  State = "ANSWERING_CONTEXT"
	StateAwaitingBackend   State = "AWAITING_BACKEND"
	StateNeedsCitizenship  State = "NEEDS_CITIZENSHIP"
	StateFinalized         State = "FINALIZED"
	StateCancelled         State = "CANCELLED"
)

// Planner is the slice of the intelligence client the workflow needs.
type Planner interface {
	GetDetailedRequirements(ctx context.Context, country, appType string, profile models.UserProfile, travelCtx map[string]string) intelligence.Result
	GetApplicationResources(ctx context.Context, country, appType string, profile models.UserProfile, travelCtx map[string]string) intelligence.Result
	GetTravelAdvisory(ctx context.Context, country string, profile models.UserProfile) string
	CheckVisaFree(ctx context.Context, nationalities []string, destination string) (intelligence.VisaFreeStatus, error)
}

// Outcome is the result of a submission step: either a citizenship prompt
// to surface, or the finalized application.
type Outcome struct {
	NeedsCitizenship bool                `json:"needsCitizenship"`
	Prompt           string              `json:"prompt,omitempty"`
	Application      *models.Application `json:"application,omitempty"`
}

// draft carries the partial results retained while the wizard waits for a
// citizenship answer. The advisory is reused on retry; the rest is
// re-fetched.
type draft struct {
	app       models.Application
	resources intelligence.Fulfilled
	advisory  string
	prompt    string
}

// Workflow is the goal-creation state machine for the single local user.
// One wizard session exists at a time; callers serialize access (the HTTP
// layer holds a session mutex).
type Workflow struct {
	planner   Planner
	repo      *store.Repository
	questions QuestionProvider
	logger    logger.Logger

	state   State
	country string
	appType models.ApplicationType
	pending *draft
	attempt uint64 // bumped per submission; stale responses are discarded
}

func New(planner Planner, repo *store.Repository, questions QuestionProvider, log logger.Logger) *Workflow {
	if questions == nil {
		questions = StaticQuestions{}
	}
	return &Workflow{
		planner:   planner,
		repo:      repo,
		questions: questions,
		logger:    log,
		state:     StateSelectDestination,
	}
}

// State reports the wizard's current position.
func (w *Workflow) State() State {
	return w.state
}

// Start begins a new wizard session for the chosen destination and type.
// A finished or cancelled session may be restarted; an in-flight one may
// not.
func (w *Workflow) Start(country string, appType models.ApplicationType) error {
	switch w.state {
	case StateSelectDestination, StateFinalized, StateCancelled:
	default:
		return errors.NewWorkflowStateError(fmt.Sprintf("cannot start from %s", w.state))
	}
	if country == "" {
		return errors.NewUserInputError("destination is required", "")
	}

	w.state = StateAnsweringContext
	w.country = country
	w.appType = appType
	w.pending = nil
	return nil
}

// Questions returns the contextual questions for the session's destination.
func (w *Workflow) Questions() ([]Question, error) {
	if w.state != StateAnsweringContext {
		return nil, errors.NewWorkflowStateError(fmt.Sprintf("no questions in %s", w.state))
	}
	return w.questions.Questions(w.country, w.appType), nil
}

// SubmitAnswers runs the backend negotiation: visa-free check first, then
// requirements, resources and advisory concurrently. It either finalizes
// the application or suspends on a citizenship prompt. Any check failure
// returns the wizard to the answering step with nothing persisted.
func (w *Workflow) SubmitAnswers(ctx context.Context, answers map[string]string) (Outcome, error) {
	if w.state != StateAnsweringContext {
		return Outcome{}, errors.NewWorkflowStateError(fmt.Sprintf("cannot submit answers in %s", w.state))
	}

	w.state = StateAwaitingBackend
	w.attempt++
	epoch := w.attempt

	profile, err := w.repo.Profile(ctx)
	if err != nil {
		w.state = StateAnsweringContext
		return Outcome{}, errors.NewStoreUnavailableError(store.KeyProfile, err)
	}

	travelCtx := w.buildTravelContext(answers, profile)

	visaFree, err := w.planner.CheckVisaFree(ctx, profile.NationalityNames(), w.country)
	if err != nil {
		w.restoreAnswering(epoch)
		return Outcome{}, errors.NewVisaFreeCheckError(err)
	}

	app := w.newDraftApplication(visaFree, travelCtx)

	var (
		reqRes   intelligence.Result
		resRes   intelligence.Result
		advisory string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reqRes = w.planner.GetDetailedRequirements(gctx, w.country, string(w.appType), profile, travelCtx)
		return gctx.Err()
	})
	g.Go(func() error {
		resRes = w.planner.GetApplicationResources(gctx, w.country, string(w.appType), profile, travelCtx)
		return gctx.Err()
	})
	g.Go(func() error {
		advisory = w.planner.GetTravelAdvisory(gctx, w.country, profile)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		w.restoreAnswering(epoch)
		return Outcome{}, errors.NewWorkflowAbortedError(err)
	}

	if w.attempt != epoch {
		// a newer submission superseded this one; discard silently
		return Outcome{}, errors.NewWorkflowStateError("submission superseded")
	}

	if reqRes.NeedsCitizenship() {
		w.state = StateNeedsCitizenship
		w.pending = &draft{
			app:       app,
			resources: resRes.Fulfilled,
			advisory:  advisory,
			prompt:    reqRes.Incomplete.Prompt,
		}
		metrics.WorkflowOutcomes.WithLabelValues("needs_citizenship").Inc()
		return Outcome{NeedsCitizenship: true, Prompt: reqRes.Incomplete.Prompt}, nil
	}

	final, err := w.finalize(ctx, app, reqRes.Fulfilled, resRes.Fulfilled, advisory)
	if err != nil {
		w.restoreAnswering(epoch)
		return Outcome{}, err
	}
	return Outcome{Application: &final}, nil
}

// ProvideCitizenship resolves a suspended session. The chosen citizenship
// replaces the stored profile's nationality list, then requirements and
// resources are re-issued; the draft's advisory is reused. A second
// citizenship prompt abandons the session.
func (w *Workflow) ProvideCitizenship(ctx context.Context, country string) (Outcome, error) {
	if w.state != StateNeedsCitizenship || w.pending == nil {
		return Outcome{}, errors.NewWorkflowStateError(fmt.Sprintf("no citizenship pending in %s", w.state))
	}
	if country == "" {
		return Outcome{}, errors.NewUserInputError("citizenship is required", "")
	}
	entry, ok := models.CountryByName(country)
	if !ok {
		return Outcome{}, errors.NewUserInputError("unknown country", country)
	}

	profile, err := w.repo.Profile(ctx)
	if err != nil {
		return Outcome{}, errors.NewStoreUnavailableError(store.KeyProfile, err)
	}
	profile = profile.WithCitizenship(entry.Name, entry.Code)
	if err := w.repo.SaveProfile(ctx, profile); err != nil {
		return Outcome{}, errors.NewStoreUnavailableError(store.KeyProfile, err)
	}

	d := w.pending
	travelCtx := d.app.TravelContext

	var reqRes, resRes intelligence.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reqRes = w.planner.GetDetailedRequirements(gctx, w.country, string(w.appType), profile, travelCtx)
		return gctx.Err()
	})
	g.Go(func() error {
		resRes = w.planner.GetApplicationResources(gctx, w.country, string(w.appType), profile, travelCtx)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Outcome{}, errors.NewWorkflowAbortedError(err)
	}

	if reqRes.NeedsCitizenship() {
		// the service asked twice; abandon rather than loop
		w.reset(StateSelectDestination)
		metrics.WorkflowOutcomes.WithLabelValues("aborted").Inc()
		return Outcome{}, errors.NewWorkflowAbortedError(fmt.Errorf("service requested citizenship again"))
	}

	final, err := w.finalize(ctx, d.app, reqRes.Fulfilled, resRes.Fulfilled, d.advisory)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Application: &final}, nil
}

// Cancel abandons the session and discards any draft. Only interactive
// states may cancel.
func (w *Workflow) Cancel() error {
	switch w.state {
	case StateSelectDestination, StateAnsweringContext, StateNeedsCitizenship:
		w.reset(StateCancelled)
		metrics.WorkflowOutcomes.WithLabelValues("cancelled").Inc()
		return nil
	default:
		return errors.NewWorkflowStateError(fmt.Sprintf("cannot cancel from %s", w.state))
	}
}

// PendingPrompt returns the citizenship prompt of a suspended session.
func (w *Workflow) PendingPrompt() string {
	if w.pending == nil {
		return ""
	}
	return w.pending.prompt
}

// buildTravelContext merges the user's answers with the documented
// defaults for unanswered keys.
func (w *Workflow) buildTravelContext(answers map[string]string, profile models.UserProfile) map[string]string {
	travelCtx := make(map[string]string, len(answers)+3)
	for k, v := range answers {
		if v != "" {
			travelCtx[k] = v
		}
	}

	if travelCtx["reason"] == "" {
		if w.appType == models.TypeAsylum {
			travelCtx["reason"] = "Protection"
		} else {
			travelCtx["reason"] = "Relocation"
		}
	}
	if travelCtx["duration"] == "" {
		travelCtx["duration"] = "12+ months"
	}
	if travelCtx["occupation"] == "" {
		if profile.Occupation != "" {
			travelCtx["occupation"] = profile.Occupation
		} else {
			travelCtx["occupation"] = "Professional"
		}
	}
	return travelCtx
}

func (w *Workflow) newDraftApplication(visaFree intelligence.VisaFreeStatus, travelCtx map[string]string) models.Application {
	app := models.Application{
		ID:            uuid.New().String(),
		Title:         fmt.Sprintf("%s (%s)", w.appType, w.country),
		Country:       w.country,
		Type:          w.appType,
		Status:        models.StatusNotStarted,
		Progress:      0,
		LastUpdated:   time.Now().Format("2006-01-02"),
		TravelContext: travelCtx,
	}
	if visaFree.IsVisaFree {
		app.Status = models.StatusVisaFree
		app.Progress = 100
		app.IsVisaFree = true
		app.VisaFreeDuration = visaFree.Duration
	}
	return app
}

// finalize fills the application from the latest responses, appends it to
// the stored collection and closes the session.
func (w *Workflow) finalize(ctx context.Context, app models.Application, req, res intelligence.Fulfilled, advisory string) (models.Application, error) {
	app.RequiredDocs = emptyIfNil(req.Documents)
	app.Steps = req.Steps
	if app.Steps == nil {
		app.Steps = []models.ApplicationStep{}
	}
	app.Forms = res.Forms
	if app.Forms == nil {
		app.Forms = []models.ApplicationForm{}
	}
	app.SubmissionPoints = res.SubmissionPoints
	if app.SubmissionPoints == nil {
		app.SubmissionPoints = []models.SubmissionPoint{}
	}
	app.Advisory = advisory

	apps, err := w.repo.Applications(ctx)
	if err != nil {
		return models.Application{}, errors.NewStoreUnavailableError(store.KeyApplications, err)
	}
	apps = append(apps, app)
	if err := w.repo.SaveApplications(ctx, apps); err != nil {
		return models.Application{}, errors.NewStoreUnavailableError(store.KeyApplications, err)
	}

	w.reset(StateFinalized)
	metrics.WorkflowOutcomes.WithLabelValues("finalized").Inc()
	w.logger.Info("goal created", map[string]interface{}{
		"application_id": app.ID,
		"country":        app.Country,
		"type":           string(app.Type),
	})
	return app, nil
}

// restoreAnswering returns the wizard to the answering step after a failed
// attempt, unless a newer submission has already taken over.
func (w *Workflow) restoreAnswering(epoch uint64) {
	if w.attempt == epoch && w.state == StateAwaitingBackend {
		w.state = StateAnsweringContext
	}
}

func (w *Workflow) reset(to State) {
	w.state = to
	w.pending = nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
