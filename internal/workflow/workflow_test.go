// internal/workflow/workflow_test.go
package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tara/internal/common/logger"
	"tara/internal/intelligence"
	"tara/internal/models"
	"tara/internal/store"
)

// stubPlanner scripts the intelligence responses and records the profiles
// each call was issued with.
type stubPlanner struct {
	requirements func(profile models.UserProfile) intelligence.Result
	resources    intelligence.Result
	advisory     string
	visaFree     intelligence.VisaFreeStatus
	visaFreeErr  error

	visaFreeNationalities [][]string
	requirementProfiles   []models.UserProfile
}

func (s *stubPlanner) GetDetailedRequirements(ctx context.Context, country, appType string, profile models.UserProfile, travelCtx map[string]string) intelligence.Result {
	s.requirementProfiles = append(s.requirementProfiles, profile)
	if s.requirements != nil {
		return s.requirements(profile)
	}
	return intelligence.Result{Fulfilled: intelligence.Fulfilled{
		Documents: []string{"Passport"},
		Steps:     []models.ApplicationStep{{ID: "1", Text: "Apply"}},
	}}
}

func (s *stubPlanner) GetApplicationResources(ctx context.Context, country, appType string, profile models.UserProfile, travelCtx map[string]string) intelligence.Result {
	return s.resources
}

func (s *stubPlanner) GetTravelAdvisory(ctx context.Context, country string, profile models.UserProfile) string {
	if s.advisory != "" {
		return s.advisory
	}
	return intelligence.FallbackAdvisory
}

func (s *stubPlanner) CheckVisaFree(ctx context.Context, nationalities []string, destination string) (intelligence.VisaFreeStatus, error) {
	s.visaFreeNationalities = append(s.visaFreeNationalities, nationalities)
	return s.visaFree, s.visaFreeErr
}

func newTestWorkflow(t *testing.T, planner Planner) (*Workflow, *store.Repository) {
	t.Helper()
	repo := store.NewRepository(store.NewMemoryStore())
	return New(planner, repo, nil, logger.NewTestLogger(t)), repo
}

func TestStartGuards(t *testing.T) {
	w, _ := newTestWorkflow(t, &stubPlanner{})

	require.Error(t, w.Start("", models.TypeVisa), "empty destination is rejected")
	require.NoError(t, w.Start("Portugal", models.TypeVisa))
	assert.Equal(t, StateAnsweringContext, w.State())

	// cannot start over mid-session
	require.Error(t, w.Start("Germany", models.TypeVisa))
}

func TestQuestionsDefaultPair(t *testing.T) {
	w, _ := newTestWorkflow(t, &stubPlanner{})
	require.NoError(t, w.Start("Portugal", models.TypeVisa))

	qs, err := w.Questions()
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "reason", qs[0].Key)
	assert.Equal(t, "duration", qs[1].Key)
}

func TestSubmitAnswersKnownCitizenshipNotVisaFree(t *testing.T) {
	// destination Portugal, citizenship on file, service says not visa-free
	planner := &stubPlanner{}
	w, repo := newTestWorkflow(t, planner)
	ctx := context.Background()

	profile := models.DefaultProfile().WithCitizenship("USA", "US")
	require.NoError(t, repo.SaveProfile(ctx, profile))

	require.NoError(t, w.Start("Portugal", models.TypeVisa))
	out, err := w.SubmitAnswers(ctx, map[string]string{"reason": "Work"})
	require.NoError(t, err)

	require.Len(t, planner.visaFreeNationalities, 1)
	assert.Equal(t, []string{"USA"}, planner.visaFreeNationalities[0])

	require.NotNil(t, out.Application)
	assert.Equal(t, models.StatusNotStarted, out.Application.Status)
	assert.Equal(t, 0, out.Application.Progress)
	assert.Equal(t, "Visa (Portugal)", out.Application.Title)
	assert.Equal(t, StateFinalized, w.State())

	apps, err := repo.Applications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, out.Application.ID, apps[0].ID)
}

func TestSubmitAnswersVisaFree(t *testing.T) {
	planner := &stubPlanner{
		visaFree: intelligence.VisaFreeStatus{IsVisaFree: true, Duration: "90 days"},
	}
	w, repo := newTestWorkflow(t, planner)
	ctx := context.Background()

	require.NoError(t, repo.SaveProfile(ctx, models.DefaultProfile().WithCitizenship("USA", "US")))
	require.NoError(t, w.Start("Portugal", models.TypeVisa))

	out, err := w.SubmitAnswers(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, out.Application)
	assert.Equal(t, models.StatusVisaFree, out.Application.Status)
	assert.Equal(t, 100, out.Application.Progress)
	assert.Equal(t, "90 days", out.Application.VisaFreeDuration)
}

func TestSubmitAnswersContextDefaults(t *testing.T) {
	t.Run("asylum defaults to protection", func(t *testing.T) {
		planner := &stubPlanner{}
		w, _ := newTestWorkflow(t, planner)
		ctx := context.Background()

		require.NoError(t, w.Start("Germany", models.TypeAsylum))
		out, err := w.SubmitAnswers(ctx, nil)
		require.NoError(t, err)

		tc := out.Application.TravelContext
		assert.Equal(t, "Protection", tc["reason"])
		assert.Equal(t, "12+ months", tc["duration"])
		assert.Equal(t, "Professional", tc["occupation"])
	})

	t.Run("profile occupation wins over default", func(t *testing.T) {
		planner := &stubPlanner{}
		w, repo := newTestWorkflow(t, planner)
		ctx := context.Background()

		p := models.DefaultProfile()
		p.Occupation = "Engineer"
		require.NoError(t, repo.SaveProfile(ctx, p))

		require.NoError(t, w.Start("Germany", models.TypeWorkPermit))
		out, err := w.SubmitAnswers(ctx, map[string]string{"duration": "6 months"})
		require.NoError(t, err)

		tc := out.Application.TravelContext
		assert.Equal(t, "Relocation", tc["reason"])
		assert.Equal(t, "6 months", tc["duration"])
		assert.Equal(t, "Engineer", tc["occupation"])
	})
}

func TestVisaFreeCheckFailureAbortsAttempt(t *testing.T) {
	planner := &stubPlanner{visaFreeErr: errors.New("service unreachable")}
	w, repo := newTestWorkflow(t, planner)
	ctx := context.Background()

	require.NoError(t, w.Start("Portugal", models.TypeVisa))
	_, err := w.SubmitAnswers(ctx, nil)
	require.Error(t, err)

	// back to answering, nothing persisted
	assert.Equal(t, StateAnsweringContext, w.State())
	apps, err := repo.Applications(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestCitizenshipNegotiation(t *testing.T) {
	// citizenship unknown; first requirements call suspends, retry succeeds
	planner := &stubPlanner{
		requirements: func(profile models.UserProfile) intelligence.Result {
			if len(profile.Nationalities) == 0 {
				return intelligence.Result{Incomplete: &intelligence.Incomplete{
					AwaitingField: intelligence.AwaitingCitizenship,
					Prompt:        "We need your citizenship",
				}}
			}
			return intelligence.Result{Fulfilled: intelligence.Fulfilled{
				Documents: []string{"Passport", "Visa Form"},
			}}
		},
	}
	w, repo := newTestWorkflow(t, planner)
	ctx := context.Background()

	require.NoError(t, w.Start("Portugal", models.TypeVisa))
	out, err := w.SubmitAnswers(ctx, nil)
	require.NoError(t, err)

	assert.True(t, out.NeedsCitizenship)
	assert.Equal(t, "We need your citizenship", out.Prompt)
	assert.Equal(t, StateNeedsCitizenship, w.State())
	assert.Equal(t, "We need your citizenship", w.PendingPrompt())

	// nothing appended while suspended
	apps, err := repo.Applications(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	out, err = w.ProvideCitizenship(ctx, "Germany")
	require.NoError(t, err)
	require.NotNil(t, out.Application)
	assert.Equal(t, StateFinalized, w.State())

	// the retry carried the chosen citizenship
	last := planner.requirementProfiles[len(planner.requirementProfiles)-1]
	require.Len(t, last.Nationalities, 1)
	assert.Equal(t, models.Nationality{Country: "Germany", Code: "DE"}, last.Nationalities[0])

	// stored profile updated to exactly that nationality
	profile, err := repo.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Nationality{{Country: "Germany", Code: "DE"}}, profile.Nationalities)

	apps, err = repo.Applications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, []string{"Passport", "Visa Form"}, apps[0].RequiredDocs)
}

func TestRepeatedIncompleteAbandonsSession(t *testing.T) {
	planner := &stubPlanner{
		requirements: func(models.UserProfile) intelligence.Result {
			return intelligence.Result{Incomplete: &intelligence.Incomplete{
				AwaitingField: intelligence.AwaitingCitizenship,
				Prompt:        "We need your citizenship",
			}}
		},
	}
	w, repo := newTestWorkflow(t, planner)
	ctx := context.Background()

	require.NoError(t, w.Start("Portugal", models.TypeVisa))
	_, err := w.SubmitAnswers(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, StateNeedsCitizenship, w.State())

	_, err = w.ProvideCitizenship(ctx, "Germany")
	require.Error(t, err)
	assert.Equal(t, StateSelectDestination, w.State())

	apps, err := repo.Applications(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestProvideCitizenshipValidation(t *testing.T) {
	planner := &stubPlanner{
		requirements: func(models.UserProfile) intelligence.Result {
			return intelligence.Result{Incomplete: &intelligence.Incomplete{
				AwaitingField: intelligence.AwaitingCitizenship,
				Prompt:        "We need your citizenship",
			}}
		},
	}
	w, _ := newTestWorkflow(t, planner)
	ctx := context.Background()

	require.NoError(t, w.Start("Portugal", models.TypeVisa))
	_, err := w.SubmitAnswers(ctx, nil)
	require.NoError(t, err)

	_, err = w.ProvideCitizenship(ctx, "")
	require.Error(t, err)

	_, err = w.ProvideCitizenship(ctx, "Atlantis")
	require.Error(t, err)

	// still suspended after invalid input
	assert.Equal(t, StateNeedsCitizenship, w.State())
}

func TestCancel(t *testing.T) {
	w, _ := newTestWorkflow(t, &stubPlanner{})

	require.NoError(t, w.Cancel(), "cancel from the initial state is allowed")

	require.NoError(t, w.Start("Portugal", models.TypeVisa))
	require.NoError(t, w.Cancel())
	assert.Equal(t, StateCancelled, w.State())

	// a cancelled session may restart
	require.NoError(t, w.Start("Germany", models.TypeWorkPermit))
}

func TestAdvisoryCarriedToApplication(t *testing.T) {
	planner := &stubPlanner{advisory: "Carry ID at all times."}
	w, _ := newTestWorkflow(t, planner)
	ctx := context.Background()

	require.NoError(t, w.Start("Germany", models.TypeResidency))
	out, err := w.SubmitAnswers(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Carry ID at all times.", out.Application.Advisory)
}
