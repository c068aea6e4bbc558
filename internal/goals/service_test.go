// internal/goals/service_test.go
package goals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tara/internal/common/logger"
	"tara/internal/models"
	"tara/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Repository) {
	t.Helper()
	repo := store.NewRepository(store.NewMemoryStore())
	return NewService(repo, logger.NewTestLogger(t)), repo
}

func seedApplication(t *testing.T, repo *store.Repository) models.Application {
	t.Helper()
	app := models.Application{
		ID:           "app-1",
		Title:        "Work Permit (Germany)",
		Country:      "Germany",
		Type:         models.TypeWorkPermit,
		Status:       models.StatusInProgress,
		RequiredDocs: []string{"Passport", "Work Contract"},
		Steps: []models.ApplicationStep{
			{ID: "1", Text: "Gather documents"},
			{ID: "2", Text: "Book appointment"},
		},
	}
	require.NoError(t, repo.SaveApplications(context.Background(), []models.Application{app}))
	return app
}

func TestToggleStepRecomputesProgress(t *testing.T) {
	svc, repo := newTestService(t)
	seedApplication(t, repo)
	ctx := context.Background()

	got, err := svc.ToggleStep(ctx, "app-1", "1")
	require.NoError(t, err)
	assert.True(t, got.Steps[0].IsCompleted)
	// 1 of 4 checklist items done
	assert.Equal(t, 25, got.Progress)
	assert.NotEmpty(t, got.LastUpdated)

	// toggling again undoes it
	got, err = svc.ToggleStep(ctx, "app-1", "1")
	require.NoError(t, err)
	assert.False(t, got.Steps[0].IsCompleted)
	assert.Equal(t, 0, got.Progress)
}

func TestToggleStepUnknownIDs(t *testing.T) {
	svc, repo := newTestService(t)
	seedApplication(t, repo)
	ctx := context.Background()

	_, err := svc.ToggleStep(ctx, "app-1", "99")
	require.Error(t, err)

	_, err = svc.ToggleStep(ctx, "missing", "1")
	require.Error(t, err)
}

func TestToggleDocument(t *testing.T) {
	svc, repo := newTestService(t)
	seedApplication(t, repo)
	ctx := context.Background()

	got, err := svc.ToggleDocument(ctx, "app-1", "Passport")
	require.NoError(t, err)
	assert.Equal(t, []string{"Passport"}, got.CompletedDocs)
	assert.Equal(t, 25, got.Progress)

	got, err = svc.ToggleDocument(ctx, "app-1", "Passport")
	require.NoError(t, err)
	assert.Empty(t, got.CompletedDocs)
}

func TestToggleDocumentRejectsUnknownDoc(t *testing.T) {
	svc, repo := newTestService(t)
	seedApplication(t, repo)

	_, err := svc.ToggleDocument(context.Background(), "app-1", "Birth Certificate")
	require.Error(t, err)

	// application untouched
	apps, err := repo.Applications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps[0].CompletedDocs)
}

func TestFullCompletionReachesHundred(t *testing.T) {
	svc, repo := newTestService(t)
	seedApplication(t, repo)
	ctx := context.Background()

	_, err := svc.ToggleDocument(ctx, "app-1", "Passport")
	require.NoError(t, err)
	_, err = svc.ToggleDocument(ctx, "app-1", "Work Contract")
	require.NoError(t, err)
	_, err = svc.ToggleStep(ctx, "app-1", "1")
	require.NoError(t, err)
	got, err := svc.ToggleStep(ctx, "app-1", "2")
	require.NoError(t, err)

	assert.Equal(t, 100, got.Progress)
}

func TestUpdateStatus(t *testing.T) {
	svc, repo := newTestService(t)
	seedApplication(t, repo)

	got, err := svc.UpdateStatus(context.Background(), "app-1", models.StatusPendingReview)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingReview, got.Status)
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService(t)
	seedApplication(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "app-1"))

	apps, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	require.Error(t, svc.Delete(ctx, "app-1"))
}

func TestVisaFreeProgressIsPreserved(t *testing.T) {
	svc, repo := newTestService(t)
	app := models.Application{
		ID:       "app-vf",
		Title:    "Visa (Portugal)",
		Country:  "Portugal",
		Type:     models.TypeVisa,
		Status:   models.StatusVisaFree,
		Progress: 100,
	}
	require.NoError(t, repo.SaveApplications(context.Background(), []models.Application{app}))

	got, err := svc.UpdateStatus(context.Background(), "app-vf", models.StatusVisaFree)
	require.NoError(t, err)
	// no checklist items, so the stored progress stands
	assert.Equal(t, 100, got.Progress)
}
