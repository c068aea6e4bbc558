// internal/store/repository_test.go
package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tara/internal/models"
)

func TestProfileRoundTrip(t *testing.T) {
	repo := NewRepository(NewMemoryStore())
	ctx := context.Background()

	// before any write the default profile is served
	got, err := repo.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile(), got)

	profile := models.UserProfile{
		UserID:           "u-1",
		DisplayName:      "Alex",
		Email:            "alex@example.org",
		Nationalities:    []models.Nationality{{Country: "Germany", Code: "DE"}},
		CurrentResidence: "Lisbon",
		Occupation:       "Engineer",
		Language:         "en",
		IsOnboarded:      true,
	}
	require.NoError(t, repo.SaveProfile(ctx, profile))

	got, err = repo.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestApplicationsRoundTrip(t *testing.T) {
	repo := NewRepository(NewMemoryStore())
	ctx := context.Background()

	apps := []models.Application{
		{
			ID:           "app-1",
			Title:        "Visa (Portugal)",
			Country:      "Portugal",
			Type:         models.TypeVisa,
			Status:       models.StatusInProgress,
			Progress:     50,
			RequiredDocs: []string{"Passport"},
			Steps:        []models.ApplicationStep{{ID: "1", Text: "Apply", IsCompleted: true}},
			TravelContext: map[string]string{
				"reason": "Work", "duration": "12+ months",
			},
		},
	}
	require.NoError(t, repo.SaveApplications(ctx, apps))

	got, err := repo.Applications(ctx)
	require.NoError(t, err)
	assert.Equal(t, apps, got)
}

func TestVaultRoundTrip(t *testing.T) {
	repo := NewRepository(NewMemoryStore())
	ctx := context.Background()

	docs := []models.UserDocument{{ID: "d-1", Name: "Passport Scan", Type: "PDF", UploadDate: "2026-08-01"}}
	require.NoError(t, repo.SaveDocuments(ctx, docs))
	gotDocs, err := repo.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, docs, gotDocs)

	apts := []models.Appointment{{ID: "a-1", Title: "Embassy visit", Location: "Lisbon", DateTime: "2026-09-15T10:00", Status: "Confirmed"}}
	require.NoError(t, repo.SaveAppointments(ctx, apts))
	gotApts, err := repo.Appointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, apts, gotApts)
}

func TestEmptyCollections(t *testing.T) {
	repo := NewRepository(NewMemoryStore())
	ctx := context.Background()

	apps, err := repo.Applications(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	docs, err := repo.Documents(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRoadmapsPrepend(t *testing.T) {
	repo := NewRepository(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.SaveRoadmap(ctx, map[string]interface{}{"id": "first"}))
	require.NoError(t, repo.SaveRoadmap(ctx, map[string]interface{}{"id": "second"}))

	roadmaps, err := repo.Roadmaps(ctx)
	require.NoError(t, err)
	require.Len(t, roadmaps, 2)
	assert.Equal(t, "second", roadmaps[0]["id"], "newest roadmap first")
}

func TestUserIDRoundTrip(t *testing.T) {
	repo := NewRepository(NewMemoryStore())
	ctx := context.Background()

	_, err := repo.UserID(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.SaveUserID(ctx, "temp_123"))
	id, err := repo.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "temp_123", id)
}
