// internal/store/repository.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tara/internal/models"
)

// Repository exposes the typed collections held behind the flat keys.
// Reads of unwritten keys yield the default profile or empty collections,
// matching first-run behavior.
type Repository struct {
	store Store
}

func NewRepository(s Store) *Repository {
	return &Repository{store: s}
}

func (r *Repository) Profile(ctx context.Context) (models.UserProfile, error) {
	raw, err := r.store.Get(ctx, KeyProfile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.DefaultProfile(), nil
		}
		return models.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

func (r *Repository) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	return r.saveJSON(ctx, KeyProfile, profile)
}

func (r *Repository) Applications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := r.loadJSON(ctx, KeyApplications, &apps); err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Application{}
	}
	return apps, nil
}

func (r *Repository) SaveApplications(ctx context.Context, apps []models.Application) error {
	return r.saveJSON(ctx, KeyApplications, apps)
}

func (r *Repository) Documents(ctx context.Context) ([]models.UserDocument, error) {
	var docs []models.UserDocument
	if err := r.loadJSON(ctx, KeyDocuments, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.UserDocument{}
	}
	return docs, nil
}

func (r *Repository) SaveDocuments(ctx context.Context, docs []models.UserDocument) error {
	return r.saveJSON(ctx, KeyDocuments, docs)
}

func (r *Repository) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var apts []models.Appointment
	if err := r.loadJSON(ctx, KeyAppointments, &apts); err != nil {
		return nil, err
	}
	if apts == nil {
		apts = []models.Appointment{}
	}
	return apts, nil
}

func (r *Repository) SaveAppointments(ctx context.Context, apts []models.Appointment) error {
	return r.saveJSON(ctx, KeyAppointments, apts)
}

// Roadmaps are free-form saved plans; the newest entry goes first.
func (r *Repository) Roadmaps(ctx context.Context) ([]map[string]interface{}, error) {
	var roadmaps []map[string]interface{}
	if err := r.loadJSON(ctx, KeyRoadmaps, &roadmaps); err != nil {
		return nil, err
	}
	if roadmaps == nil {
		roadmaps = []map[string]interface{}{}
	}
	return roadmaps, nil
}

func (r *Repository) SaveRoadmap(ctx context.Context, roadmap map[string]interface{}) error {
	existing, err := r.Roadmaps(ctx)
	if err != nil {
		return err
	}
	return r.saveJSON(ctx, KeyRoadmaps, append([]map[string]interface{}{roadmap}, existing...))
}

// UserID returns the cached generated identifier, or ErrNotFound.
func (r *Repository) UserID(ctx context.Context) (string, error) {
	return r.store.Get(ctx, KeyUserID)
}

func (r *Repository) SaveUserID(ctx context.Context, id string) error {
	return r.store.Set(ctx, KeyUserID, id)
}

func (r *Repository) loadJSON(ctx context.Context, key string, out interface{}) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repository) saveJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
