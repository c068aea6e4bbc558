// internal/goals/service.go
package goals

import (
	"context"
	"time"

	"tara/internal/common/errors"
	"tara/internal/common/logger"
	"tara/internal/models"
	"tara/internal/store"
)

// Service owns the lifecycle of tracked applications after the creation
// wizard has finalized them: listing, checklist toggles and status changes.
// Every mutation recomputes progress, stamps LastUpdated and writes the
// whole list back through the repository.
type Service struct {
	repo   *store.Repository
	logger logger.Logger
}

func NewService(repo *store.Repository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// List returns all tracked applications, newest first as stored.
func (s *Service) List(ctx context.Context) ([]models.Application, error) {
	apps, err := s.repo.Applications(ctx)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("load applications", err)
	}
	return apps, nil
}

// Get returns one application by id.
func (s *Service) Get(ctx context.Context, id string) (models.Application, error) {
	apps, err := s.repo.Applications(ctx)
	if err != nil {
		return models.Application{}, errors.NewStoreUnavailableError("load applications", err)
	}
	for _, app := range apps {
		if app.ID == id {
			return app, nil
		}
	}
	return models.Application{}, errors.NewUserInputError("application not found", id)
}

// ToggleStep flips the completion flag of one checklist step.
func (s *Service) ToggleStep(ctx context.Context, appID, stepID string) (models.Application, error) {
	return s.mutate(ctx, appID, func(app *models.Application) error {
		for i := range app.Steps {
			if app.Steps[i].ID == stepID {
				app.Steps[i].IsCompleted = !app.Steps[i].IsCompleted
				return nil
			}
		}
		return errors.NewUserInputError("step not found", stepID)
	})
}

// ToggleDocument flips a required document in or out of the completed set.
// Documents outside the required list are rejected, which keeps the
// completed set a subset of the required one.
func (s *Service) ToggleDocument(ctx context.Context, appID, doc string) (models.Application, error) {
	return s.mutate(ctx, appID, func(app *models.Application) error {
		if !app.RequiresDoc(doc) {
			return errors.NewUserInputError("document is not part of this application", doc)
		}
		if app.HasCompletedDoc(doc) {
			kept := app.CompletedDocs[:0]
			for _, d := range app.CompletedDocs {
				if d != doc {
					kept = append(kept, d)
				}
			}
			app.CompletedDocs = kept
		} else {
			app.CompletedDocs = append(app.CompletedDocs, doc)
		}
		return nil
	})
}

// UpdateStatus moves the application to a new lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, appID string, status models.ApplicationStatus) (models.Application, error) {
	return s.mutate(ctx, appID, func(app *models.Application) error {
		app.Status = status
		return nil
	})
}

// Delete removes one application.
func (s *Service) Delete(ctx context.Context, appID string) error {
	apps, err := s.repo.Applications(ctx)
	if err != nil {
		return errors.NewStoreUnavailableError("load applications", err)
	}

	kept := apps[:0]
	found := false
	for _, app := range apps {
		if app.ID == appID {
			found = true
			continue
		}
		kept = append(kept, app)
	}
	if !found {
		return errors.NewUserInputError("application not found", appID)
	}
	if err := s.repo.SaveApplications(ctx, kept); err != nil {
		return errors.NewStoreUnavailableError("save applications", err)
	}
	return nil
}

// mutate loads the list, applies fn to the targeted application, refreshes
// the derived fields and writes everything back.
func (s *Service) mutate(ctx context.Context, appID string, fn func(*models.Application) error) (models.Application, error) {
	apps, err := s.repo.Applications(ctx)
	if err != nil {
		return models.Application{}, errors.NewStoreUnavailableError("load applications", err)
	}

	for i := range apps {
		if apps[i].ID != appID {
			continue
		}
		if err := fn(&apps[i]); err != nil {
			return models.Application{}, err
		}

		apps[i].Progress = apps[i].DerivedProgress()
		apps[i].LastUpdated = time.Now().Format("2006-01-02")

		if err := s.repo.SaveApplications(ctx, apps); err != nil {
			return models.Application{}, errors.NewStoreUnavailableError("save applications", err)
		}
		return apps[i], nil
	}

	return models.Application{}, errors.NewUserInputError("application not found", appID)
}
