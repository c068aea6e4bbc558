// internal/server/handlers.go
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tara/internal/common/errors"
	"tara/internal/common/validation"
	"tara/internal/models"
	"tara/internal/workflow"
)

// --- goal creation wizard ---

func (s *Server) handleStartGoal(w http.ResponseWriter, r *http.Request) {
	body, err := readValidated(r, validation.GoalStartSchema)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req struct {
		Country string `json:"country"`
		Type    string `json:"type"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(w, errors.NewRequestValidationError(err.Error()))
		return
	}

	s.wizardMu.Lock()
	defer s.wizardMu.Unlock()

	if err := s.wizard.Start(req.Country, models.ApplicationType(req.Type)); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"state": s.wizard.State(),
	})
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	s.wizardMu.Lock()
	defer s.wizardMu.Unlock()

	questions, err := s.wizard.Questions()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
	})
}

func (s *Server) handleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	body, err := readValidated(r, validation.GoalAnswersSchema)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(w, errors.NewRequestValidationError(err.Error()))
		return
	}

	s.wizardMu.Lock()
	defer s.wizardMu.Unlock()

	outcome, err := s.wizard.SubmitAnswers(r.Context(), req.Answers)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondOutcome(w, outcome)
}

func (s *Server) handleCitizenship(w http.ResponseWriter, r *http.Request) {
	body, err := readValidated(r, validation.CitizenshipSchema)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req struct {
		Country string `json:"country"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(w, errors.NewRequestValidationError(err.Error()))
		return
	}

	s.wizardMu.Lock()
	defer s.wizardMu.Unlock()

	outcome, err := s.wizard.ProvideCitizenship(r.Context(), req.Country)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondOutcome(w, outcome)
}

func (s *Server) handleCancelGoal(w http.ResponseWriter, r *http.Request) {
	s.wizardMu.Lock()
	defer s.wizardMu.Unlock()

	if err := s.wizard.Cancel(); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"state": s.wizard.State(),
	})
}

// respondOutcome maps a submission outcome: a suspended session answers
// 409 with the server's prompt, a finalized one answers 200 with the new
// application.
func (s *Server) respondOutcome(w http.ResponseWriter, outcome workflow.Outcome) {
	if outcome.NeedsCitizenship {
		s.respondJSON(w, http.StatusConflict, outcome)
		return
	}
	s.respondJSON(w, http.StatusOK, outcome)
}

// --- tracked applications ---

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.goals.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	s.respondJSON(w, http.StatusOK, apps)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.goals.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.ApplicationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		s.respondError(w, errors.NewRequestValidationError("status is required"))
		return
	}

	app, err := s.goals.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, app)
}

func (s *Server) handleToggleStep(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	app, err := s.goals.ToggleStep(r.Context(), vars["id"], vars["stepID"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, app)
}

func (s *Server) handleToggleDocument(w http.ResponseWriter, r *http.Request) {
	body, err := readValidated(r, validation.DocumentToggleSchema)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(w, errors.NewRequestValidationError(err.Error()))
		return
	}

	app, err := s.goals.ToggleDocument(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, app)
}

// --- profile ---

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.repo.Profile(r.Context())
	if err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("profile", err))
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.respondError(w, errors.NewRequestValidationError(err.Error()))
		return
	}
	if profile.Nationalities == nil {
		profile.Nationalities = []models.Nationality{}
	}
	if err := s.repo.SaveProfile(r.Context(), profile); err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("profile", err))
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

// --- vault collections ---

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.repo.Documents(r.Context())
	if err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("documents", err))
		return
	}
	if docs == nil {
		docs = []models.UserDocument{}
	}
	s.respondJSON(w, http.StatusOK, docs)
}

func (s *Server) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	var doc models.UserDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc.Name == "" {
		s.respondError(w, errors.NewRequestValidationError("document name is required"))
		return
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadDate == "" {
		doc.UploadDate = time.Now().Format("2006-01-02")
	}

	docs, err := s.repo.Documents(r.Context())
	if err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("documents", err))
		return
	}
	docs = append(docs, doc)
	if err := s.repo.SaveDocuments(r.Context(), docs); err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("documents", err))
		return
	}
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	apts, err := s.repo.Appointments(r.Context())
	if err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("appointments", err))
		return
	}
	if apts == nil {
		apts = []models.Appointment{}
	}
	s.respondJSON(w, http.StatusOK, apts)
}

func (s *Server) handleAddAppointment(w http.ResponseWriter, r *http.Request) {
	var apt models.Appointment
	if err := json.NewDecoder(r.Body).Decode(&apt); err != nil || apt.Title == "" {
		s.respondError(w, errors.NewRequestValidationError("appointment title is required"))
		return
	}
	if apt.ID == "" {
		apt.ID = uuid.New().String()
	}

	apts, err := s.repo.Appointments(r.Context())
	if err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("appointments", err))
		return
	}
	apts = append(apts, apt)
	if err := s.repo.SaveAppointments(r.Context(), apts); err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("appointments", err))
		return
	}
	s.respondJSON(w, http.StatusCreated, apt)
}

// handleListRoadmaps returns saved roadmap snapshots, newest first.
func (s *Server) handleListRoadmaps(w http.ResponseWriter, r *http.Request) {
	roadmaps, err := s.repo.Roadmaps(r.Context())
	if err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("roadmaps", err))
		return
	}
	if roadmaps == nil {
		roadmaps = []map[string]interface{}{}
	}
	s.respondJSON(w, http.StatusOK, roadmaps)
}

func (s *Server) handleAddRoadmap(w http.ResponseWriter, r *http.Request) {
	var roadmap map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&roadmap); err != nil || len(roadmap) == 0 {
		s.respondError(w, errors.NewRequestValidationError("roadmap body must be a non-empty object"))
		return
	}
	if _, ok := roadmap["id"]; !ok {
		roadmap["id"] = uuid.New().String()
	}

	if err := s.repo.SaveRoadmap(r.Context(), roadmap); err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("roadmaps", err))
		return
	}
	s.respondJSON(w, http.StatusCreated, roadmap)
}

// --- news ---

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	items := s.news.Fetch(r.Context())
	s.respondJSON(w, http.StatusOK, items)
}

// --- bureaucracy guidance ---

func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Country string `json:"country"`
		Purpose string `json:"purpose"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Country == "" || req.Purpose == "" {
		s.respondError(w, errors.NewRequestValidationError("country and purpose are required"))
		return
	}

	profile, err := s.repo.Profile(r.Context())
	if err != nil {
		s.respondError(w, errors.NewStoreUnavailableError("profile", err))
		return
	}

	result := s.guidance.GetBureaucracyGuidance(r.Context(), req.Country, req.Purpose, profile)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"steps":    result.Fulfilled.Steps,
		"degraded": result.Errored,
	})
}

// --- infrastructure ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readValidated drains the body and checks it against a request schema.
func readValidated(r *http.Request, schema string) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.NewRequestValidationError(err.Error())
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := validation.ValidateJSON(schema, body); err != nil {
		return nil, errors.NewRequestValidationError(err.Error())
	}
	return body, nil
}
