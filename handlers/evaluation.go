// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/sponsor-eval/auth"
	"github.com/danielhkuo/sponsor-eval/cliparse"
	"github.com/danielhkuo/sponsor-eval/draft"
	"github.com/danielhkuo/sponsor-eval/evaluation"
	"github.com/danielhkuo/sponsor-eval/middleware"
	"github.com/danielhkuo/sponsor-eval/models"
	"github.com/danielhkuo/sponsor-eval/rubric"
)

type EvaluationHandler struct {
	sessions *evaluation.Manager
	cfg      cliparse.Config
}

func NewEvaluationHandler(sessions *evaluation.Manager, cfg cliparse.Config) *EvaluationHandler {
	return &EvaluationHandler{sessions: sessions, cfg: cfg}
}

// GetRubric handles GET /rubric
func (h *EvaluationHandler) GetRubric(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.RubricResponse{
		Criteria:   rubric.Criteria(),
		MinScore:   rubric.MinScore,
		MaxScore:   rubric.MaxScore,
		LowAnchor:  rubric.LowAnchor,
		HighAnchor: rubric.HighAnchor,
	})
}

// CreateSession handles POST /sessions
func (h *EvaluationHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := auth.GenerateSessionID()
	h.sessions.Create(id)

	slog.Info("session created", "sessions", h.sessions.Len())

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{SessionID: id})
}

// GetSession handles GET /session
func (h *EvaluationHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.State())
}

// SubmitIdentity handles POST /session/identity
func (h *EvaluationHandler) SubmitIdentity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.IdentityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	projects, err := s.SubmitIdentity(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProjectsResponse{Projects: projects})
}

// Back handles POST /session/back
func (h *EvaluationHandler) Back(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.BackToIdentity()
	middleware.JSONResponse(w, http.StatusOK, s.State())
}

// ListProjects handles GET /session/projects
func (h *EvaluationHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	projects, err := s.Projects()
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProjectsResponse{Projects: projects})
}

// SelectProject handles POST /session/projects/{project}/select
func (h *EvaluationHandler) SelectProject(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	project := r.PathValue("project")
	if project == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project is required")
		return
	}

	view, err := s.SelectProject(project)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// CommitDraft handles PUT /session/draft
func (h *EvaluationHandler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var snap draft.Snapshot
	if err := middleware.ParseJSONBody(r, &snap); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	merged, err := s.Commit(r.Context(), snap)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, merged)
}

// Submit handles POST /session/submit
// An empty or null body submits the stored draft.
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var snap *draft.Snapshot
	if err := middleware.ParseJSONBody(r, &snap); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := s.Submit(r.Context(), snap)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponse{
		Project:     res.Project,
		Message:     "Submission saved. Thank you!",
		AllComplete: res.AllComplete,
		Stage:       res.Stage,
		SubmittedAt: res.SubmittedAt,
	})
}

// StartOver handles POST /session/start-over
func (h *EvaluationHandler) StartOver(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.StartOver(r.Context())
	middleware.JSONResponse(w, http.StatusOK, s.State())
}

func (h *EvaluationHandler) session(w http.ResponseWriter, r *http.Request) (*evaluation.Session, bool) {
	id := r.Header.Get(middleware.HeaderSessionID)
	if err := auth.ValidateSessionID(id); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing or invalid session ID")
		return nil, false
	}
	s, ok := h.sessions.Get(r.Context(), id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown session ID, create a new session")
		return nil, false
	}
	return s, true
}

// writeError maps evaluation errors to HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, evaluation.ErrNameRequired),
		errors.Is(err, evaluation.ErrInvalidEmail),
		errors.Is(err, evaluation.ErrNoIdentity),
		errors.Is(err, evaluation.ErrNoProjectLoaded),
		errors.Is(err, evaluation.ErrNoStudents),
		errors.Is(err, draft.ErrInvalidSnapshot):
		status = http.StatusBadRequest
	case errors.Is(err, evaluation.ErrSponsorNotFound),
		errors.Is(err, evaluation.ErrUnknownProject):
		status = http.StatusNotFound
	case errors.Is(err, evaluation.ErrProjectCompleted),
		errors.Is(err, evaluation.ErrSubmissionInFlight):
		status = http.StatusConflict
	case errors.Is(err, evaluation.ErrRosterUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, evaluation.ErrSubmissionFailed):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		slog.Error("unhandled evaluation error", "error", err)
	}
	middleware.ErrorResponse(w, status, err.Error())
}
