package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/icecake0141/patchwork-beta/internal/alloc"
	"github.com/icecake0141/patchwork-beta/internal/app"
	"github.com/icecake0141/patchwork-beta/internal/domain"
	"github.com/icecake0141/patchwork-beta/internal/infra/render"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: err.Error()})
}

// statusForError maps a domain/validation error to an HTTP status code:
// 400 for validation errors, 404 for missing revisions, 500 otherwise.
func statusForError(err error) int {
	var validationErr *alloc.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyProject):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRevisionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handlePlanDryRun(w http.ResponseWriter, r *http.Request) {
	project, err := app.LoadProject(r.Body)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	result, err := s.planner.Plan(project)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	raw, err := render.JSON(result, project.ID, "", "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

func (s *Server) handleCreateRevision(w http.ResponseWriter, r *http.Request) {
	project, err := app.LoadProject(r.Body)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	revision, err := s.planner.Save(project)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	raw, err := render.JSON(revision.Result, revision.ProjectID, revision.RevisionID, revision.InputHash)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(raw)
}

func (s *Server) handleGetRevisionJSON(w http.ResponseWriter, r *http.Request) {
	revision, err := s.planner.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	raw, err := render.JSON(revision.Result, revision.ProjectID, revision.RevisionID, revision.InputHash)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

func (s *Server) handleGetRevisionCSV(w http.ResponseWriter, r *http.Request) {
	revision, err := s.planner.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	out, err := render.CSV(revision.Result.Sessions, revision.ProjectID, revision.RevisionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Write([]byte(out))
}

func (s *Server) handleGetRevisionSVG(w http.ResponseWriter, r *http.Request) {
	revision, err := s.planner.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	topology, rackPanels, pairDetail, err := render.SVG(revision.Result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	view := chi.URLParam(r, "*")
	var svg string
	switch {
	case view == "topology":
		svg = topology
	case strings.HasPrefix(view, "rack/"):
		svg = rackPanels[strings.TrimPrefix(view, "rack/")]
	case strings.HasPrefix(view, "pair/"):
		svg = pairDetail[strings.TrimPrefix(view, "pair/")]
	}
	if svg == "" {
		writeError(w, http.StatusNotFound, errors.New("api: no such svg view"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}
