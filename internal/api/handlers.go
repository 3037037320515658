package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/slok/hiretrack/internal/app/apply"
	"github.com/slok/hiretrack/internal/app/list"
	"github.com/slok/hiretrack/internal/app/remove"
	apptimeline "github.com/slok/hiretrack/internal/app/timeline"
	"github.com/slok/hiretrack/internal/app/transition"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/timeline"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListFlows(w http.ResponseWriter, _ *http.Request) {
	flows := s.gen.Flows()
	res := make([]model.StatusFlow, 0, len(flows))
	for _, f := range flows {
		res = append(res, f)
	}
	slices.SortFunc(res, func(a, b model.StatusFlow) int { return strings.Compare(a.ID, b.ID) })

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	req := list.Request{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := model.ParseApplicationStatus(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		req.StatusFilter = &status
	}

	apps, err := s.listSvc.Run(r.Context(), req)
	if err != nil {
		s.logger.Errorf("could not list applications: %s", err)
		writeError(w, err)
		return
	}
	if apps == nil {
		apps = []model.Application{}
	}

	writeJSON(w, http.StatusOK, apps)
}

type createApplicationRequest struct {
	JobID     string `json:"jobId"`
	JobTitle  string `json:"jobTitle"`
	Company   string `json:"company"`
	Applicant string `json:"applicant"`
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var body createApplicationRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	app, err := s.applySvc.Run(r.Context(), apply.Request{
		JobID:     body.JobID,
		JobTitle:  body.JobTitle,
		Company:   body.Company,
		Applicant: body.Applicant,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/applications/"+app.ID)
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.repo.GetApplication(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	_, err := s.removeSvc.Run(r.Context(), remove.Request{ApplicationID: chi.URLParam(r, "id")})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleTransitionApplication(w http.ResponseWriter, r *http.Request) {
	var body transitionRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	status, err := model.ParseApplicationStatus(body.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	app, err := s.transitionSvc.Run(r.Context(), transition.Request{
		ApplicationID: chi.URLParam(r, "id"),
		Status:        status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	withMetadata := false
	if raw := r.URL.Query().Get("metadata"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, badRequestError{fmt.Errorf("invalid metadata query param %q", raw)})
			return
		}
		withMetadata = v
	}

	res, err := s.timelineSvc.Run(r.Context(), apptimeline.Request{
		ApplicationID: chi.URLParam(r, "id"),
		WithMetadata:  withMetadata,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := res.Application.Status
	s.metrics.RecordTimeline(timeline.SelectFlowID(status), string(status))

	writeJSON(w, http.StatusOK, res)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequestError{fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}
