package api

import (
	"net/http"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/core/services"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, envelope{"database": "ok"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !s.decodeOrReject(w, r, &req) {
		return
	}

	user, err := services.Signup(r.Context(), s.store, s.logger, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, envelope{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !s.decodeOrReject(w, r, &req) {
		return
	}

	user, err := services.Login(r.Context(), s.store, s.logger, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, envelope{"user": user})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := services.ListJobs(r.Context(), s.store, s.logger)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, envelope{"jobs": jobs})
}

func (s *Server) handlePostJob(w http.ResponseWriter, r *http.Request) {
	var req model.PostJobRequest
	if !s.decodeOrReject(w, r, &req) {
		return
	}

	job, err := services.PostJob(r.Context(), s.store, s.logger, identityFrom(r), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, envelope{"job": job})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := services.ListApplications(r.Context(), s.store, s.logger, identityFrom(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, envelope{"applications": applications})
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateStatusRequest
	if !s.decodeOrReject(w, r, &req) {
		return
	}

	updated, err := services.UpdateApplicationStatus(r.Context(), s.store, s.notifier, s.logger, identityFrom(r), r.PathValue("id"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, envelope{"application": updated})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyRequest
	if !s.decodeOrReject(w, r, &req) {
		return
	}

	if err := services.Apply(r.Context(), s.store, s.notifier, s.logger, identityFrom(r), req); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, envelope{"message": "Application submitted"})
}
