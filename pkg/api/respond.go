package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/core/services"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// envelope is the {success, error, ...extra} shape every endpoint returns
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, extra envelope) {
	body := envelope{"success": true, "error": nil}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "error": message})
}

// writeError reports a service failure. Domain failures are 200 so the client shows the message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		if svcErr.Kind == services.KindUpstream {
			s.logger.Warn("Upstream failure", zap.String("path", r.URL.Path), zap.Error(err))
		}
		writeFailure(w, http.StatusOK, svcErr.Message)
		return
	}

	s.logger.Error("Unhandled error", zap.String("path", r.URL.Path), zap.Error(err))
	writeFailure(w, http.StatusOK, err.Error())
}

// decodeBody reads a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) decodeOrReject(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeBody(r, dst); err != nil {
		s.logger.Debug("Rejected request body", zap.String("path", r.URL.Path), zap.Error(err))
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func identityFrom(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(model.IdentityHeader))
}
