package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/waddle/internal/records"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode error response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// maxBodyBytes bounds a posted session record.
const maxBodyBytes = 64 << 10

func (s *Server) handleAppendSession(w http.ResponseWriter, r *http.Request) {
	var rec records.SessionRecord
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&rec); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_json", "request body must be a session record")
		return
	}
	if err := validateRecord(rec); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "invalid_record", err.Error())
		return
	}

	if err := s.book.Ingest(r.Context(), rec); err != nil {
		s.logger.Error("failed to store session", "error", err, "session_id", rec.SessionID)
		s.respondError(w, http.StatusInternalServerError, "storage_error", "failed to store session")
		return
	}

	s.logger.Info("session stored", "session_id", rec.SessionID, "status", rec.Status, "score", rec.Score)
	s.respondJSON(w, http.StatusCreated, rec)
}

func validateRecord(rec records.SessionRecord) error {
	if !strings.HasPrefix(rec.SessionID, "sess_") {
		return errors.New("sessionId must start with sess_")
	}
	switch rec.Status {
	case records.StatusCompleted, records.StatusReset:
	default:
		return errors.New("status must be completed or reset")
	}
	if rec.Score < 0 || rec.Lives < 0 {
		return errors.New("score and lives must not be negative")
	}
	return nil
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	list, err := s.book.Sessions(r.Context())
	if err != nil {
		s.logger.Error("failed to load sessions", "error", err)
		s.respondError(w, http.StatusInternalServerError, "storage_error", "failed to load sessions")
		return
	}
	if list == nil {
		list = []records.SessionRecord{}
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleExportSessions(w http.ResponseWriter, r *http.Request) {
	data, err := s.book.ExportSessions(r.Context())
	if err != nil {
		s.logger.Error("failed to export sessions", "error", err)
		s.respondError(w, http.StatusInternalServerError, "storage_error", "failed to export sessions")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+records.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write export", "error", err)
	}
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	top := 5
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid_top", "top must be a positive integer")
			return
		}
		top = n
	}
	if s.maxTop > 0 && top > s.maxTop {
		top = s.maxTop
	}

	list, err := s.book.Top(r.Context(), top)
	if err != nil {
		s.logger.Error("failed to load leaderboard", "error", err)
		s.respondError(w, http.StatusInternalServerError, "storage_error", "failed to load leaderboard")
		return
	}
	if list == nil {
		list = []records.ScoreEntry{}
	}
	s.respondJSON(w, http.StatusOK, list)
}
