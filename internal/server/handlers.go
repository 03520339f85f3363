package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/findergoal/internal/geo"
	"github.com/Veraticus/findergoal/internal/model"
	"github.com/Veraticus/findergoal/internal/roster"
)

const maxBodyBytes = 64 << 10

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type textRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	ID      string              `json:"id"`
	Extract roster.MatchExtract `json:"extract"`
}

type draftRequest struct {
	Extract *roster.MatchExtract `json:"extract,omitempty"`
	Text    string               `json:"text,omitempty"`
}

type draftResponse struct {
	ID      string             `json:"id,omitempty"`
	Request model.MatchRequest `json:"request"`
	Draft   roster.MatchDraft  `json:"draft"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "findergoal",
		"pitches":   s.pitches != nil,
	})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, roster.Verdict(req.Text))
}

func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := s.newID()
	extract, ok := s.process(w, r, id, req.Text)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, extractResponse{ID: id, Extract: extract})
}

func (s *Server) draft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var resp draftResponse
	switch {
	case req.Extract != nil:
		resp.Draft = roster.BuildDraft(*req.Extract)
	case strings.TrimSpace(req.Text) != "":
		resp.ID = s.newID()
		extract, ok := s.process(w, r, resp.ID, req.Text)
		if !ok {
			return
		}
		resp.Draft = roster.BuildDraft(extract)
	default:
		respondError(w, http.StatusBadRequest, "either text or extract is required")
		return
	}

	resp.Request = resp.Draft.Request()
	respondJSON(w, http.StatusOK, resp)
}

// process runs the pipeline and writes the error response on failure.
func (s *Server) process(w http.ResponseWriter, r *http.Request, id, text string) (roster.MatchExtract, bool) {
	extract, err := s.pipeline.Process(r.Context(), text)
	if err == nil {
		s.logger.Info("roster extracted", "extraction_id", id, "players", len(extract.Players))
		return extract, true
	}

	var extractionErr *roster.ExtractionError
	switch {
	case errors.Is(err, roster.ErrRosterRejected):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &extractionErr):
		s.logger.Error("roster extraction failed",
			"extraction_id", id,
			"kind", extractionErr.Kind.String(),
			"detail", extractionErr.Detail())
		respondError(w, http.StatusBadGateway, roster.UserMessage)
	default:
		s.logger.Error("roster extraction failed", "extraction_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, roster.UserMessage)
	}
	return roster.MatchExtract{}, false
}

func (s *Server) searchPitches(w http.ResponseWriter, r *http.Request) {
	if s.pitches == nil {
		respondError(w, http.StatusServiceUnavailable, "pitch search is not configured")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}

	result, err := s.pitches.Search(r.Context(), query)
	switch {
	case errors.Is(err, geo.ErrPlaceNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("no place found for %q", query))
		return
	case err != nil:
		s.logger.Error("pitch search failed", "query", query, "error", err)
		respondError(w, http.StatusBadGateway, "pitch search failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
