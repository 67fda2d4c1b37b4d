package server

import (
	"errors"
	"mime"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/store"
)

// Response status values
const (
	StatusOK           = "ok"
	StatusInputMissing = "input_missing"
	StatusInvalid      = "validation_error"
	StatusError        = "error"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CoverageRequest selects the coverage term
type CoverageRequest struct {
	Term string `json:"term"`
}

// SnapshotResponse is the stored snapshot plus the raw stored keys
type SnapshotResponse struct {
	Snapshot domain.FinancialSnapshot `json:"snapshot"`
	Values   map[string]string        `json:"values"`
}

// Health reports liveness
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": StatusOK})
}

// NetWorth accepts either a JSON FinancialInputs document or form values
// keyed by field name
func (s *Server) NetWorth(w http.ResponseWriter, r *http.Request) {
	var in domain.FinancialInputs
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			s.badRequest(w, r, err)
			return
		}
		values := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			values[k] = r.PostForm.Get(k)
		}
		in = config.InputsFromForm(values)
	} else if !s.decode(w, r, &in) {
		return
	}

	res, err := s.engine.CalculateNetWorth(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Coverage estimates takaful coverage from the stored snapshot
func (s *Server) Coverage(w http.ResponseWriter, r *http.Request) {
	var req CoverageRequest
	if !s.decode(w, r, &req) {
		return
	}
	term, err := domain.ParseCoverageTerm(req.Term)
	if err != nil {
		s.writeError(w, r, domain.NewValidationError("coverage", "%v", err))
		return
	}

	res, err := s.engine.EstimateCoverage(r.Context(), term)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// NeedsGap runs the protection needs-gap analysis
func (s *Server) NeedsGap(w http.ResponseWriter, r *http.Request) {
	var in domain.NeedsGapInput
	if !s.decode(w, r, &in) {
		return
	}
	res, err := s.engine.AnalyzeNeedsGap(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Retirement runs the retirement projection
func (s *Server) Retirement(w http.ResponseWriter, r *http.Request) {
	var plan domain.RetirementPlan
	if !s.decode(w, r, &plan) {
		return
	}
	res, err := s.engine.ProjectRetirement(r.Context(), plan)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Snapshot returns the stored figures
func (s *Server) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := store.LoadSnapshot(r.Context(), s.engine.Store)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	values, err := store.Dump(r.Context(), s.engine.Store)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SnapshotResponse{Snapshot: snap, Values: values})
}

// ClearSnapshot removes every stored figure
func (s *Server) ClearSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := store.Clear(r.Context(), s.engine.Store); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v, answering 400 itself on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.badRequest(w, r, err)
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.WithError(err).WithField("request_id", RequestIDFrom(r.Context())).Warn("invalid request body")
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Status: StatusInvalid, Message: "invalid request body: " + err.Error()})
}

// writeError maps calculation errors onto HTTP statuses
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).WithField("request_id", RequestIDFrom(r.Context())).Error("calculation failed")
	}
	writeJSON(w, status, body)
}

func errorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInputMissing):
		return http.StatusUnprocessableEntity, ErrorResponse{Status: StatusInputMissing, Message: messageOf(err)}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Status: StatusInvalid, Message: messageOf(err)}
	default:
		return http.StatusInternalServerError, ErrorResponse{Status: StatusError, Message: "internal error"}
	}
}

// messageOf prefers the calculation error's own message over the wrapped chain
func messageOf(err error) string {
	var calcErr *domain.CalculationError
	if errors.As(err, &calcErr) && calcErr.Message != "" {
		return calcErr.Message
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
