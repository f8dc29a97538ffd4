package server

import (
	"errors"
	"net/http"

	"github.com/logiclue/logiclue/internal/analysis"
	"github.com/logiclue/logiclue/internal/llm"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.svc.Analyze(r.Context(), &req)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeData(w, res.Analysis)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req analysis.ExtractRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ex, err := s.svc.Extract(r.Context(), &req)
	if err != nil {
		s.writeExtractError(w, err)
		return
	}
	writeData(w, ex)
}

func (s *Server) handleAttempt(w http.ResponseWriter, r *http.Request) {
	var req analysis.AttemptRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := s.svc.RecordAttempt(r.Context(), &req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, AttemptID: id})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Stats(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeData(w, st)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.svc.Health(r.Context())
	status := http.StatusOK
	if !h.OK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, h)
}

// writeAnalysisError maps analysis failures to their client-facing messages.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var (
		verr   *analysis.ValidationError
		httpE  *llm.ErrHTTP
		emptyE *llm.ErrEmptyResponse
		parseE *llm.ErrParse
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &httpE):
		s.logger.Error("provider error", "status", httpE.StatusCode, "error", err)
		detail := httpE.Error()
		if httpE.Err != nil {
			detail = httpE.Err.Error()
		}
		writeError(w, http.StatusInternalServerError, "Analysis service error: "+detail)
	case errors.As(err, &emptyE):
		writeError(w, http.StatusInternalServerError, "Empty response from analysis service")
	case errors.As(err, &parseE):
		s.logger.Error("response parse error", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{
			Error:      "Failed to parse analysis response",
			RawContent: parseE.Content,
		})
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
	}
}

// writeExtractError reports every extraction failure other than bad input
// as "Extraction failed", whatever the provider did wrong.
func (s *Server) writeExtractError(w http.ResponseWriter, err error) {
	var verr *analysis.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	s.logger.Error("extraction failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var verr *analysis.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	s.logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
