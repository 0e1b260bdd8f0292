package serve

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/everydev1618/quizgen"
	"github.com/everydev1618/quizgen/dsl"
	"github.com/everydev1618/quizgen/export"
)

// BundleFileName is the attachment name of /quiz/generate responses.
const BundleFileName = "quiz_files.zip"

// --- Quiz Handlers ---

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	out, ok := s.generate(w, r, req)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Quiz-Id", out.ID)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out.PlainText()))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	out, ok := s.generate(w, r, req)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBundle(&buf, out, export.BundleOptions{XLSX: s.cfg.XLSX}); err != nil {
		s.logger.Error("bundle failed", "run", out.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not build bundle"})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+BundleFileName+`"`)
	w.Header().Set("X-Quiz-Id", out.ID)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	resp := ValidateResponse{Errors: []ProblemResponse{}}
	for _, verr := range dsl.Check(req.Input) {
		resp.Errors = append(resp.Errors, ProblemResponse{
			Line:    verr.Line,
			Field:   verr.Field,
			Message: verr.Message,
			Hint:    verr.Hint,
		})
	}
	resp.Valid = len(resp.Errors) == 0
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatsResponse{
		Generated: s.generated.Load(),
		Failed:    s.failed.Load(),
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		StartedAt: s.startedAt,
	})
}

// generate runs the interpreter and writes the error response on failure.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, req QuizRequest) (*dsl.Output, bool) {
	out, err := s.interpreter(req).Generate(r.Context(), req.Input)
	if err != nil {
		s.failed.Add(1)
		resp := ErrorResponse{Error: err.Error()}
		var lineErr *quizgen.LineError
		if errors.As(err, &lineErr) {
			resp.Line = lineErr.Line
		}
		writeJSON(w, statusFor(err), resp)
		return nil, false
	}
	s.generated.Add(1)
	return out, true
}

// statusFor maps generation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, quizgen.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, quizgen.ErrRunnerUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, quizgen.ErrUndefinedVariable),
		errors.Is(err, quizgen.ErrMalformedDefinition),
		errors.Is(err, quizgen.ErrEvaluation),
		errors.Is(err, quizgen.ErrExecution):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeRequest reads a JSON QuizRequest. Only application/json bodies are
// accepted, so cross-origin browser requests always need a CORS preflight.
func decodeRequest(w http.ResponseWriter, r *http.Request) (QuizRequest, bool) {
	var req QuizRequest
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		writeJSON(w, http.StatusUnsupportedMediaType, ErrorResponse{Error: "content type must be application/json"})
		return req, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return req, false
	}
	if strings.TrimSpace(req.Input) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing input"})
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
