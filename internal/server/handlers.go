package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/agbru/convplan/internal/errors"
	"github.com/agbru/convplan/internal/logging"
	"github.com/agbru/convplan/internal/plan"
)

// planRequest is the JSON compile request. Index entries are integers or
// null for absent positions.
type planRequest struct {
	A    []*int `json:"a"`
	B    []*int `json:"b"`
	Mask []bool `json:"mask,omitempty"`
	Raw  bool   `json:"raw,omitempty"`
}

// planStats mirrors plan.Stats in the response body.
type planStats struct {
	Mul int `json:"mul"`
	Add int `json:"add"`
	Sub int `json:"sub"`
	Neg int `json:"neg"`
}

// planResponse is the JSON compile response.
type planResponse struct {
	N       int       `json:"n"`
	Outputs int       `json:"outputs"`
	Stats   planStats `json:"stats"`
	Source  string    `json:"source,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// handlePlan compiles a plan from a JSON request.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "method")
		return
	}

	_, span := s.tracer.Start(r.Context(), "server.CompilePlan")
	defer span.End()

	var req planRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.metrics.Compile.ObserveFailure()
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), "decode")
		return
	}

	if len(req.A) > s.security.MaxInputLen || len(req.B) > s.security.MaxInputLen {
		s.metrics.Compile.ObserveFailure()
		writeError(w, http.StatusRequestEntityTooLarge, "input length exceeds service limit", "shape")
		return
	}

	a := fromNullable(req.A)
	b := fromNullable(req.B)
	span.SetAttributes(
		attribute.Int("plan.n", len(a)),
		attribute.Bool("plan.raw", req.Raw),
	)

	start := time.Now()
	var opts []plan.Option
	if req.Mask != nil {
		opts = append(opts, plan.WithMask(req.Mask))
	}
	p, err := plan.Compile(a, b, opts...)
	if err != nil {
		s.metrics.Compile.ObserveFailure()
		span.RecordError(err)
		s.log.Error("compile rejected", err, logging.Int("n", len(a)))
		writeError(w, statusFor(err), err.Error(), kindFor(err))
		return
	}
	s.metrics.Compile.ObserveCompile(p.Stats(), p.Outputs(), time.Since(start))

	resp := planResponse{
		N:       p.N(),
		Outputs: p.Outputs(),
		Stats: planStats{
			Mul: p.Stats().Mul,
			Add: p.Stats().Add,
			Sub: p.Stats().Sub,
			Neg: p.Stats().Neg,
		},
	}
	if req.Raw {
		resp.Source = p.Source()
	}

	s.log.Info("plan compiled",
		logging.Int("n", p.N()),
		logging.Int("outputs", p.Outputs()),
		logging.Int("mul", p.Stats().Mul))
	writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness plus a runtime snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "method")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"runtime": s.runtime.Snapshot(),
	})
}

// fromNullable converts a JSON nullable index list into the core vector
// form.
func fromNullable(in []*int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		if v == nil {
			out[i] = plan.Absent
		} else {
			out[i] = *v
		}
	}
	return out
}

// statusFor maps compile errors to HTTP statuses.
func statusFor(err error) int {
	var internal apperrors.InternalError
	if errors.As(err, &internal) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// kindFor labels compile errors for the response body.
func kindFor(err error) string {
	var (
		shape    apperrors.ShapeError
		conv     apperrors.ConversionError
		internal apperrors.InternalError
	)
	switch {
	case errors.As(err, &shape):
		return "shape"
	case errors.As(err, &conv):
		return "conversion"
	case errors.As(err, &internal):
		return "internal"
	}
	return "error"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}
