/*
handlers.go - HTTP API handlers for the frequency engine

PURPOSE:
  Exposes frequency resolution and resample computation over REST.
  Handles HTTP request/response and JSON serialization, delegates to the
  frequency/series/indices packages.

ENDPOINTS:
  GET  /api/frequencies          List the catalog
  POST /api/frequencies/resolve  Resolve a specification
  POST /api/compute              Clip, resample and build bounds
  GET  /api/runs                 List recorded computations

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: malformed JSON, invalid specification, invalid calendar date
  - 500: storage failures

SECURITY NOTE:
  No authentication. The server is meant to sit behind the computation
  pipeline, not on a network edge.

SEE ALSO:
  - dto.go: request/response data structures
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/warp/climate-engine/calendar"
	"github.com/warp/climate-engine/frequency"
	"github.com/warp/climate-engine/indices"
	"github.com/warp/climate-engine/series"
	"github.com/warp/climate-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a handler backed by the given run store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// ListFrequencies returns the catalog.
func (h *Handler) ListFrequencies(w http.ResponseWriter, r *http.Request) {
	catalog := frequency.Catalog()
	out := make([]FrequencyDTO, 0, len(catalog))
	for _, f := range catalog {
		out = append(out, toFrequencyDTO(f))
	}
	writeJSON(w, http.StatusOK, out)
}

// ResolveFrequency resolves a specification without computing anything.
func (h *Handler) ResolveFrequency(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("malformed request body: %w", err))
		return
	}
	spec, err := decodeSpec(req.Spec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, err := frequency.Resolve(spec)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, toFrequencyDTO(f))
}

// Compute runs one resample computation and records it.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("malformed request body: %w", err))
		return
	}

	s, err := seriesFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	spec, err := decodeSpec(req.Spec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	reducer, err := reducerFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := indices.Compute(s, spec, reducer)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	run := sqlite.Run{
		ID:          uuid.NewString(),
		Spec:        string(req.Spec),
		Frequency:   result.Frequency.Description(),
		Rule:        result.Frequency.BaseRule,
		Reducer:     reducer.Name,
		SeriesName:  s.Name,
		Calendar:    string(s.Kind()),
		PeriodCount: result.Series.Len(),
		CreatedAt:   time.Now(),
	}
	if err := h.Store.Append(r.Context(), run); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := ComputeResponse{
		RunID:     run.ID,
		Frequency: toFrequencyDTO(result.Frequency),
		Values:    result.Series.Values,
	}
	for _, t := range result.Series.Times {
		resp.Times = append(resp.Times, t.String())
	}
	for _, b := range result.Bounds {
		resp.Bounds = append(resp.Bounds, [2]string{b.Start.String(), b.End.String()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListRuns returns recorded computations, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunDTO(run))
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// REQUEST DECODING
// =============================================================================

func decodeSpec(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing frequency specification")
	}
	var spec any
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("malformed frequency specification: %w", err)
	}
	return spec, nil
}

func seriesFromRequest(req ComputeRequest) (*series.Series, error) {
	kind := calendar.Kind(req.Calendar)
	if req.Calendar == "" {
		kind = calendar.Standard
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown calendar %q", req.Calendar)
	}
	times := make([]calendar.Date, 0, len(req.Times))
	for _, ts := range req.Times {
		d, err := calendar.Parse(kind, ts)
		if err != nil {
			return nil, err
		}
		times = append(times, d)
	}
	return series.New(req.Name, req.Units, times, req.Values)
}

func reducerFromRequest(req ComputeRequest) (indices.Reducer, error) {
	if req.Threshold != nil {
		return indices.SpellAbove(*req.Threshold), nil
	}
	return indices.ByName(req.Reducer)
}

// =============================================================================
// RESPONSES
// =============================================================================

func statusFor(err error) int {
	if errors.Is(err, frequency.ErrInvalidSpec) || errors.Is(err, calendar.ErrInvalidDate) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
