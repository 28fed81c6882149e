/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the internal model
  from the wire contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

SPEC PAYLOADS:
  Frequency specifications travel as raw JSON and are decoded into the
  same heterogeneous shapes frequency.Resolve accepts: "DJF", "3MS",
  ["season", [12, 1, 2]], ["clipped_season", ["19 july", "14 august"]].

SEE ALSO:
  - handlers.go: uses these types
*/
package api

import (
	"encoding/json"

	"github.com/warp/climate-engine/frequency"
	"github.com/warp/climate-engine/store/sqlite"
)

// FrequencyDTO describes a resolved or catalog frequency.
type FrequencyDTO struct {
	Name        string   `json:"name,omitempty"`
	BaseRule    string   `json:"base_rule"`
	Description string   `json:"description"`
	Units       string   `json:"units"`
	Aliases     []string `json:"aliases,omitempty"`
	Windowed    bool     `json:"windowed"` // has an in-resample indexer
	Clipped     bool     `json:"clipped"`  // drops samples before resampling
}

func toFrequencyDTO(f *frequency.Frequency) FrequencyDTO {
	return FrequencyDTO{
		Name:        f.Name,
		BaseRule:    f.BaseRule,
		Description: f.Description(),
		Units:       f.Units,
		Aliases:     f.Aliases,
		Windowed:    f.Indexer != nil,
		Clipped:     f.TimeClipping != nil,
	}
}

// ResolveRequest carries a frequency specification to resolve.
type ResolveRequest struct {
	Spec json.RawMessage `json:"spec"`
}

// ComputeRequest carries a series, a specification and a reducer.
type ComputeRequest struct {
	Name     string          `json:"name"`
	Units    string          `json:"units"`
	Calendar string          `json:"calendar"` // defaults to "standard"
	Times    []string        `json:"times"`
	Values   []float64       `json:"values"`
	Spec     json.RawMessage `json:"spec"`
	Reducer  string          `json:"reducer"` // defaults to "mean"

	// Threshold selects the spell-length reducer when set; Reducer is
	// ignored in that case.
	Threshold *float64 `json:"threshold,omitempty"`
}

// ComputeResponse returns the resampled series with its bounds.
type ComputeResponse struct {
	RunID     string       `json:"run_id"`
	Frequency FrequencyDTO `json:"frequency"`
	Times     []string     `json:"times"`
	Values    []float64    `json:"values"`
	Bounds    [][2]string  `json:"bounds"`
}

// RunDTO is one recorded computation.
type RunDTO struct {
	ID          string `json:"id"`
	Spec        string `json:"spec"`
	Frequency   string `json:"frequency"`
	Rule        string `json:"rule"`
	Reducer     string `json:"reducer"`
	SeriesName  string `json:"series_name"`
	Calendar    string `json:"calendar"`
	PeriodCount int    `json:"period_count"`
	CreatedAt   string `json:"created_at"`
}

func toRunDTO(r sqlite.Run) RunDTO {
	return RunDTO{
		ID:          r.ID,
		Spec:        r.Spec,
		Frequency:   r.Frequency,
		Rule:        r.Rule,
		Reducer:     r.Reducer,
		SeriesName:  r.SeriesName,
		Calendar:    r.Calendar,
		PeriodCount: r.PeriodCount,
		CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
