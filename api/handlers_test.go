package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/climate-engine/api"
	"github.com/warp/climate-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(api.NewRouter(api.NewHandler(store)))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// dailyTimes renders every day of [from, to] as "YYYY-MM-DD" strings.
func dailyTimes(from, to time.Time) []string {
	var out []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

// =============================================================================
// FREQUENCIES
// =============================================================================

func TestListFrequencies_ReturnsTheCatalog(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/frequencies")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []api.FrequencyDTO
	decodeBody(t, resp, &out)
	require.Len(t, out, 10)

	names := make(map[string]api.FrequencyDTO)
	for _, f := range out {
		names[f.Name] = f
	}
	assert.Equal(t, "YS-DEC", names["DJF"].BaseRule)
	assert.True(t, names["DJF"].Windowed)
	assert.False(t, names["DJF"].Clipped)
	assert.Equal(t, "monthly", names["MONTH"].Description)
}

func TestResolveFrequency_AliasAndKeywordForms(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/frequencies/resolve", api.ResolveRequest{
		Spec: json.RawMessage(`"djf"`),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var f api.FrequencyDTO
	decodeBody(t, resp, &f)
	assert.Equal(t, "DJF", f.Name)

	resp = postJSON(t, srv.URL+"/api/frequencies/resolve", api.ResolveRequest{
		Spec: json.RawMessage(`["clipped_season", [6, 7, 8]]`),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &f)
	assert.True(t, f.Clipped)
	assert.False(t, f.Windowed)
	assert.Equal(t, "YS-JUN", f.BaseRule)
}

func TestResolveFrequency_RejectsBadSpecs(t *testing.T) {
	srv := newTestServer(t)

	for _, spec := range []string{`"fortnightly-ish"`, `["season", [1, 3, 2]]`, `["season", [13]]`, `42`} {
		resp := postJSON(t, srv.URL+"/api/frequencies/resolve", api.ResolveRequest{
			Spec: json.RawMessage(spec),
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "spec %s", spec)
		resp.Body.Close()
	}
}

// =============================================================================
// COMPUTE
// =============================================================================

func TestCompute_MonthlyBoundsAndRunRecording(t *testing.T) {
	srv := newTestServer(t)

	times := dailyTimes(
		time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2001, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	values := make([]float64, len(times))
	for i := range values {
		values[i] = 1
	}

	resp := postJSON(t, srv.URL+"/api/compute", api.ComputeRequest{
		Name:    "pr",
		Units:   "mm",
		Times:   times,
		Values:  values,
		Spec:    json.RawMessage(`"month"`),
		Reducer: "sum",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.ComputeResponse
	decodeBody(t, resp, &out)
	require.Len(t, out.Times, 3)
	require.Len(t, out.Bounds, 3)
	assert.Equal(t, [2]string{"2001-01-01", "2001-01-31"}, out.Bounds[0])
	assert.Equal(t, float64(31), out.Values[0])
	assert.NotEmpty(t, out.RunID)

	// The computation is recorded.
	listResp, err := http.Get(srv.URL + "/api/runs")
	require.NoError(t, err)
	var runs []api.RunDTO
	decodeBody(t, listResp, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, out.RunID, runs[0].ID)
	assert.Equal(t, "sum", runs[0].Reducer)
	assert.Equal(t, "MS", runs[0].Rule)
	assert.Equal(t, 3, runs[0].PeriodCount)
}

func TestCompute_FixedCalendarSeason(t *testing.T) {
	srv := newTestServer(t)

	// A noleap year of daily data, DJF season.
	var times []string
	var values []float64
	noleapMonths := []int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for y := 2000; y <= 2001; y++ {
		for m := 1; m <= 12; m++ {
			for d := 1; d <= noleapMonths[m-1]; d++ {
				times = append(times, timeString(y, m, d))
				values = append(values, 1)
			}
		}
	}

	resp := postJSON(t, srv.URL+"/api/compute", api.ComputeRequest{
		Name:     "tas",
		Calendar: "noleap",
		Times:    times,
		Values:   values,
		Spec:     json.RawMessage(`["season", [12, 1, 2]]`),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.ComputeResponse
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.Bounds)
	// The season starting Dec 2000 ends on noleap Feb 28.
	found := false
	for _, b := range out.Bounds {
		if b[0] == "2000-12-01" {
			assert.Equal(t, "2001-02-28", b[1])
			found = true
		}
	}
	assert.True(t, found, "no DJF period starting 2000-12-01 in %v", out.Bounds)
}

func TestCompute_RejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)

	// Invalid date for the requested calendar.
	resp := postJSON(t, srv.URL+"/api/compute", api.ComputeRequest{
		Calendar: "noleap",
		Times:    []string{"2001-02-29"},
		Values:   []float64{1},
		Spec:     json.RawMessage(`"month"`),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown reducer.
	resp = postJSON(t, srv.URL+"/api/compute", api.ComputeRequest{
		Times:   []string{"2001-01-01"},
		Values:  []float64{1},
		Spec:    json.RawMessage(`"month"`),
		Reducer: "mode",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown calendar.
	resp = postJSON(t, srv.URL+"/api/compute", api.ComputeRequest{
		Calendar: "martian",
		Times:    []string{"2001-01-01"},
		Values:   []float64{1},
		Spec:     json.RawMessage(`"month"`),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func timeString(y, m, d int) string {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
