package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/roster-engine/api"
	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/roster/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	log := logrus.New()
	log.SetOutput(io.Discard)

	engine := roster.NewEngine(mem, mem, mem, log)
	handler := api.NewHandler(engine, log)
	srv := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv, mem
}

func doJSON(t *testing.T, method, url string, tenant string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

// =============================================================================
// TENANT MIDDLEWARE
// =============================================================================

func TestAPI_MissingTenantHeader_Rejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/personnel", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "X-Tenant-ID")
}

// =============================================================================
// LEAVE LIFECYCLE
// =============================================================================

func TestAPI_CreateLeave_ExpandsAndSyncs(t *testing.T) {
	srv, mem := newTestServer(t)
	mem.AddPersonnel(roster.Personnel{ID: "p-1", TenantID: "acme", Name: "Guard One"})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/leaves", "acme", map[string]any{
		"personnel_id": "p-1",
		"leave_type":   "annual_leave",
		"start_date":   "2024-03-01",
		"end_date":     "2024-03-03",
		"schedule_id":  "sched-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	leave := body["leave"].(map[string]any)
	days := leave["days"].([]any)
	assert.Len(t, days, 3)
	assert.Equal(t, "3", leave["total_days"])

	// The sync ran: the roster shows three placeholders.
	resp, window := doJSON(t, http.MethodGet,
		srv.URL+"/api/schedules/sched-1/assignments?from=2024-03-01&to=2024-03-31", "acme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, window["assignments"].([]any), 3)
}

func TestAPI_CreateLeave_BadPayload_Rejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/leaves", "acme", map[string]any{
		"personnel_id": "p-1",
		"leave_type":   "annual_leave",
		"start_date":   "03/01/2024", // wrong format
		"end_date":     "2024-03-03",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAPI_GetLeave_ShowsDaySet(t *testing.T) {
	srv, _ := newTestServer(t)

	_, created := doJSON(t, http.MethodPost, srv.URL+"/api/leaves", "acme", map[string]any{
		"personnel_id": "p-1",
		"leave_type":   "sick_leave",
		"start_date":   "2024-03-01",
		"end_date":     "2024-03-02",
	})
	leaveID := created["leave"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/leaves/"+leaveID, "acme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sick_leave", body["leave_type"])
	assert.Len(t, body["days"].([]any), 2)
}

func TestAPI_GetLeave_WrongTenant_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	_, created := doJSON(t, http.MethodPost, srv.URL+"/api/leaves", "acme", map[string]any{
		"personnel_id": "p-1",
		"leave_type":   "annual_leave",
		"start_date":   "2024-03-01",
		"end_date":     "2024-03-02",
	})
	leaveID := created["leave"].(map[string]any)["id"].(string)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/leaves/"+leaveID, "rival", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// REPLACEMENT FLOW
// =============================================================================

func TestAPI_AssignReplacement_JokerFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	_, created := doJSON(t, http.MethodPost, srv.URL+"/api/leaves", "acme", map[string]any{
		"personnel_id": "p-1",
		"leave_type":   "annual_leave",
		"start_date":   "2024-03-01",
		"end_date":     "2024-03-03",
		"schedule_id":  "sched-1",
	})
	days := created["leave"].(map[string]any)["days"].([]any)
	firstDayID := days[0].(map[string]any)["id"].(string)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/replacements", "acme", map[string]any{
		"leave_day_id":     firstDayID,
		"replacement_type": "joker",
		"joker":            map[string]any{"name": "Ayşe Demir", "phone": "5551112233"},
		"schedule_id":      "sched-1",
		"start_date":       "2024-03-01",
		"end_date":         "2024-03-02",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "Ayşe Demir")

	// The lazily created joker is now listed.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/jokers", "acme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A second call for an overlapping span conflicts.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/replacements", "acme", map[string]any{
		"leave_day_id":     firstDayID,
		"replacement_type": "joker",
		"joker":            map[string]any{"name": "Hasan Demir"},
		"schedule_id":      "sched-1",
		"start_date":       "2024-03-02",
		"end_date":         "2024-03-03",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAPI_AssignReplacement_MissingTarget_Rejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/replacements", "acme", map[string]any{
		"leave_day_id":     "whatever",
		"replacement_type": "joker",
		"schedule_id":      "sched-1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// PERIOD VALIDATION ENDPOINT
// =============================================================================

func TestAPI_ValidatePeriod(t *testing.T) {
	srv, _ := newTestServer(t)
	url := srv.URL + "/api/replacements/validate"

	cases := []struct {
		name   string
		period map[string]string
		others []map[string]string
		valid  bool
	}{
		{
			name:   "overlap rejected",
			period: map[string]string{"start_date": "2024-01-14", "end_date": "2024-01-20"},
			others: []map[string]string{{"start_date": "2024-01-10", "end_date": "2024-01-15"}},
			valid:  false,
		},
		{
			name:   "adjacent accepted",
			period: map[string]string{"start_date": "2024-01-16", "end_date": "2024-01-20"},
			others: []map[string]string{{"start_date": "2024-01-10", "end_date": "2024-01-15"}},
			valid:  true,
		},
		{
			name:   "out of bounds rejected",
			period: map[string]string{"start_date": "2023-12-30", "end_date": "2024-01-05"},
			valid:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, url, "acme", map[string]any{
				"period":        tc.period,
				"other_periods": tc.others,
				"leave_start":   "2024-01-01",
				"leave_end":     "2024-01-31",
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.valid, body["valid"], fmt.Sprintf("reason: %v", body["reason"]))
		})
	}
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

func TestAPI_CreateAndListJokers(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/jokers", "acme", map[string]any{
		"name": "Hasan Demir", "company": "Acme Security",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/jokers", nil)
	require.NoError(t, err)
	req.Header.Set("X-Tenant-ID", "acme")
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()

	var jokers []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&jokers))
	require.Len(t, jokers, 1)
	assert.Equal(t, "Hasan Demir", jokers[0]["name"])
}
