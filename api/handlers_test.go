package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store"
	"github.com/warp/schedule-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, store.ScheduleStore) {
	t.Helper()

	st := memory.New()
	handler, err := NewHandler(st, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, handler.Load(context.Background()))

	server := httptest.NewServer(NewRouter(handler, []string{"*"}))
	t.Cleanup(server.Close)
	return server, st
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func putJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func validEdit() schedule.EditSchedule {
	return schedule.EditSchedule{
		Timezone: "Europe/Stockholm",
		Weekly: []schedule.WeeklyRecord{
			{
				Name: "Shop hours",
				Days: []schedule.Weekday{schedule.Monday, schedule.Tuesday},
				Slots: []schedule.Slot{
					{Start: "08:00", End: "16:00", Action: schedule.OutcomeAllow},
				},
				ClosedAction: schedule.OutcomeDeny,
			},
		},
		RecurringHolidays: []schedule.Holiday{},
		DateRanges:        []schedule.Holiday{},
		SingleDates:       []schedule.Holiday{},
	}
}

// =============================================================================
// SCHEDULE DOCUMENTS
// =============================================================================

func TestGetScheduleV2_SeededDefault(t *testing.T) {
	server, _ := newTestServer(t)

	var sched schedule.Schedule
	resp := getJSON(t, server.URL+"/api/schedule/v2", &sched)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Europe/London", sched.Timezone)
	assert.Len(t, sched.ExitOutcomes, 9)
	assert.NotEmpty(t, sched.Rules)
}

func TestPutSchedule_ReplacesAndResolves(t *testing.T) {
	server, _ := newTestServer(t)

	resp := putJSON(t, server.URL+"/api/schedule", validEdit(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 2026-08-24 is a Monday; the new weekly record claims it.
	var day DayDTO
	getJSON(t, server.URL+"/api/resolve?date=2026-08-24", &day)
	assert.True(t, day.Matched)
	assert.Equal(t, "Shop hours", day.RuleName)
	require.Len(t, day.Slots, 1)
	assert.Equal(t, "08:00", day.Slots[0].Start)

	// Wednesday is no longer claimed.
	getJSON(t, server.URL+"/api/resolve?date=2026-08-26", &day)
	assert.False(t, day.Matched)
	assert.Equal(t, schedule.OutcomeDeny, day.ClosedAction)
}

func TestPutSchedule_PersistsToStore(t *testing.T) {
	server, st := newTestServer(t)

	putJSON(t, server.URL+"/api/schedule", validEdit(), nil)

	stored, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Europe/Stockholm", stored.Timezone)
}

func TestPutSchedule_ValidationFailure(t *testing.T) {
	server, _ := newTestServer(t)

	invalid := validEdit()
	invalid.Weekly[0].Slots = []schedule.Slot{
		{Start: "09:00", End: "17:00", Action: schedule.OutcomeAllow},
		{Start: "16:00", End: "20:00", Action: schedule.OutcomeAllow},
	}

	var body ValidationErrorResponse
	resp := putJSON(t, server.URL+"/api/schedule", invalid, &body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Len(t, body.Issues, 1)
	assert.Equal(t, "slot-overlap", body.Issues[0].Code)
	assert.Equal(t, "days[0]", body.Issues[0].Where)
}

func TestPutSchedule_InvalidTimezone(t *testing.T) {
	server, _ := newTestServer(t)

	invalid := validEdit()
	invalid.Timezone = "Mars/Olympus_Mons"

	var body ErrorResponse
	resp := putJSON(t, server.URL+"/api/schedule", invalid, &body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "timezone-invalid", body.Code)
}

func TestPutScheduleV2_NormalizesLegacyReferences(t *testing.T) {
	server, _ := newTestServer(t)

	raw := map[string]any{
		"timezone":     "Europe/London",
		"exitOutcomes": []any{},
		"rules": []any{
			map[string]any{
				"id": "a", "name": "Weekdays", "scope": "weekly", "priority": 0,
				"appliesOn":     map[string]any{"weekdays": []string{"monday"}},
				"slots":         []any{map[string]any{"start": "09:00", "end": "17:00", "action": "allow"}},
				"defaultClosed": map[string]any{"action": "deny"},
			},
		},
	}

	var sched schedule.Schedule
	resp := putJSON(t, server.URL+"/api/schedule/v2", raw, &sched)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, schedule.OutcomeAllow, sched.Rules[0].Slots[0].Action)
	assert.Equal(t, schedule.OutcomeDeny, sched.Rules[0].DefaultClosed.Action)
}

func TestGetScheduleV1_SevenDays(t *testing.T) {
	server, _ := newTestServer(t)

	var v1 schedule.ScheduleV1
	resp := getJSON(t, server.URL+"/api/schedule/v1", &v1)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, v1.Days, 7)
	assert.Equal(t, schedule.Monday, v1.Days[0].Day)
	assert.True(t, v1.Days[0].Enabled, "default schedule opens Monday")
	assert.False(t, v1.Days[6].Enabled, "default schedule closes Sunday")
}

// =============================================================================
// OUTCOME REGISTRY
// =============================================================================

func TestPutOutcomes_EditsSurviveNormalization(t *testing.T) {
	server, _ := newTestServer(t)

	edited := []schedule.OutcomeDefinition{
		{ID: schedule.OutcomeDeny, Name: "Blocked", Color: "#000000"},
	}

	var out []schedule.OutcomeDefinition
	resp := putJSON(t, server.URL+"/api/outcomes", edited, &out)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out, 9, "registry always holds the canonical set")
	for _, def := range out {
		if def.ID == schedule.OutcomeDeny {
			assert.Equal(t, "Blocked", def.Name)
		}
	}

	var again []schedule.OutcomeDefinition
	getJSON(t, server.URL+"/api/outcomes", &again)
	assert.Equal(t, out, again)
}

// =============================================================================
// RESOLUTION AND CALENDAR VIEWS
// =============================================================================

func TestGetResolve_AcceptsDisplayFormat(t *testing.T) {
	server, _ := newTestServer(t)

	var day DayDTO
	resp := getJSON(t, server.URL+"/api/resolve?date=24.08.2026", &day)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-08-24", day.Date)
	assert.Equal(t, "24.08.2026", day.DisplayDate)
	assert.Equal(t, "Monday", day.WeekdayLabel)
}

func TestGetResolve_MalformedDate(t *testing.T) {
	server, _ := newTestServer(t)

	var body ErrorResponse
	resp := getJSON(t, server.URL+"/api/resolve?date=2026-02-30", &body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body.Error)
}

func TestGetWeek_StartsOnMonday(t *testing.T) {
	server, _ := newTestServer(t)

	// 2026-08-26 is a Wednesday; its week starts 2026-08-24.
	var week WeekDTO
	resp := getJSON(t, server.URL+"/api/week?start=2026-08-26", &week)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-08-24", week.Start)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "2026-08-24", week.Days[0].Date)
	assert.Equal(t, "2026-08-30", week.Days[6].Date)
}

func TestGetMonth_FortyTwoCellGrid(t *testing.T) {
	server, _ := newTestServer(t)

	// August 2026 starts on a Saturday, so the grid opens on July 27.
	var month MonthDTO
	resp := getJSON(t, server.URL+"/api/month?month=2026-08", &month)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-08", month.Month)
	require.Len(t, month.Cells, 42)
	assert.Equal(t, "2026-07-27", month.Cells[0].Date)
	assert.False(t, month.Cells[0].InCurrentMonth)

	inMonth := 0
	for _, cell := range month.Cells {
		if cell.InCurrentMonth {
			inMonth++
		}
	}
	assert.Equal(t, 31, inMonth)
}

func TestGetMonth_MalformedMonth(t *testing.T) {
	server, _ := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/month?month=August", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSummary_DefaultWeek(t *testing.T) {
	server, _ := newTestServer(t)

	var summary schedule.RangeSummary
	resp := getJSON(t, server.URL+"/api/summary?from=2026-08-24&days=7", &summary)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 7, summary.Days)
	assert.True(t, decimal.NewFromInt(44).Equal(summary.TotalOpenHours),
		"stock week totals 44 open hours, got %s", summary.TotalOpenHours)
	require.Len(t, summary.PerDay, 7)
}

func TestGetSummary_RejectsBadDayCount(t *testing.T) {
	server, _ := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/summary?days=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = getJSON(t, server.URL+"/api/summary?days=400", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// HOLIDAY TEMPLATES
// =============================================================================

func TestGetTemplates_WithExampleDates(t *testing.T) {
	server, _ := newTestServer(t)

	var templates []TemplateDTO
	resp := getJSON(t, server.URL+"/api/templates?year=2026", &templates)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, templates, 4)

	byID := map[string]TemplateDTO{}
	for _, template := range templates {
		byID[template.ID] = template
	}
	assert.Equal(t, "2026-12-25", byID["christmas-day"].ExampleDate)
	assert.Equal(t, "2026-04-05", byID["easter-sunday"].ExampleDate)
	assert.Equal(t, "2026-06-20", byID["swedish-midsummer-day"].ExampleDate)
}

func TestGetTemplate_Unknown(t *testing.T) {
	server, _ := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/templates/festivus", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
