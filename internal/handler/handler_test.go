package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	"github.com/noah-isme/roster-availability-api/internal/service"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

type patternServiceMock struct {
	pattern *models.WeeklyPattern
	err     error
	saved   *dto.SaveWeeklyPatternRequest
}

func (m *patternServiceMock) GetOrInit(ctx context.Context, traderID int64) (*models.WeeklyPattern, error) {
	return m.pattern, m.err
}

func (m *patternServiceMock) Save(ctx context.Context, traderID int64, req dto.SaveWeeklyPatternRequest) (*models.WeeklyPattern, error) {
	m.saved = &req
	return m.pattern, m.err
}

type requestServiceMock struct {
	item      *models.TraderRequest
	err       error
	createdBy string
	actor     string
	window    [2]time.Time
	deleted   int64
}

func (m *requestServiceMock) Create(ctx context.Context, traderID int64, req dto.CreateTraderRequest, createdBy string) (*models.TraderRequest, error) {
	m.createdBy = createdBy
	return m.item, m.err
}

func (m *requestServiceMock) Get(ctx context.Context, id int64) (*models.TraderRequest, error) {
	return m.item, m.err
}

func (m *requestServiceMock) Update(ctx context.Context, id int64, req dto.UpdateTraderRequest) (*models.TraderRequest, error) {
	return m.item, m.err
}

func (m *requestServiceMock) Approve(ctx context.Context, id int64, actor string) (*models.TraderRequest, error) {
	m.actor = actor
	return m.item, m.err
}

func (m *requestServiceMock) Reject(ctx context.Context, id int64, actor string) (*models.TraderRequest, error) {
	m.actor = actor
	return m.item, m.err
}

func (m *requestServiceMock) Delete(ctx context.Context, id int64) error {
	m.deleted = id
	return m.err
}

func (m *requestServiceMock) ListForTrader(ctx context.Context, traderID int64) ([]models.TraderRequest, error) {
	return nil, m.err
}

func (m *requestServiceMock) ListApprovedInWindow(ctx context.Context, traderID int64, start, end time.Time) ([]models.TraderRequest, error) {
	m.window = [2]time.Time{start, end}
	return []models.TraderRequest{}, m.err
}

func (m *requestServiceMock) ListAll(ctx context.Context) ([]models.TraderRequestWithTrader, error) {
	return nil, m.err
}

type preferenceServiceMock struct {
	weight int
	err    error
}

func (m *preferenceServiceMock) GetDaysOffGrouping(ctx context.Context, traderID int64) (int, error) {
	return m.weight, m.err
}

func (m *preferenceServiceMock) SetDaysOffGrouping(ctx context.Context, traderID int64, req dto.SetDaysOffPreferenceRequest) (int, error) {
	if req.Weight != nil {
		m.weight = *req.Weight
	}
	return m.weight, m.err
}

func (m *preferenceServiceMock) DaysOffSummary(ctx context.Context) ([]models.DaysOffSummaryRow, error) {
	return []models.DaysOffSummaryRow{}, m.err
}

type availabilityServiceMock struct {
	week      *models.WeekAvailability
	err       error
	weekStart time.Time
	shifts    []models.ShiftType
}

func (m *availabilityServiceMock) ResolveWeek(ctx context.Context, traderID int64, weekStart time.Time, shiftTypes []models.ShiftType) (*models.WeekAvailability, error) {
	m.weekStart, m.shifts = weekStart, shiftTypes
	return m.week, m.err
}

func (m *availabilityServiceMock) ResolveCohortWeek(ctx context.Context, weekStart time.Time, shiftTypes []models.ShiftType) (map[int64]*models.WeekAvailability, error) {
	if m.err != nil {
		return nil, m.err
	}
	return map[int64]*models.WeekAvailability{m.week.TraderID: m.week}, nil
}

type reportServiceMock struct {
	rows     []models.DailyResourceRow
	location string
}

func (m *reportServiceMock) Report(ctx context.Context, date time.Time, location string) ([]models.DailyResourceRow, error) {
	m.location = location
	return m.rows, nil
}

type exportServiceMock struct {
	format string
}

func (m *exportServiceMock) ExportDaily(ctx context.Context, date time.Time, location, format string) (*service.ExportResult, error) {
	m.format = format
	if format == "docx" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	return &service.ExportResult{Filename: "daily.csv", ContentType: "text/csv; charset=utf-8", Payload: []byte("a,b\n")}, nil
}

type mocks struct {
	patterns     *patternServiceMock
	requests     *requestServiceMock
	preferences  *preferenceServiceMock
	availability *availabilityServiceMock
	reports      *reportServiceMock
	exports      *exportServiceMock
}

func newTestRouter(t *testing.T, exports bool) (*gin.Engine, *mocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := &mocks{
		patterns:     &patternServiceMock{pattern: &models.WeeklyPattern{TraderID: 1}},
		requests:     &requestServiceMock{item: &models.TraderRequest{ID: 5, TraderID: 1, Kind: models.RequestKindIn}},
		preferences:  &preferenceServiceMock{},
		availability: &availabilityServiceMock{week: sampleWeek()},
		reports:      &reportServiceMock{rows: []models.DailyResourceRow{{TraderID: 1, Name: "Ana", Location: "LDN", Status: models.DailyStatusNeutral}}},
		exports:      &exportServiceMock{},
	}
	metrics := service.NewMetricsService()
	r := NewRouter(RouterOptions{APIPrefix: "/api/v1", EnableMetrics: true, EnableExports: exports}, Handlers{
		Patterns:     NewWeeklyPatternHandler(m.patterns),
		Requests:     NewTraderRequestHandler(m.requests),
		Preferences:  NewPreferenceHandler(m.preferences),
		Availability: NewAvailabilityHandler(m.availability, time.UTC),
		Reports:      NewReportHandler(m.reports, m.exports, time.UTC),
		Ops:          NewMetricsHandler(metrics, nil),
	}, nil, metrics)
	return r, m
}

func sampleWeek() *models.WeekAvailability {
	dates := models.WeekDates(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	slots := make(map[models.SlotKey]models.AvailabilitySlot)
	for _, d := range dates {
		slots[models.SlotKey{Date: d, ShiftType: models.ShiftFull}] = models.AvailabilitySlot{Status: models.AvailabilityAvailable, Weight: 1}
	}
	slots[models.SlotKey{Date: dates[4], ShiftType: models.ShiftFull}] = models.AvailabilitySlot{Status: models.AvailabilityMandatory}
	return &models.WeekAvailability{
		TraderID:   1,
		WeekStart:  dates[0],
		Dates:      dates,
		ShiftTypes: []models.ShiftType{models.ShiftFull},
		Slots:      slots,
	}
}

func do(r *gin.Engine, method, path string, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestWeeklyPatternRoutes(t *testing.T) {
	r, m := newTestRouter(t, true)

	w := do(r, http.MethodGet, "/api/v1/traders/1/weekly-pattern", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/api/v1/traders/1/weekly-pattern", `{"cells":[{"day_of_week":0,"shift_type":"FULL","hard_block":true}]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, m.patterns.saved)
	require.Len(t, m.patterns.saved.Cells, 1)
	assert.Equal(t, 0, *m.patterns.saved.Cells[0].DayOfWeek)

	w = do(r, http.MethodGet, "/api/v1/traders/abc/weekly-pattern", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.patterns.err = appErrors.Clone(appErrors.ErrNotFound, "trader not found")
	w = do(r, http.MethodGet, "/api/v1/traders/9/weekly-pattern", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
}

func TestTraderRequestRoutes(t *testing.T) {
	r, m := newTestRouter(t, true)

	w := do(r, http.MethodPost, "/api/v1/traders/1/requests", `{"request_kind":"REQUEST_IN","date_from":"2024-06-05"}`, "X-Actor", "ana")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ana", m.requests.createdBy)

	w = do(r, http.MethodPost, "/api/v1/traders/1/requests", `{"request_kind":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/requests/5/approve", `{"actor":"lead"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lead", m.requests.actor)

	w = do(r, http.MethodPost, "/api/v1/requests/5/reject", `{"actor":"boss"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "boss", m.requests.actor)

	w = do(r, http.MethodGet, "/api/v1/traders/1/requests/approved?from=2024-06-03&to=2024-06-09", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), m.requests.window[1])

	w = do(r, http.MethodGet, "/api/v1/traders/1/requests/approved?from=2024-06-03", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/requests/5", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(5), m.requests.deleted)

	for _, path := range []string{"/api/v1/requests", "/api/v1/requests/5", "/api/v1/traders/1/requests"} {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, path, "").Code, path)
	}
	assert.Equal(t, http.StatusOK, do(r, http.MethodPatch, "/api/v1/requests/5", `{"reason":"x"}`).Code)

	m.requests.err = appErrors.Clone(appErrors.ErrInvalidRange, "bad range")
	w = do(r, http.MethodPatch, "/api/v1/requests/5", `{"date_to":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_RANGE", decode(t, w).Error.Code)
}

func TestPreferenceRoutes(t *testing.T) {
	r, _ := newTestRouter(t, true)

	w := do(r, http.MethodPut, "/api/v1/traders/1/preferences/days-off", `{"weight":-2}`)
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.DaysOffPreferenceResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, dto.DaysOffPreferenceResponse{TraderID: 1, Weight: -2, Label: "Split"}, got)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/traders/1/preferences/days-off", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/preferences/days-off", "").Code)
}

func TestAvailabilityRoutes(t *testing.T) {
	r, m := newTestRouter(t, true)

	w := do(r, http.MethodGet, "/api/v1/traders/1/availability?week_start=2024-06-05&shift_types=full,LATE", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), m.availability.weekStart)
	assert.Equal(t, []models.ShiftType{"full", "LATE"}, m.availability.shifts)

	var week dto.WeekAvailabilityResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &week))
	assert.Equal(t, "2024-06-03", week.WeekStart)
	require.Len(t, week.Days, 7)
	assert.Equal(t, 4, week.Days[4].DayOfWeek)
	assert.Equal(t, dto.AvailabilityCell{ShiftType: "FULL", Status: "MANDATORY"}, week.Days[4].Slots[0])
	assert.Equal(t, dto.AvailabilityCell{ShiftType: "FULL", Status: "AVAILABLE", Weight: 1}, week.Days[0].Slots[0])

	w = do(r, http.MethodGet, "/api/v1/availability?week_start=2024-06-05", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cohort map[string]dto.WeekAvailabilityResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &cohort))
	assert.Contains(t, cohort, "1")

	w = do(r, http.MethodGet, "/api/v1/traders/1/availability?week_start=06/05/2024", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.availability.err = appErrors.Clone(appErrors.ErrInvalidShift, "unsupported shift type")
	w = do(r, http.MethodGet, "/api/v1/traders/1/availability?shift_types=NIGHT", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SHIFT", decode(t, w).Error.Code)
}

func TestReportRoutes(t *testing.T) {
	r, m := newTestRouter(t, true)

	w := do(r, http.MethodGet, "/api/v1/reports/daily-resources?date=2024-06-05&location=LDN", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "LDN", m.reports.location)
	assert.Equal(t, float64(1), decode(t, w).Meta["total"])

	w = do(r, http.MethodGet, "/api/v1/reports/daily-resources/export?date=2024-06-05", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", m.exports.format)
	assert.Equal(t, `attachment; filename="daily.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())

	w = do(r, http.MethodGet, "/api/v1/reports/daily-resources/export?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportsDisabled(t *testing.T) {
	r, m := newTestRouter(t, false)

	w := do(r, http.MethodGet, "/api/v1/reports/daily-resources/export?date=2024-06-05", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, m.exports.format)
}

func TestOpsRoutes(t *testing.T) {
	r, _ := newTestRouter(t, true)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ready", "").Code)
	w := do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	w = do(r, http.MethodGet, "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type failingPinger struct{}

func (failingPinger) PingContext(ctx context.Context) error { return assert.AnError }

func TestReadyFailsWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(nil, failingPinger{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	h.Ready(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
