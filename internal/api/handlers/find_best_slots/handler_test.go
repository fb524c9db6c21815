package find_best_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	findBestSlots "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/find_best_slots"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopMetrics struct{}

func (nopMetrics) ObserveEngine(string, time.Duration) {}

type fakeUseCase struct {
	req  *findBestSlots.Request
	resp *findBestSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *findBestSlots.Request) (*findBestSlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/slots/best", h.HandleInline).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/days/{date}/slots", h.HandleByDate).Methods(http.MethodGet)
	return r
}

func TestHandleInline_EndToEnd(t *testing.T) {
	uc := findBestSlots.NewUseCase(nil, slotengine.NewEngine(slotengine.Options{}), slotengine.DefaultParams(), nopMetrics{}, nopLogger{})
	router := newRouter(NewHandler(uc, nopLogger{}))

	body := `{
		"duration": 90,
		"minGapMinutes": 60,
		"bookings": [
			{"id": "1", "therapistId": "A", "startTime": "09:00", "endTime": "10:00"},
			{"id": "2", "therapistId": "A", "startTime": "12:00", "endTime": "14:00"},
			{"id": "3", "therapistId": "A", "startTime": "15:30", "durationMinutes": 45}
		]
	}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slots/best", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp FindBestSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Date)
	assert.Equal(t, 90, resp.DurationMinutes)
	require.Len(t, resp.Therapists, 1)

	best := resp.Therapists[0].BestSlots
	assert.Equal(t, "A", resp.Therapists[0].TherapistID)
	assert.Equal(t, []string{"10:00", "10:30", "14:00", "16:15", "16:30"}, best.Strict)
	assert.Equal(t, []string{}, best.Soft)
	assert.Equal(t, []string{"10:15"}, best.Bad)
	assert.Equal(t, "Leaves unusable gaps: 15 min before, 15 min after.", best.BadReasons["10:15"])
}

func TestHandleInline_InvalidTimeNamesValue(t *testing.T) {
	uc := findBestSlots.NewUseCase(nil, slotengine.NewEngine(slotengine.Options{}), slotengine.DefaultParams(), nopMetrics{}, nopLogger{})
	router := newRouter(NewHandler(uc, nopLogger{}))

	body := `{"duration": 60, "bookings": [{"id": "1", "therapistId": "A", "startTime": "9.00", "endTime": "10:00"}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slots/best", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "9.00")
}

func TestHandleByDate_BuildsRequest(t *testing.T) {
	uc := &fakeUseCase{resp: &findBestSlots.Response{
		Date:            time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Therapists:      []findBestSlots.TherapistSlots{{TherapistID: "A"}},
	}}
	router := newRouter(NewHandler(uc, nopLogger{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/days/2025-03-10/slots?duration=60&therapistId=A&minGap=30&dayStart=09:00", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, 2025, uc.req.Date.Year())
	assert.Nil(t, uc.req.Bookings)
	assert.Equal(t, 30, uc.req.Params.MinGapMinutes)
	assert.Equal(t, types.TimeString("09:00"), uc.req.Params.DayStart)

	target, ok := uc.req.Target.(domain.NewSlotRequest)
	require.True(t, ok)
	assert.Equal(t, 60, target.DurationMinutes)
	assert.Equal(t, "A", *target.TherapistID)

	var resp FindBestSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, []string{}, resp.Therapists[0].BestSlots.Strict)
}

func TestHandleByDate_EditTarget(t *testing.T) {
	uc := &fakeUseCase{resp: &findBestSlots.Response{}}
	router := newRouter(NewHandler(uc, nopLogger{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/days/2025-03-10/slots?editBookingId=a1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.EditBookingRequest{BookingID: "a1"}, uc.req.Target)
}

func TestHandleByDate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		ucErr      error
		wantStatus int
	}{
		{name: "bad date", url: "/api/v1/days/10-03-2025/slots?duration=60", wantStatus: http.StatusBadRequest},
		{name: "bad duration", url: "/api/v1/days/2025-03-10/slots?duration=long", wantStatus: http.StatusBadRequest},
		{name: "missing duration", url: "/api/v1/days/2025-03-10/slots", wantStatus: http.StatusBadRequest},
		{name: "bad min gap", url: "/api/v1/days/2025-03-10/slots?duration=60&minGap=x", wantStatus: http.StatusBadRequest},
		{name: "invalid input", url: "/api/v1/days/2025-03-10/slots?duration=60", ucErr: findBestSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "booking not found", url: "/api/v1/days/2025-03-10/slots?editBookingId=zz", ucErr: findBestSlots.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "therapist not found", url: "/api/v1/days/2025-03-10/slots?duration=60&therapistId=Z", ucErr: findBestSlots.ErrTherapistNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", url: "/api/v1/days/2025-03-10/slots?duration=60", ucErr: fmt.Errorf("%w: db", findBestSlots.ErrInternal), wantStatus: http.StatusInternalServerError},
		{name: "unexpected", url: "/api/v1/days/2025-03-10/slots?duration=60", ucErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{resp: &findBestSlots.Response{}, err: tt.ucErr}
			router := newRouter(NewHandler(uc, nopLogger{}))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleInline_InvalidBody(t *testing.T) {
	router := newRouter(NewHandler(&fakeUseCase{}, nopLogger{}))

	for _, body := range []string{`{`, `{"duration": "ninety"}`, `{"duration": 60, "unknown": true}`} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slots/best", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
