package bulk_update

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbees/BB-CalendarService/internal/api/middleware"
	bulkUpdate "github.com/bedbees/BB-CalendarService/internal/usecase/bulk_update"
)

type fakeUseCase struct {
	resp *bulkUpdate.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *bulkUpdate.Request) (*bulkUpdate.Response, error) {
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newRouter(useCase BulkUpdateUseCase) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/listings/{listingId}/calendar/bulk",
		NewHandler(useCase, noopLogger{}).Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/listings/1/calendar/bulk", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "10")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandle_AllApplied(t *testing.T) {
	router := newRouter(&fakeUseCase{
		resp: &bulkUpdate.Response{
			UpdatedDates: []string{"2025-10-01", "2025-10-02"},
			Errors:       []bulkUpdate.ItemError{},
		},
	})

	recorder := doRequest(t, router,
		`{"from":"2025-10-01","to":"2025-10-02","updates":{"status":"CLOSED"}}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

// Частичный отказ возвращает 207: часть дат применена, отклоненные пары
// перечислены в errors
func TestHandle_PartialFailureStatus(t *testing.T) {
	router := newRouter(&fakeUseCase{
		resp: &bulkUpdate.Response{
			UpdatedDates: []string{"2025-10-01", "2025-10-02", "2025-10-03"},
			Errors: []bulkUpdate.ItemError{
				{Date: "2025-10-02", RoomTypeID: 101, Error: "cannot reduce units_open below 3 booked units"},
			},
		},
	})

	recorder := doRequest(t, router,
		`{"from":"2025-10-01","to":"2025-10-03","updates":{"unitsOpen":2}}`)

	assert.Equal(t, http.StatusMultiStatus, recorder.Code)

	var body bulkUpdate.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.UpdatedDates, 3)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "2025-10-02", body.Errors[0].Date)
	assert.Equal(t, int64(101), body.Errors[0].RoomTypeID)
}

func TestHandle_InvalidExpression(t *testing.T) {
	router := newRouter(&fakeUseCase{})

	recorder := doRequest(t, router,
		`{"from":"2025-10-01","to":"2025-10-03","updates":{"unitsOpen":"150%"}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandle_MissingUserID(t *testing.T) {
	router := newRouter(&fakeUseCase{})

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/listings/1/calendar/bulk",
		bytes.NewBufferString(`{"from":"2025-10-01","to":"2025-10-02","updates":{"status":"CLOSED"}}`))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
