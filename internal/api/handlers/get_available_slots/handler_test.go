package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-MentorBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MentorBookingService/pkg/logger"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/mentors/7/available-slots?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"mentorId": "7"})
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		MentorID:        7,
		Timezone:        "Europe/Moscow",
		DurationMinutes: 30,
		Slots:           []types.TimeOfDay{types.MustTimeOfDay("09:00"), types.MustTimeOfDay("09:30")},
	}}

	rec := serve(uc, "date=2025-03-10&duration=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.got.MentorID)
	assert.JSONEq(t, `{
		"date": "2025-03-10",
		"mentorId": 7,
		"timezone": "Europe/Moscow",
		"durationMinutes": 30,
		"slots": ["09:00", "09:30"]
	}`, rec.Body.String())
}

func TestHandle_EmptySlotsIsArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), MentorID: 7}}

	rec := serve(uc, "date=2025-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "date=tomorrow").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{err: getAvailableSlots.ErrInvalidDate}, "date=2020-01-01").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeUseCase{err: getAvailableSlots.ErrMentorNotFound}, "date=2025-03-10").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeUseCase{err: getAvailableSlots.ErrInternal}, "date=2025-03-10").Code)
}
