package replace_availability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/availability"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/availability/models"
	"github.com/m04kA/SMC-MentorBookingService/pkg/logger"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

type fakeService struct {
	got *models.ReplaceRequest
	err error
}

func (f *fakeService) Replace(_ context.Context, req *models.ReplaceRequest) (*models.AvailabilityResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailabilityResponse{MentorID: req.MentorID, Rules: []models.RuleResponse{}}, nil
}

const validBody = `{"rules":[{"weekdays":[1,3],"startTime":"09:00","endTime":"12:30","slotGranularityMinutes":30}]}`

func serve(svc *fakeService, body string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/mentors/5/availability", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"mentorId": "5"})
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_DecodesRules(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, validBody, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.got.Rules, 1)
	rule := svc.got.Rules[0]
	assert.Equal(t, []int{1, 3}, rule.Weekdays)
	assert.Equal(t, types.MustTimeOfDay("09:00"), rule.StartTime)
	assert.Equal(t, types.MustTimeOfDay("12:30"), rule.EndTime)
	require.NotNil(t, rule.SlotGranularityMinutes)
	assert.Equal(t, 30, *rule.SlotGranularityMinutes)
	assert.Equal(t, int64(5), svc.got.UserID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		withUser bool
		err      error
		want     int
	}{
		{name: "no user", body: validBody, want: http.StatusUnauthorized},
		{name: "malformed time", body: `{"rules":[{"weekdays":[1],"startTime":"9am","endTime":"10:00"}]}`, withUser: true, want: http.StatusBadRequest},
		{name: "empty body", body: "", withUser: true, want: http.StatusBadRequest},
		{name: "other mentor", body: validBody, withUser: true, err: availability.ErrAccessDenied, want: http.StatusForbidden},
		{name: "unknown mentor", body: validBody, withUser: true, err: availability.ErrMentorNotFound, want: http.StatusNotFound},
		{name: "invalid rule", body: validBody, withUser: true, err: availability.ErrInvalidRule, want: http.StatusBadRequest},
		{name: "internal", body: validBody, withUser: true, err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.body, tt.withUser)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
