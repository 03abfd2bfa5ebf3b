package replace_availability

import "github.com/m04kA/SMC-MentorBookingService/internal/service/availability/models"

// ReplaceAvailabilityRequest HTTP request model
//
//	{"rules": [{"weekdays": [1,2,3,4,5], "startTime": "09:00", "endTime": "18:00", "slotGranularityMinutes": 30}]}
type ReplaceAvailabilityRequest struct {
	Rules []models.RuleRequest `json:"rules"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReplaceAvailabilityRequest) ToServiceRequest(mentorID, userID int64) *models.ReplaceRequest {
	return &models.ReplaceRequest{
		UserID:   userID,
		MentorID: mentorID,
		Rules:    r.Rules,
	}
}
