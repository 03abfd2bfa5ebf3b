package upsert_mentor

import "github.com/m04kA/SMC-MentorBookingService/internal/service/mentors/models"

// UpsertMentorRequest HTTP request model
type UpsertMentorRequest struct {
	DisplayName string  `json:"displayName"`
	Timezone    string  `json:"timezone"`         // IANA, например "Europe/Moscow"
	Status      *string `json:"status,omitempty"` // active, inactive, busy
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertMentorRequest) ToServiceRequest(mentorID, userID int64) *models.UpsertRequest {
	return &models.UpsertRequest{
		UserID:      userID,
		MentorID:    mentorID,
		DisplayName: r.DisplayName,
		Timezone:    r.Timezone,
		Status:      r.Status,
	}
}
