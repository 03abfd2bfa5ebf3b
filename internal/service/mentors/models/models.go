package models

import (
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

// UpsertRequest создание или обновление профиля ментора
// Пустой часовой пояс - используется пояс по умолчанию из конфигурации
type UpsertRequest struct {
	UserID      int64   `json:"userId"`
	MentorID    int64   `json:"mentorId"`
	DisplayName string  `json:"displayName"`
	Timezone    string  `json:"timezone"`
	Status      *string `json:"status,omitempty"` // по умолчанию active
}

// ListRequest запрос каталога менторов
// AvailableOnly оставляет только менторов, принимающих записи (active)
type ListRequest struct {
	Page          int     `json:"page"`
	PageSize      int     `json:"pageSize"`
	Status        *string `json:"status,omitempty"`
	AvailableOnly bool    `json:"availableOnly"`
}

// MentorResponse профиль ментора
type MentorResponse struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Timezone    string    `json:"timezone"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomainMentor конвертирует domain модель в DTO
func FromDomainMentor(m *domain.Mentor) *MentorResponse {
	if m == nil {
		return nil
	}
	return &MentorResponse{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Timezone:    m.Timezone,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MentorListResponse страница каталога менторов
type MentorListResponse struct {
	Mentors  []MentorResponse `json:"mentors"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// FromDomainMentorList конвертирует список domain моделей в DTO
func FromDomainMentorList(list []*domain.Mentor, page, pageSize int) *MentorListResponse {
	resp := &MentorListResponse{
		Mentors:  make([]MentorResponse, 0, len(list)),
		Page:     page,
		PageSize: pageSize,
	}

	for _, m := range list {
		if item := FromDomainMentor(m); item != nil {
			resp.Mentors = append(resp.Mentors, *item)
		}
	}

	return resp
}
