package models

import (
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// Request модели

// RuleRequest правило недельной доступности
// Дни недели: 0 - воскресенье, 6 - суббота
type RuleRequest struct {
	Weekdays               []int           `json:"weekdays"`
	StartTime              types.TimeOfDay `json:"startTime"` // "09:00"
	EndTime                types.TimeOfDay `json:"endTime"`   // "18:00", "24:00" - до конца дня
	SlotGranularityMinutes *int            `json:"slotGranularityMinutes,omitempty"`
}

// ReplaceRequest полная замена набора правил ментора
type ReplaceRequest struct {
	UserID   int64         `json:"userId"`
	MentorID int64         `json:"mentorId"`
	Rules    []RuleRequest `json:"rules"`
}

// Response модели

// RuleResponse правило доступности
type RuleResponse struct {
	ID                     int64           `json:"id"`
	Weekdays               []int           `json:"weekdays"`
	StartTime              types.TimeOfDay `json:"startTime"`
	EndTime                types.TimeOfDay `json:"endTime"`
	SlotGranularityMinutes int             `json:"slotGranularityMinutes"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// AvailabilityResponse все правила ментора
type AvailabilityResponse struct {
	MentorID int64          `json:"mentorId"`
	Rules    []RuleResponse `json:"rules"`
}

// Методы конвертации

// ToDomainRule конвертирует запрос в domain модель (без валидации)
func (r *RuleRequest) ToDomainRule(mentorID int64) domain.WeeklyAvailability {
	weekdays := make([]time.Weekday, 0, len(r.Weekdays))
	for _, d := range r.Weekdays {
		weekdays = append(weekdays, time.Weekday(d))
	}

	granularity := domain.DefaultSlotGranularityMinutes
	if r.SlotGranularityMinutes != nil {
		granularity = *r.SlotGranularityMinutes
	}

	return domain.WeeklyAvailability{
		MentorID:               mentorID,
		Weekdays:               weekdays,
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
		SlotGranularityMinutes: granularity,
	}
}

// FromDomainRules конвертирует правила в DTO
func FromDomainRules(mentorID int64, rules []domain.WeeklyAvailability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		MentorID: mentorID,
		Rules:    make([]RuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		weekdays := make([]int, 0, len(rule.Weekdays))
		for _, d := range rule.Weekdays {
			weekdays = append(weekdays, int(d))
		}
		resp.Rules = append(resp.Rules, RuleResponse{
			ID:                     rule.ID,
			Weekdays:               weekdays,
			StartTime:              rule.StartTime,
			EndTime:                rule.EndTime,
			SlotGranularityMinutes: rule.SlotGranularityMinutes,
			UpdatedAt:              rule.UpdatedAt,
		})
	}

	return resp
}
