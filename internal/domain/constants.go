package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 60
	DefaultPageSize               = 20
)

// Business validation constants
const (
	MinDurationMinutes            = 1
	MaxAppointmentDurationMinutes = 480 // 8 hours
	MinSlotGranularityMinutes     = 5
	MaxSlotGranularityMinutes     = 480
	MaxRulesPerMentor             = 50
	MaxNotesLength                = 500
	MaxCancellationReasonLength   = 500
	MaxDisplayNameLength          = 200
	MaxPageSize                   = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RoleStudent role name returned by the user service
const RoleStudent = "student"
