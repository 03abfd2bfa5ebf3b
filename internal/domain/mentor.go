package domain

import "time"

// MentorStatus represents whether a mentor currently accepts bookings
type MentorStatus string

const (
	MentorStatusActive   MentorStatus = "active"
	MentorStatusInactive MentorStatus = "inactive"
	MentorStatusBusy     MentorStatus = "busy"
)

func (s MentorStatus) IsValid() bool {
	switch s {
	case MentorStatusActive, MentorStatusInactive, MentorStatusBusy:
		return true
	}
	return false
}

// Mentor is the booking profile of a mentor. ID equals the platform user ID.
type Mentor struct {
	ID          int64
	DisplayName string
	Timezone    string
	Status      MentorStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsBookable returns true if students may book the mentor
func (m *Mentor) IsBookable() bool {
	return m.Status == MentorStatusActive
}

// MentorsFilter selects mentors for the directory listing
type MentorsFilter struct {
	Status *MentorStatus
	Limit  int
	Offset int
}
