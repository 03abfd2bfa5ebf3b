package availability

// Reason explains why a booking request was rejected
type Reason string

const (
	ReasonInvalidDuration     Reason = "INVALID_DURATION"
	ReasonOutsideAvailability Reason = "OUTSIDE_AVAILABILITY"
	ReasonConflict            Reason = "CONFLICT"
)

// Decision is the outcome of ValidateBooking. Reason is empty when OK.
type Decision struct {
	OK     bool
	Reason Reason
}

func accept() Decision {
	return Decision{OK: true}
}

func reject(reason Reason) Decision {
	return Decision{Reason: reason}
}
