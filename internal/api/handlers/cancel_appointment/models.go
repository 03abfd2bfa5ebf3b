package cancel_appointment

// CancelAppointmentRequest HTTP request model, тело необязательно
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}
