package get_student_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров page, pageSize, status
func ToServiceRequest(r *http.Request, ownerID, userID int64) (*models.ListRequest, error) {
	req := &models.ListRequest{
		UserID:  userID,
		OwnerID: ownerID,
	}

	page, err := handlers.QueryInt(r, "page")
	if err != nil {
		return nil, err
	}
	if page != nil {
		req.Page = *page
	}

	pageSize, err := handlers.QueryInt(r, "pageSize")
	if err != nil {
		return nil, err
	}
	if pageSize != nil {
		req.PageSize = *pageSize
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
