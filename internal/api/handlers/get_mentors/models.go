package get_mentors

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/mentors/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
// page, pageSize, status, availableOnly
func ToServiceRequest(r *http.Request) (*models.ListRequest, error) {
	req := &models.ListRequest{}

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

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("availableOnly"); raw != "" {
		availableOnly, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("availableOnly: %w", err)
		}
		req.AvailableOnly = availableOnly
	}

	return req, nil
}
