package mentors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	mentorRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/mentor"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/mentors/models"
	"github.com/m04kA/SMC-MentorBookingService/internal/timezone"
)

// Service сервис профилей менторов
type Service struct {
	mentorRepo      MentorRepository
	defaultTimezone string
	logger          Logger
}

// NewService создает новый экземпляр сервиса менторов
func NewService(mentorRepo MentorRepository, defaultTimezone string, logger Logger) *Service {
	return &Service{
		mentorRepo:      mentorRepo,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Get возвращает профиль ментора
func (s *Service) Get(ctx context.Context, mentorID int64) (*models.MentorResponse, error) {
	s.logger.Info("Get: fetching mentor=%d", mentorID)

	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			s.logger.Warn("Get: mentor=%d not found", mentorID)
			return nil, ErrMentorNotFound
		}
		s.logger.Error("Get: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMentor(mentor), nil
}

// List возвращает страницу каталога менторов.
// Если задан availableOnly, вернутся только активные менторы.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.MentorListResponse, error) {
	s.logger.Info("List: page=%d, pageSize=%d, availableOnly=%t", req.Page, req.PageSize, req.AvailableOnly)

	filter, page, err := buildFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid request: %v", err)
		return nil, err
	}

	list, err := s.mentorRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d mentors", len(list))
	return models.FromDomainMentorList(list, page.Number, page.Size), nil
}

// Upsert создает или обновляет профиль, доступно только самому ментору
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRequest) (*models.MentorResponse, error) {
	s.logger.Info("Upsert: saving mentor=%d by user=%d", req.MentorID, req.UserID)

	if req.UserID != req.MentorID {
		s.logger.Warn("Upsert: user=%d is not mentor=%d", req.UserID, req.MentorID)
		return nil, ErrAccessDenied
	}

	mentor, err := s.toDomain(req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed for mentor=%d: %v", req.MentorID, err)
		return nil, err
	}

	saved, err := s.mentorRepo.Upsert(ctx, mentor)
	if err != nil {
		s.logger.Error("Upsert: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: mentor=%d saved, status=%s, timezone=%s", saved.ID, saved.Status, saved.Timezone)
	return models.FromDomainMentor(saved), nil
}

func (s *Service) toDomain(req *models.UpsertRequest) (*domain.Mentor, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxDisplayNameLength {
		return nil, fmt.Errorf("%w: display name exceeds %d characters", ErrInvalidInput, domain.MaxDisplayNameLength)
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = s.defaultTimezone
	}
	if !timezone.IsValid(tz) {
		return nil, fmt.Errorf("%w: unknown time zone %q", ErrInvalidInput, tz)
	}

	status := domain.MentorStatusActive
	if req.Status != nil {
		status = domain.MentorStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
	}

	return &domain.Mentor{
		ID:          req.MentorID,
		DisplayName: name,
		Timezone:    tz,
		Status:      status,
	}, nil
}

// buildFilter проверяет пагинацию и статус, 0 означает значение по умолчанию
func buildFilter(req *models.ListRequest) (domain.MentorsFilter, domain.Page, error) {
	page, err := domain.NewPage(req.Page, req.PageSize)
	if err != nil {
		return domain.MentorsFilter{}, domain.Page{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter := domain.MentorsFilter{
		Limit:  page.Limit(),
		Offset: page.Offset(),
	}

	if req.Status != nil {
		status := domain.MentorStatus(*req.Status)
		if !status.IsValid() {
			return domain.MentorsFilter{}, domain.Page{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if req.AvailableOnly {
		if filter.Status != nil && *filter.Status != domain.MentorStatusActive {
			return domain.MentorsFilter{}, domain.Page{}, fmt.Errorf("%w: availableOnly conflicts with status %q", ErrInvalidInput, *filter.Status)
		}
		active := domain.MentorStatusActive
		filter.Status = &active
	}

	return filter, page, nil
}
