package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	mentorRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/mentor"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/availability/models"
)

// Service сервис для работы с недельной доступностью менторов
type Service struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// List возвращает все правила ментора
func (s *Service) List(ctx context.Context, mentorID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("List: fetching availability for mentor=%d", mentorID)

	if err := s.ensureMentor(ctx, "List", mentorID); err != nil {
		return nil, err
	}

	rules, err := s.availabilityRepo.GetByMentorID(ctx, mentorID)
	if err != nil {
		s.logger.Error("List: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(mentorID, rules), nil
}

// Replace заменяет весь набор правил ментора одной транзакцией
// Доступно только самому ментору, пустой набор очищает доступность
func (s *Service) Replace(ctx context.Context, req *models.ReplaceRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Replace: replacing %d rules for mentor=%d by user=%d", len(req.Rules), req.MentorID, req.UserID)

	// 1. Проверяем права доступа
	if req.UserID != req.MentorID {
		s.logger.Warn("Replace: user=%d is not mentor=%d", req.UserID, req.MentorID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем правила
	if len(req.Rules) > domain.MaxRulesPerMentor {
		return nil, fmt.Errorf("%w: at most %d rules allowed", ErrInvalidRule, domain.MaxRulesPerMentor)
	}

	rules := make([]domain.WeeklyAvailability, 0, len(req.Rules))
	for i := range req.Rules {
		rule := req.Rules[i].ToDomainRule(req.MentorID)
		if err := validateRule(rule); err != nil {
			s.logger.Warn("Replace: rule #%d rejected: %v", i, err)
			return nil, fmt.Errorf("%w (rule #%d)", err, i)
		}
		rules = append(rules, rule)
	}

	// 3. Удаляем старые и сохраняем новые правила в одной транзакции
	var saved []domain.WeeklyAvailability
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.ensureMentor(ctx, "Replace", req.MentorID); err != nil {
			return err
		}

		var err error
		saved, err = s.availabilityRepo.ReplaceForMentor(ctx, req.MentorID, rules)
		if err != nil {
			s.logger.Error("Replace: repository error for mentor=%d: %v", req.MentorID, err)
			return fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Replace: saved %d rules for mentor=%d", len(saved), req.MentorID)
	return models.FromDomainRules(req.MentorID, saved), nil
}

func (s *Service) ensureMentor(ctx context.Context, op string, mentorID int64) error {
	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			s.logger.Warn("%s: mentor=%d not found", op, mentorID)
			return ErrMentorNotFound
		}
		s.logger.Error("%s: failed to get mentor=%d: %v", op, mentorID, err)
		return fmt.Errorf("%w: %s - mentor repository error: %v", ErrInternal, op, err)
	}
	return nil
}
