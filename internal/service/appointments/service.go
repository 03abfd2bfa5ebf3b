package appointments

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-MentorBookingService/internal/service/appointments/models"
)

// Service сервис для работы со встречами
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает встречу по ID
// Встречу видят только её студент и ментор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !appointment.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByMentor возвращает встречи ментора, доступно только самому ментору
func (s *Service) ListByMentor(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByMentor: fetching appointments for mentor=%d by user=%d", req.OwnerID, req.UserID)

	if req.UserID != req.OwnerID {
		s.logger.Warn("ListByMentor: user=%d is not mentor=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	filter, page, pageSize, err := buildFilter(req)
	if err != nil {
		s.logger.Warn("ListByMentor: invalid request: %v", err)
		return nil, err
	}
	filter.MentorID = &req.OwnerID

	return s.list(ctx, "ListByMentor", filter, page, pageSize)
}

// ListByStudent возвращает встречи студента, доступно только самому студенту
func (s *Service) ListByStudent(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByStudent: fetching appointments for student=%d by user=%d", req.OwnerID, req.UserID)

	if req.UserID != req.OwnerID {
		s.logger.Warn("ListByStudent: user=%d is not student=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	filter, page, pageSize, err := buildFilter(req)
	if err != nil {
		s.logger.Warn("ListByStudent: invalid request: %v", err)
		return nil, err
	}
	filter.StudentID = &req.OwnerID

	return s.list(ctx, "ListByStudent", filter, page, pageSize)
}

// Cancel отменяет встречу
// Отменить может студент или ментор, только встречу в статусе pending
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, req.UserID)

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.transition(ctx, "Cancel", id, req.UserID, domain.StatusCancelled, req.Reason, func(a *domain.Appointment) bool {
		return a.IsParticipant(req.UserID)
	})
}

// Complete отмечает встречу проведённой, доступно только ментору
func (s *Service) Complete(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", id, userID)

	return s.transition(ctx, "Complete", id, userID, domain.StatusCompleted, nil, func(a *domain.Appointment) bool {
		return a.MentorID == userID
	})
}

func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	userID int64,
	to domain.AppointmentStatus,
	reason *string,
	allowed func(a *domain.Appointment) bool,
) (*models.AppointmentResponse, error) {
	var updated *domain.Appointment

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Блокируем строку встречи до конца транзакции
		appointment, err := s.getAppointment(ctx, op, id)
		if err != nil {
			return err
		}

		// 2. Проверяем права доступа
		if !allowed(appointment) {
			s.logger.Warn("%s: access denied for user=%d to appointment id=%d", op, userID, id)
			return ErrAccessDenied
		}

		// 3. Проверяем допустимость перехода статуса
		if !appointment.Status.CanTransitionTo(to) {
			s.logger.Warn("%s: appointment id=%d cannot move from %s to %s", op, id, appointment.Status, to)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, to)
		}

		// 4. Обновляем статус
		if err := s.appointmentRepo.UpdateStatus(ctx, id, appointment.Status, to, reason); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusChanged) {
				s.logger.Warn("%s: appointment id=%d status changed concurrently", op, id)
				return ErrInvalidTransition
			}
			s.logger.Error("%s: failed to update appointment id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		// 5. Перечитываем встречу с новыми временными метками
		updated, err = s.getAppointment(ctx, op, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: appointment id=%d is now %s", op, id, to)
	return models.FromDomainAppointment(updated), nil
}

func (s *Service) list(
	ctx context.Context,
	op string,
	filter domain.AppointmentsFilter,
	page, pageSize int,
) (*models.AppointmentListResponse, error) {
	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d appointments", op, len(list))
	return models.FromDomainAppointmentList(list, page, pageSize), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// buildFilter проверяет пагинацию и статус, 0 означает значение по умолчанию
func buildFilter(req *models.ListRequest) (domain.AppointmentsFilter, int, int, error) {
	page, err := domain.NewPage(req.Page, req.PageSize)
	if err != nil {
		return domain.AppointmentsFilter{}, 0, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter := domain.AppointmentsFilter{
		Limit:  page.Limit(),
		Offset: page.Offset(),
	}

	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			return domain.AppointmentsFilter{}, 0, 0, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	return filter, page.Number, page.Size, nil
}
