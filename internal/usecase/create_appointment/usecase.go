package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/availability"
	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
	mentorRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/mentor"
	"github.com/m04kA/SMC-MentorBookingService/internal/timezone"
	"github.com/m04kA/SMC-MentorBookingService/pkg/ptr"
	"github.com/m04kA/SMC-MentorBookingService/pkg/txmanager"
)

const metricsFlow = "create"

// UseCase use case для создания встречи
type UseCase struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	userClient       UserServiceClient
	txManager        TransactionManager
	metrics          Metrics
	config           Config
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		userClient:       userClient,
		txManager:        txManager,
		metrics:          metrics,
		config:           config,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания встречи.
// Проверка и запись выполняются в одной сериализуемой транзакции,
// поэтому две параллельные записи на одно время не пройдут обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: student=%d, mentor=%d, date=%s, time=%s",
		req.StudentID, req.MentorID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	duration := ptr.Deref(req.DurationMinutes, uc.config.DefaultDurationMinutes)

	// 2. Длительность проверяется раньше любых обращений к хранилищу
	if duration <= 0 {
		uc.reject(availability.ReasonInvalidDuration)
		return nil, ErrInvalidDuration
	}

	// 3. Проверяем, что пользователь - студент
	isStudent, err := uc.userClient.IsStudent(ctx, req.StudentID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to verify student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to verify student: %v", ErrInternal, err)
	}
	if !isStudent {
		uc.logger.Warn("CreateAppointment: user id=%d is not a student", req.StudentID)
		return nil, ErrNotAStudent
	}

	// 4. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем ментора (строка блокируется до конца транзакции)
		mentor, err := uc.mentorRepo.GetByID(txCtx, req.MentorID)
		if err != nil {
			if errors.Is(err, mentorRepo.ErrMentorNotFound) {
				uc.logger.Warn("CreateAppointment: mentor id=%d not found", req.MentorID)
				return ErrMentorNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get mentor: %v", err)
			return storageError("failed to get mentor", err)
		}

		if !mentor.IsBookable() {
			uc.logger.Warn("CreateAppointment: mentor id=%d is %s", mentor.ID, mentor.Status)
			return ErrMentorUnavailable
		}

		// 5.2. Получаем правила доступности
		rules, err := uc.availabilityRepo.GetByMentorID(txCtx, mentor.ID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get availability rules: %v", err)
			return storageError("failed to get availability rules", err)
		}

		schedule := availability.NewSchedule(mentor.ID, timezone.Location(mentor.Timezone, uc.config.DefaultTimezone), rules)

		// 5.3. Проверяем окно бронирования
		window := availability.BookingWindow{
			AdvanceBookingDays: uc.config.AdvanceBookingDays,
			MinNoticeMinutes:   uc.config.MinNoticeMinutes,
		}
		if err := window.CheckDate(schedule, req.Date, now); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			if errors.Is(err, availability.ErrDateTooFarInFuture) {
				return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, window.AdvanceBookingDays)
			}
			return ErrInvalidDate
		}
		if !window.HasNotice(schedule, req.Date, req.Time, now) {
			uc.logger.Warn("CreateAppointment: less than %d minutes before start", window.MinNoticeMinutes)
			return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, window.MinNoticeMinutes)
		}

		// 5.4. Получаем встречи, пересекающие день, с блокировкой (FOR UPDATE)
		dayStart, dayEnd := schedule.DayBounds(req.Date)
		from := dayStart.Add(-domain.MaxAppointmentDurationMinutes * time.Minute)
		to := dayEnd.Add(time.Duration(duration) * time.Minute)

		existing, err := uc.appointmentRepo.GetActiveInRange(txCtx, mentor.ID, from, to)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return storageError("failed to get appointments", err)
		}

		// 5.5. Проверяем запрос движком доступности
		decision := schedule.ValidateBooking(domain.SlotRequest{
			MentorID:        mentor.ID,
			Date:            req.Date,
			Time:            req.Time,
			DurationMinutes: duration,
		}, existing)
		if !decision.OK {
			uc.logger.Warn("CreateAppointment: rejected: %s", decision.Reason)
			uc.reject(decision.Reason)
			return reasonToError(decision.Reason)
		}

		// 5.6. Сохраняем встречу
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			MentorID:        mentor.ID,
			StudentID:       req.StudentID,
			ScheduledStart:  schedule.At(req.Date, req.Time),
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return storageError("failed to create appointment", err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: lost concurrent booking race for mentor=%d: %v", req.MentorID, err)
			uc.reject(availability.ReasonConflict)
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.metrics.IncBookingDecision(metricsFlow, "accepted")
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		MentorID:        result.MentorID,
		StudentID:       result.StudentID,
		ScheduledStart:  result.ScheduledStart,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) reject(reason availability.Reason) {
	uc.metrics.IncBookingDecision(metricsFlow, string(reason))
}

// storageError оборачивает ошибку хранилища в ErrInternal.
// Ошибку сериализации отдаём менеджеру транзакций как есть, он повторит попытку.
func storageError(op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func reasonToError(reason availability.Reason) error {
	switch reason {
	case availability.ReasonInvalidDuration:
		return ErrInvalidDuration
	case availability.ReasonOutsideAvailability:
		return ErrOutsideAvailability
	case availability.ReasonConflict:
		return ErrConflict
	default:
		return fmt.Errorf("%w: unknown rejection reason %q", ErrInternal, reason)
	}
}
