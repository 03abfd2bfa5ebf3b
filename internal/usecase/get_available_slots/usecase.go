package get_available_slots

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
	"github.com/m04kA/SMC-MentorBookingService/pkg/types"
)

// UseCase use case для получения свободных слотов ментора на дату
type UseCase struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	config           Config
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		config:           config,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: mentor=%d, date=%s", req.MentorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := ptr.Deref(req.DurationMinutes, uc.config.DefaultDurationMinutes)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем ментора
	mentor, err := uc.mentorRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			uc.logger.Warn("GetAvailableSlots: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	loc := timezone.Location(mentor.Timezone, uc.config.DefaultTimezone)
	response := &Response{
		Date:            req.Date,
		MentorID:        req.MentorID,
		Timezone:        loc.String(),
		DurationMinutes: duration,
		Slots:           []types.TimeOfDay{},
	}

	// 4. Неактивный или занятый ментор не принимает записи
	if !mentor.IsBookable() {
		uc.logger.Info("GetAvailableSlots: mentor id=%d is %s, no slots", mentor.ID, mentor.Status)
		return response, nil
	}

	// 5. Проверяем дату в часовом поясе ментора
	window := availability.BookingWindow{
		AdvanceBookingDays: uc.config.AdvanceBookingDays,
		MinNoticeMinutes:   uc.config.MinNoticeMinutes,
	}
	if err := window.CheckDate(availability.NewSchedule(mentor.ID, loc, nil), req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		if errors.Is(err, availability.ErrDateTooFarInFuture) {
			return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, window.AdvanceBookingDays)
		}
		return nil, ErrInvalidDate
	}

	// 6. Получаем правила доступности
	rules, err := uc.availabilityRepo.GetByMentorID(ctx, mentor.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}
	schedule := availability.NewSchedule(mentor.ID, loc, rules)

	// 7. Получаем встречи, которые могут пересекаться с этим днём
	dayStart, dayEnd := schedule.DayBounds(req.Date)
	from := dayStart.Add(-domain.MaxAppointmentDurationMinutes * time.Minute)

	existing, err := uc.appointmentRepo.GetActiveInRange(ctx, mentor.ID, from, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Считаем свободные слоты и отбрасываем слишком близкие к текущему времени
	for slot := range schedule.AvailableSlots(req.Date, duration, existing) {
		if window.HasNotice(schedule, req.Date, slot, now) {
			response.Slots = append(response.Slots, slot)
		}
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for mentor=%d, date=%s, duration=%d",
		len(response.Slots), mentor.ID, req.Date.Format(domain.DateFormat), duration)

	return response, nil
}
