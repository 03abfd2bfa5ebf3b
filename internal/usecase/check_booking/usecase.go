package check_booking

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
)

const metricsFlow = "check"

// UseCase проверяет запрос на запись без сохранения
type UseCase struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	metrics          Metrics
	config           Config
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		metrics:          metrics,
		config:           config,
		logger:           logger,
	}
}

// Execute выполняет проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckBooking: validation failed: %v", err)
		return nil, err
	}

	duration := ptr.Deref(req.DurationMinutes, uc.config.DefaultDurationMinutes)

	uc.logger.Info("CheckBooking: mentor=%d, date=%s, time=%s, duration=%d",
		req.MentorID, req.Date.Format(domain.DateFormat), req.Time, duration)

	// Длительность проверяется раньше любых обращений к хранилищу
	if duration <= 0 {
		reason := string(availability.ReasonInvalidDuration)
		uc.metrics.IncBookingDecision(metricsFlow, reason)
		uc.logger.Info("CheckBooking: mentor=%d ok=false reason=%s", req.MentorID, reason)
		return &Response{OK: false, Reason: reason}, nil
	}

	mentor, err := uc.mentorRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("CheckBooking: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	var rules []domain.WeeklyAvailability
	// Неактивный ментор не имеет часов приёма
	if mentor.IsBookable() {
		rules, err = uc.availabilityRepo.GetByMentorID(ctx, mentor.ID)
		if err != nil {
			uc.logger.Error("CheckBooking: failed to get availability rules: %v", err)
			return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}
	}

	schedule := availability.NewSchedule(mentor.ID, timezone.Location(mentor.Timezone, uc.config.DefaultTimezone), rules)

	dayStart, dayEnd := schedule.DayBounds(req.Date)
	from := dayStart.Add(-domain.MaxAppointmentDurationMinutes * time.Minute)
	to := dayEnd.Add(time.Duration(duration) * time.Minute)

	existing, err := uc.appointmentRepo.GetActiveInRange(ctx, mentor.ID, from, to)
	if err != nil {
		uc.logger.Error("CheckBooking: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	decision := schedule.ValidateBooking(domain.SlotRequest{
		MentorID:        mentor.ID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: duration,
	}, existing)

	reason := string(decision.Reason)
	if decision.OK {
		uc.metrics.IncBookingDecision(metricsFlow, "accepted")
	} else {
		uc.metrics.IncBookingDecision(metricsFlow, reason)
	}

	uc.logger.Info("CheckBooking: mentor=%d ok=%t reason=%s", mentor.ID, decision.OK, reason)

	return &Response{OK: decision.OK, Reason: reason}, nil
}
