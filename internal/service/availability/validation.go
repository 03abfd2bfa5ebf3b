package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorBookingService/internal/domain"
)

// validateRule проверяет одно правило доступности
func validateRule(rule domain.WeeklyAvailability) error {
	if len(rule.Weekdays) == 0 {
		return fmt.Errorf("%w: weekdays must not be empty", ErrInvalidRule)
	}

	seen := make(map[time.Weekday]struct{}, len(rule.Weekdays))
	for _, d := range rule.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidRule, d)
		}
		if _, ok := seen[d]; ok {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidRule, d)
		}
		seen[d] = struct{}{}
	}

	if err := rule.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidRule, err)
	}
	if err := rule.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidRule, err)
	}
	if !rule.StartTime.IsBefore(rule.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidRule, rule.StartTime, rule.EndTime)
	}

	if rule.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		rule.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slot granularity must be in %d..%d minutes",
			ErrInvalidRule, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	return nil
}
