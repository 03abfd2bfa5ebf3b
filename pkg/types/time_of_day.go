package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках. Значение 24:00 допустимо как конец дня.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time of day out of range")
)

// TimeOfDay wall-clock time as minutes since midnight, in [0, 1440].
// "HH:MM" strings exist only at the boundaries (JSON, query params).
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOutOfRange, hour, minute)
	}
	t := TimeOfDay(hour*60 + minute)
	if err := t.Validate(); err != nil {
		return 0, err
	}
	return t, nil
}

// MustTimeOfDay is ParseTimeOfDay that panics; for constants and tests.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses "HH:MM" (and "HH:MM:SS" with zero seconds).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	for _, p := range parts {
		if !isTwoDigits(p) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}

	return NewTimeOfDay(hour, minute)
}

func isTwoDigits(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// TimeOfDayFromTime returns the wall-clock time of t in its own location.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Duration returns the offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

// AddMinutes shifts the time; the result must stay within the same day.
func (t TimeOfDay) AddMinutes(minutes int) (TimeOfDay, error) {
	res := t + TimeOfDay(minutes)
	if err := res.Validate(); err != nil {
		return 0, err
	}
	return res, nil
}

func (t TimeOfDay) IsBefore(other TimeOfDay) bool { return t < other }
func (t TimeOfDay) IsAfter(other TimeOfDay) bool  { return t > other }

// Validate checks the 00:00..24:00 range.
func (t TimeOfDay) Validate() error {
	if t < 0 || t > MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, int(t))
	}
	return nil
}

// String formats as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan реализует sql.Scanner. В БД время хранится числом минут от полуночи.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*t = TimeOfDay(v)
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case nil:
		*t = 0
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeOfDay", src)
	}
	return t.Validate()
}

func (t *TimeOfDay) scanString(s string) error {
	if n, err := strconv.Atoi(s); err == nil {
		*t = TimeOfDay(n)
		return t.Validate()
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}
