// Package timezone resolves IANA zone names with a fallback zone.
package timezone

import (
	"time"
	_ "time/tzdata" // образ может не содержать zoneinfo
)

// DefaultTimezone is used when neither the mentor nor the config declares a zone.
const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location returns the zone named tz, falling back to fallback and then to UTC.
func Location(tz, fallback string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if IsValid(fallback) {
		if loc, err := time.LoadLocation(fallback); err == nil {
			return loc
		}
	}
	return time.UTC
}
