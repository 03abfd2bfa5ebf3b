package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("UTC"))
	assert.True(t, IsValid("Europe/Moscow"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus_Mons"))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "Europe/Moscow", Location("Europe/Moscow", "UTC").String())
	assert.Equal(t, "Asia/Tokyo", Location("", "Asia/Tokyo").String())
	assert.Equal(t, "Asia/Tokyo", Location("bogus", "Asia/Tokyo").String())
	assert.Equal(t, time.UTC, Location("bogus", "also-bogus"))
}
