package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 11, 28, 10, 0, 0, 0, time.UTC)

	mockClock := NewMockClock(start)
	assert.Equal(t, start, mockClock.Now())

	mockClock.Advance(25 * time.Minute)
	assert.Equal(t, start.Add(25*time.Minute), mockClock.Now())

	later := start.Add(2 * time.Hour)
	mockClock.Set(later)
	assert.Equal(t, later, mockClock.Now())
}
