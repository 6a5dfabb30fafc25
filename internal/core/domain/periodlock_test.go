package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

func TestPeriodLockCovers(t *testing.T) {
	lock := domain.PeriodLock{
		EntityID:      1,
		LockedThrough: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	testCases := []struct {
		name    string
		date    time.Time
		covered bool
	}{
		{
			name:    "day before watermark",
			date:    time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC),
			covered: true,
		},
		{
			name:    "watermark day at midnight",
			date:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			covered: true,
		},
		{
			name:    "watermark day at noon",
			date:    time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
			covered: true,
		},
		{
			name:    "day after watermark",
			date:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			covered: false,
		},
		{
			name:    "non-UTC zone resolving to the watermark day",
			date:    time.Date(2025, 7, 1, 2, 0, 0, 0, time.FixedZone("UTC+8", 8*3600)),
			covered: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.covered, lock.Covers(tc.date))
		})
	}
}

func TestDateOnly(t *testing.T) {
	assert.Equal(t,
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		domain.DateOnly(time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)))
	// Truncation happens after conversion to UTC.
	assert.Equal(t,
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		domain.DateOnly(time.Date(2025, 7, 1, 2, 0, 0, 0, time.FixedZone("UTC+8", 8*3600))))
}
