package domain

import "time"

// PeriodLock is the per-entity watermark date through which postings are
// frozen. The locked-through date only ever moves forward; the closing and
// conversion services are the only legitimate writers.
type PeriodLock struct {
	EntityID      int64     `json:"entityID"`
	LockedThrough time.Time `json:"lockedThrough"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UpdatedBy     string    `json:"updatedBy"`
}

// Covers reports whether a date falls on or before the locked-through
// watermark. The comparison is by UTC calendar date, so an entry dated later
// in the day than the watermark timestamp is still inside the locked period.
func (p PeriodLock) Covers(date time.Time) bool {
	return !DateOnly(date).After(DateOnly(p.LockedThrough))
}
