package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CourtStatus string

const (
	CourtStatusActive      CourtStatus = "active"
	CourtStatusMaintenance CourtStatus = "maintenance"
	CourtStatusInactive    CourtStatus = "inactive"
)

func ValidCourtStatus(s CourtStatus) bool {
	switch s {
	case CourtStatusActive, CourtStatusMaintenance, CourtStatusInactive:
		return true
	}
	return false
}

// Sport is reference data maintained outside the booking flow.
type Sport struct {
	ID       int64
	Name     string
	Icon     string
	IsActive bool
}

type Court struct {
	ID          int64
	FacilityID  int64
	SportID     int64
	Name        string
	Description string

	PricePerHour decimal.Decimal
	Currency     string

	CourtNumber string
	SurfaceType string
	CourtSize   string

	Status      CourtStatus
	IsAvailable bool

	// Optional override of the facility operating window.
	OpeningTime *TimeOfDay
	ClosingTime *TimeOfDay

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bookable is the single gate for accepting new reservations.
func (c *Court) Bookable() bool {
	return c.Status == CourtStatusActive && c.IsAvailable
}

// EffectiveOpeningTime falls back to the facility hours when the court has
// no override.
func (c *Court) EffectiveOpeningTime(f *Facility) TimeOfDay {
	if c.OpeningTime != nil {
		return *c.OpeningTime
	}
	return f.OpeningTime
}

func (c *Court) EffectiveClosingTime(f *Facility) TimeOfDay {
	if c.ClosingTime != nil {
		return *c.ClosingTime
	}
	return f.ClosingTime
}

// TimeSlot is configuration: a candidate reservable interval for a court,
// independent of any actual reservation.
type TimeSlot struct {
	ID          int64
	CourtID     int64
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	IsAvailable bool
	IsBlocked   bool
	BlockReason string
}

// Reservable filters out disabled and manually blocked slots before any
// booking comparison happens.
func (s *TimeSlot) Reservable() bool {
	return s.IsAvailable && !s.IsBlocked
}

func (s *TimeSlot) Overlaps(start, end TimeOfDay) bool {
	return Overlaps(s.StartTime, s.EndTime, start, end)
}
