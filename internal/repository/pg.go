package repository

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/quickcourt/courtbooking/internal/domain"
)

// Postgres TIME columns travel as microseconds since midnight; the domain
// works in minutes.
func pgTime(t domain.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.Minutes()) * 60_000_000, Valid: true}
}

func toTimeOfDay(t pgtype.Time) domain.TimeOfDay {
	return domain.TimeOfDay(t.Microseconds / 60_000_000)
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveBookingStatuses))
	for _, s := range domain.ActiveBookingStatuses {
		out = append(out, string(s))
	}
	return out
}
