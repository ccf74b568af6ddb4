package domain

import "time"

// CourtRating is a player's review of a court, tied to the booking that
// earned them the right to leave it. One rating per booking.
type CourtRating struct {
	ID        int64
	BookingID int64 // row key of the rated booking
	CourtID   int64
	UserID    int64
	UserName  string // joined from users, read-only

	Rating int // 1..5
	Review string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
