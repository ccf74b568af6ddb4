package ratings

import (
	"context"
	"errors"

	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/repository"
)

type RatingUseCase interface {
	RateBooking(ctx context.Context, userID int64, input RatingInput) (*domain.CourtRating, error)
	CourtRatings(ctx context.Context, courtID int64) ([]domain.CourtRating, error)
}

type RatingInput struct {
	BookingID string // external uuid
	Rating    int
	Review    string
}

type RatingService struct {
	ratings  repository.RatingRepository
	bookings repository.BookingRepository
}

func NewRatingService(ratings repository.RatingRepository, bookings repository.BookingRepository) *RatingService {
	return &RatingService{ratings: ratings, bookings: bookings}
}

const listLimit = 50

// RateBooking creates the one rating a booking is allowed. Only the player
// who made the booking can rate it, and only after the visit happened.
func (s *RatingService) RateBooking(ctx context.Context, userID int64, input RatingInput) (*domain.CourtRating, error) {
	if !domain.ValidRating(input.Rating) {
		return nil, domain.ErrInvalidRating
	}

	booking, err := s.bookings.GetByBookingID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if booking.Status != domain.BookingStatusCompleted {
		return nil, errors.New("only completed bookings can be rated")
	}

	if _, err := s.ratings.GetByBooking(ctx, booking.ID); err == nil {
		return nil, domain.ErrAlreadyRated
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	rating := &domain.CourtRating{
		BookingID: booking.ID,
		CourtID:   booking.CourtID,
		UserID:    userID,
		Rating:    input.Rating,
		Review:    input.Review,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) CourtRatings(ctx context.Context, courtID int64) ([]domain.CourtRating, error) {
	return s.ratings.ListByCourt(ctx, courtID, listLimit)
}

var _ RatingUseCase = (*RatingService)(nil)
