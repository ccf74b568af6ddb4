package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcourt/courtbooking/internal/domain"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.CourtRating) error
	GetByBooking(ctx context.Context, bookingID int64) (*domain.CourtRating, error)
	ListByCourt(ctx context.Context, courtID int64, limit int) ([]domain.CourtRating, error)
}

type PGRatingRepository struct {
	db *pgxpool.Pool
}

func NewRatingRepository(db *pgxpool.Pool) RatingRepository {
	return &PGRatingRepository{db: db}
}

func (r *PGRatingRepository) Create(ctx context.Context, rating *domain.CourtRating) error {
	return r.db.QueryRow(ctx, `INSERT INTO court_ratings
		(booking_id, court_id, user_id, rating, review)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		rating.BookingID, rating.CourtID, rating.UserID, rating.Rating, rating.Review).
		Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
}

func (r *PGRatingRepository) GetByBooking(ctx context.Context, bookingID int64) (*domain.CourtRating, error) {
	var cr domain.CourtRating
	err := r.db.QueryRow(ctx, `SELECT id, booking_id, court_id, user_id, rating, review, created_at, updated_at
		FROM court_ratings WHERE booking_id=$1`, bookingID).
		Scan(&cr.ID, &cr.BookingID, &cr.CourtID, &cr.UserID, &cr.Rating, &cr.Review, &cr.CreatedAt, &cr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *PGRatingRepository) ListByCourt(ctx context.Context, courtID int64, limit int) ([]domain.CourtRating, error) {
	rows, err := r.db.Query(ctx, `SELECT cr.id, cr.booking_id, cr.court_id, cr.user_id, cr.rating, cr.review,
		cr.created_at, cr.updated_at, u.first_name || ' ' || u.last_name
		FROM court_ratings cr JOIN users u ON u.id = cr.user_id
		WHERE cr.court_id=$1 ORDER BY cr.created_at DESC LIMIT $2`, courtID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.CourtRating, 0)
	for rows.Next() {
		var cr domain.CourtRating
		if err := rows.Scan(&cr.ID, &cr.BookingID, &cr.CourtID, &cr.UserID, &cr.Rating, &cr.Review,
			&cr.CreatedAt, &cr.UpdatedAt, &cr.UserName); err != nil {
			return nil, err
		}
		ratings = append(ratings, cr)
	}
	return ratings, rows.Err()
}

var _ RatingRepository = (*PGRatingRepository)(nil)
