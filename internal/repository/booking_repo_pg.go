package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcourt/courtbooking/internal/domain"
)

type BookingRepository interface {
	CreateNoOverlap(ctx context.Context, booking *domain.Booking) error
	UpdateNoOverlap(ctx context.Context, booking *domain.Booking) error
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
	FindActive(ctx context.Context, courtID int64, date time.Time, excludeID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, reason string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, bookingID string, status domain.PaymentStatus) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, limit int) ([]domain.Booking, error)
	CompleteElapsedBefore(ctx context.Context, date time.Time, now domain.TimeOfDay) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.booking_id, b.user_id, u.email, b.court_id, b.facility_id,
	b.booking_date, b.start_time, b.end_time, b.duration_hours, b.price_per_hour, b.total_amount,
	b.status, b.payment_status, b.special_requests, b.cancellation_reason, b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var start, end pgtype.Time
	if err := row.Scan(&b.ID, &b.BookingID, &b.UserID, &b.UserEmail, &b.CourtID, &b.FacilityID,
		&b.BookingDate, &start, &end, &b.DurationHours, &b.PricePerHour, &b.TotalAmount,
		&b.Status, &b.PaymentStatus, &b.SpecialRequests, &b.CancellationReason, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.StartTime = toTimeOfDay(start)
	b.EndTime = toTimeOfDay(end)
	return &b, nil
}

// CreateNoOverlap is the race-closing write of the whole system. The
// overlap check and the insert run in one transaction, serialized per court
// by locking the court row first, so two concurrent requests for the same
// interval can never both pass the check before either commits.
func (r *PGBookingRepository) CreateNoOverlap(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var courtID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM courts WHERE id=$1 FOR UPDATE`, booking.CourtID).Scan(&courtID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	conflict, err := overlapExists(ctx, tx, booking.CourtID, booking.BookingDate, booking.StartTime, booking.EndTime, 0)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrSlotConflict
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings
		(booking_id, user_id, court_id, facility_id, booking_date, start_time, end_time,
		 duration_hours, price_per_hour, total_amount, status, payment_status, special_requests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		booking.BookingID, booking.UserID, booking.CourtID, booking.FacilityID, booking.BookingDate,
		pgTime(booking.StartTime), pgTime(booking.EndTime),
		booking.DurationHours, booking.PricePerHour, booking.TotalAmount,
		booking.Status, booking.PaymentStatus, booking.SpecialRequests).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateNoOverlap re-runs the same locked overlap check, excluding the
// booking's own row, before persisting a changed interval.
func (r *PGBookingRepository) UpdateNoOverlap(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var courtID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM courts WHERE id=$1 FOR UPDATE`, booking.CourtID).Scan(&courtID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	conflict, err := overlapExists(ctx, tx, booking.CourtID, booking.BookingDate, booking.StartTime, booking.EndTime, booking.ID)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrSlotConflict
	}

	if err := tx.QueryRow(ctx, `UPDATE bookings SET booking_date=$1, start_time=$2, end_time=$3,
		duration_hours=$4, price_per_hour=$5, total_amount=$6, special_requests=$7, updated_at=now()
		WHERE id=$8 RETURNING updated_at`,
		booking.BookingDate, pgTime(booking.StartTime), pgTime(booking.EndTime),
		booking.DurationHours, booking.PricePerHour, booking.TotalAmount,
		booking.SpecialRequests, booking.ID).Scan(&booking.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return tx.Commit(ctx)
}

func overlapExists(ctx context.Context, tx pgx.Tx, courtID int64, date time.Time, start, end domain.TimeOfDay, excludeID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE court_id=$1 AND booking_date=$2 AND status = ANY($3)
		  AND start_time < $4 AND end_time > $5
		  AND ($6 = 0 OR id <> $6))`,
		courtID, date, activeStatuses(), pgTime(end), pgTime(start), excludeID).Scan(&exists)
	return exists, err
}

func (r *PGBookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+`
		FROM bookings b JOIN users u ON u.id = b.user_id
		WHERE b.booking_id=$1`, bookingID)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *PGBookingRepository) FindActive(ctx context.Context, courtID int64, date time.Time, excludeID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`
		FROM bookings b JOIN users u ON u.id = b.user_id
		WHERE b.court_id=$1 AND b.booking_date=$2 AND b.status = ANY($3)
		  AND ($4 = 0 OR b.id <> $4)
		ORDER BY b.start_time`, courtID, date, activeStatuses(), excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, reason string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings b
		SET status=$1, cancellation_reason=$2, updated_at=now()
		FROM users u
		WHERE u.id = b.user_id AND b.booking_id=$3
		RETURNING `+bookingColumns, status, reason, bookingID)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *PGBookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID string, status domain.PaymentStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings b
		SET payment_status=$1, updated_at=now()
		FROM users u
		WHERE u.id = b.user_id AND b.booking_id=$2
		RETURNING `+bookingColumns, status, bookingID)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`
		FROM bookings b JOIN users u ON u.id = b.user_id
		WHERE b.user_id=$1
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN facilities f ON f.id = b.facility_id
		WHERE f.owner_id=$1
		ORDER BY b.created_at DESC
		LIMIT $2`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// CompleteElapsedBefore marks confirmed bookings whose interval has fully
// passed as completed. Completed bookings no longer block the interval.
func (r *PGBookingRepository) CompleteElapsedBefore(ctx context.Context, date time.Time, now domain.TimeOfDay) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings b
		SET status=$1, updated_at=now()
		FROM users u
		WHERE u.id = b.user_id AND b.status=$2
		  AND (b.booking_date < $3 OR (b.booking_date = $3 AND b.end_time <= $4))
		RETURNING `+bookingColumns,
		domain.BookingStatusCompleted, domain.BookingStatusConfirmed, date, pgTime(now))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
