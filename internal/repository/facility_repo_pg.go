package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quickcourt/courtbooking/internal/domain"
)

type FacilityRepository interface {
	Create(ctx context.Context, facility *domain.Facility) error
	Update(ctx context.Context, facility *domain.Facility) error
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	ListActive(ctx context.Context) ([]domain.Facility, error)
	FirstByOwner(ctx context.Context, ownerID int64) (*domain.Facility, error)
	DashboardKPIs(ctx context.Context, ownerID int64) (*domain.DashboardKPIs, error)
	PeakHours(ctx context.Context, ownerID int64, since time.Time) ([]domain.PeakHour, error)
}

type PGFacilityRepository struct {
	db *pgxpool.Pool
}

func NewFacilityRepository(db *pgxpool.Pool) FacilityRepository {
	return &PGFacilityRepository{db: db}
}

const facilityColumns = `id, owner_id, name, description, address, city, state, pincode,
	phone, email, opening_time, closing_time, is_active, is_verified, created_at, updated_at`

func scanFacility(row pgx.Row) (*domain.Facility, error) {
	var f domain.Facility
	var open, close pgtype.Time
	if err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Description, &f.Address, &f.City, &f.State, &f.Pincode,
		&f.Phone, &f.Email, &open, &close, &f.IsActive, &f.IsVerified, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.OpeningTime = toTimeOfDay(open)
	f.ClosingTime = toTimeOfDay(close)
	return &f, nil
}

func (r *PGFacilityRepository) Create(ctx context.Context, facility *domain.Facility) error {
	return r.db.QueryRow(ctx, `INSERT INTO facilities
		(owner_id, name, description, address, city, state, pincode, phone, email,
		 opening_time, closing_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		facility.OwnerID, facility.Name, facility.Description, facility.Address,
		facility.City, facility.State, facility.Pincode, facility.Phone, facility.Email,
		pgTime(facility.OpeningTime), pgTime(facility.ClosingTime), facility.IsActive).
		Scan(&facility.ID, &facility.CreatedAt, &facility.UpdatedAt)
}

func (r *PGFacilityRepository) Update(ctx context.Context, facility *domain.Facility) error {
	cmd, err := r.db.Exec(ctx, `UPDATE facilities SET name=$1, description=$2, address=$3, city=$4,
		state=$5, pincode=$6, phone=$7, email=$8, opening_time=$9, closing_time=$10, is_active=$11,
		updated_at=now() WHERE id=$12`,
		facility.Name, facility.Description, facility.Address, facility.City, facility.State,
		facility.Pincode, facility.Phone, facility.Email,
		pgTime(facility.OpeningTime), pgTime(facility.ClosingTime), facility.IsActive, facility.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFacilityRepository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	row := r.db.QueryRow(ctx, `SELECT `+facilityColumns+` FROM facilities WHERE id=$1`, id)
	f, err := scanFacility(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return f, err
}

func (r *PGFacilityRepository) ListActive(ctx context.Context) ([]domain.Facility, error) {
	rows, err := r.db.Query(ctx, `SELECT `+facilityColumns+` FROM facilities WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	facilities := make([]domain.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		facilities = append(facilities, *f)
	}
	return facilities, rows.Err()
}

// FirstByOwner mirrors the management flow: an owner works against their
// first registered facility.
func (r *PGFacilityRepository) FirstByOwner(ctx context.Context, ownerID int64) (*domain.Facility, error) {
	row := r.db.QueryRow(ctx, `SELECT `+facilityColumns+` FROM facilities WHERE owner_id=$1 ORDER BY created_at LIMIT 1`, ownerID)
	f, err := scanFacility(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return f, err
}

// DashboardKPIs: earnings count only payment_status='paid' bookings.
func (r *PGFacilityRepository) DashboardKPIs(ctx context.Context, ownerID int64) (*domain.DashboardKPIs, error) {
	var k domain.DashboardKPIs
	var earnings decimal.NullDecimal
	err := r.db.QueryRow(ctx, `SELECT
		(SELECT count(*) FROM bookings b JOIN facilities f ON f.id=b.facility_id WHERE f.owner_id=$1),
		(SELECT count(*) FROM courts c JOIN facilities f ON f.id=c.facility_id WHERE f.owner_id=$1 AND c.status=$2),
		(SELECT sum(b.total_amount) FROM bookings b JOIN facilities f ON f.id=b.facility_id WHERE f.owner_id=$1 AND b.payment_status=$3),
		(SELECT count(*) FROM bookings b JOIN facilities f ON f.id=b.facility_id WHERE f.owner_id=$1 AND b.status=$4)`,
		ownerID, domain.CourtStatusActive, domain.PaymentStatusPaid, domain.BookingStatusPending).
		Scan(&k.TotalBookings, &k.ActiveCourts, &earnings, &k.PendingBookings)
	if err != nil {
		return nil, err
	}
	if earnings.Valid {
		k.TotalEarnings = earnings.Decimal
	} else {
		k.TotalEarnings = decimal.Zero
	}
	return &k, nil
}

func (r *PGFacilityRepository) PeakHours(ctx context.Context, ownerID int64, since time.Time) ([]domain.PeakHour, error) {
	rows, err := r.db.Query(ctx, `SELECT b.start_time, count(*)
		FROM bookings b JOIN facilities f ON f.id=b.facility_id
		WHERE f.owner_id=$1 AND b.booking_date >= $2
		GROUP BY b.start_time ORDER BY b.start_time`, ownerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make([]domain.PeakHour, 0)
	for rows.Next() {
		var h domain.PeakHour
		var start pgtype.Time
		if err := rows.Scan(&start, &h.Bookings); err != nil {
			return nil, err
		}
		h.Hour = toTimeOfDay(start)
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

var _ FacilityRepository = (*PGFacilityRepository)(nil)
