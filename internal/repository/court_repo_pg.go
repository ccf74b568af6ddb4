package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcourt/courtbooking/internal/domain"
)

type CourtRepository interface {
	Create(ctx context.Context, court *domain.Court) error
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	ListByFacility(ctx context.Context, facilityID int64) ([]domain.Court, error)
	UpdateStatus(ctx context.Context, id int64, status domain.CourtStatus) error
	ListTimeSlots(ctx context.Context, courtID int64) ([]domain.TimeSlot, error)
	CreateTimeSlot(ctx context.Context, slot *domain.TimeSlot) error
	BlockTimeSlot(ctx context.Context, slotID int64, reason string) error
	ListSports(ctx context.Context) ([]domain.Sport, error)
}

type PGCourtRepository struct {
	db *pgxpool.Pool
}

func NewCourtRepository(db *pgxpool.Pool) CourtRepository {
	return &PGCourtRepository{db: db}
}

const courtColumns = `id, facility_id, sport_id, name, description, price_per_hour, currency,
	court_number, surface_type, court_size, status, is_available, opening_time, closing_time,
	created_at, updated_at`

func scanCourt(row pgx.Row) (*domain.Court, error) {
	var c domain.Court
	var open, close pgtype.Time
	if err := row.Scan(&c.ID, &c.FacilityID, &c.SportID, &c.Name, &c.Description,
		&c.PricePerHour, &c.Currency, &c.CourtNumber, &c.SurfaceType, &c.CourtSize,
		&c.Status, &c.IsAvailable, &open, &close, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if open.Valid {
		t := toTimeOfDay(open)
		c.OpeningTime = &t
	}
	if close.Valid {
		t := toTimeOfDay(close)
		c.ClosingTime = &t
	}
	return &c, nil
}

func optPgTime(t *domain.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgTime(*t)
}

func (r *PGCourtRepository) Create(ctx context.Context, court *domain.Court) error {
	return r.db.QueryRow(ctx, `INSERT INTO courts
		(facility_id, sport_id, name, description, price_per_hour, currency,
		 court_number, surface_type, court_size, status, is_available, opening_time, closing_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		court.FacilityID, court.SportID, court.Name, court.Description,
		court.PricePerHour, court.Currency, court.CourtNumber, court.SurfaceType, court.CourtSize,
		court.Status, court.IsAvailable, optPgTime(court.OpeningTime), optPgTime(court.ClosingTime)).
		Scan(&court.ID, &court.CreatedAt, &court.UpdatedAt)
}

func (r *PGCourtRepository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	row := r.db.QueryRow(ctx, `SELECT `+courtColumns+` FROM courts WHERE id=$1`, id)
	c, err := scanCourt(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *PGCourtRepository) ListByFacility(ctx context.Context, facilityID int64) ([]domain.Court, error) {
	rows, err := r.db.Query(ctx, `SELECT `+courtColumns+` FROM courts WHERE facility_id=$1 ORDER BY name`, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courts := make([]domain.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, *c)
	}
	return courts, rows.Err()
}

func (r *PGCourtRepository) UpdateStatus(ctx context.Context, id int64, status domain.CourtStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE courts SET status=$1, updated_at=now() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGCourtRepository) ListTimeSlots(ctx context.Context, courtID int64) ([]domain.TimeSlot, error) {
	rows, err := r.db.Query(ctx, `SELECT id, court_id, start_time, end_time, is_available, is_blocked, block_reason
		FROM time_slots WHERE court_id=$1 ORDER BY start_time`, courtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var s domain.TimeSlot
		var start, end pgtype.Time
		if err := rows.Scan(&s.ID, &s.CourtID, &start, &end, &s.IsAvailable, &s.IsBlocked, &s.BlockReason); err != nil {
			return nil, err
		}
		s.StartTime = toTimeOfDay(start)
		s.EndTime = toTimeOfDay(end)
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *PGCourtRepository) CreateTimeSlot(ctx context.Context, slot *domain.TimeSlot) error {
	// (court_id, start_time, end_time) is unique; a duplicate insert fails.
	return r.db.QueryRow(ctx, `INSERT INTO time_slots (court_id, start_time, end_time, is_available, is_blocked, block_reason)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		slot.CourtID, pgTime(slot.StartTime), pgTime(slot.EndTime),
		slot.IsAvailable, slot.IsBlocked, slot.BlockReason).Scan(&slot.ID)
}

func (r *PGCourtRepository) BlockTimeSlot(ctx context.Context, slotID int64, reason string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE time_slots SET is_blocked=true, block_reason=$1 WHERE id=$2`, reason, slotID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGCourtRepository) ListSports(ctx context.Context) ([]domain.Sport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, icon, is_active FROM sports WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := make([]domain.Sport, 0)
	for rows.Next() {
		var s domain.Sport
		if err := rows.Scan(&s.ID, &s.Name, &s.Icon, &s.IsActive); err != nil {
			return nil, err
		}
		sports = append(sports, s)
	}
	return sports, rows.Err()
}

var _ CourtRepository = (*PGCourtRepository)(nil)
