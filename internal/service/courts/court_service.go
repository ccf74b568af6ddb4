package courts

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/repository"
)

type CourtUseCase interface {
	ListVenues(ctx context.Context) ([]domain.Facility, error)
	GetVenue(ctx context.Context, id int64) (*domain.Facility, error)
	ListSports(ctx context.Context) ([]domain.Sport, error)
	CreateFacility(ctx context.Context, ownerID int64, input FacilityInput) (*domain.Facility, error)
	UpdateFacility(ctx context.Context, ownerID, facilityID int64, input FacilityInput) (*domain.Facility, error)
	CreateCourt(ctx context.Context, ownerID int64, input CourtInput) (*domain.Court, error)
	UpdateCourtStatus(ctx context.Context, ownerID, courtID int64, status domain.CourtStatus) error
	AddTimeSlot(ctx context.Context, ownerID int64, input TimeSlotInput) (*domain.TimeSlot, error)
	BlockTimeSlot(ctx context.Context, ownerID, courtID, slotID int64, reason string) error
	DashboardKPIs(ctx context.Context, ownerID int64) (*domain.DashboardKPIs, error)
	RecentBookings(ctx context.Context, ownerID int64) ([]domain.Booking, error)
	PeakHours(ctx context.Context, ownerID int64) ([]domain.PeakHour, error)
}

// VenueCache is the cache-aside store for the public venue list.
type VenueCache interface {
	GetVenues(ctx context.Context) ([]domain.Facility, error)
	SetVenues(ctx context.Context, venues []domain.Facility) error
}

type CourtService struct {
	facilities repository.FacilityRepository
	courts     repository.CourtRepository
	bookings   repository.BookingRepository
	cache      VenueCache
}

type FacilityInput struct {
	Name        string
	Description string
	Address     string
	City        string
	State       string
	Pincode     string
	Phone       string
	Email       string
	OpeningTime domain.TimeOfDay
	ClosingTime domain.TimeOfDay
}

type CourtInput struct {
	SportID      int64
	Name         string
	Description  string
	PricePerHour decimal.Decimal
	Currency     string
	CourtNumber  string
	SurfaceType  string
	CourtSize    string
	OpeningTime  *domain.TimeOfDay
	ClosingTime  *domain.TimeOfDay
}

type TimeSlotInput struct {
	CourtID   int64
	StartTime domain.TimeOfDay
	EndTime   domain.TimeOfDay
}

func NewCourtService(
	facilities repository.FacilityRepository,
	courts repository.CourtRepository,
	bookings repository.BookingRepository,
	cache VenueCache,
) *CourtService {
	return &CourtService{facilities: facilities, courts: courts, bookings: bookings, cache: cache}
}

func (s *CourtService) ListVenues(ctx context.Context) ([]domain.Facility, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetVenues(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	venues, err := s.facilities.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range venues {
		courts, err := s.courts.ListByFacility(ctx, venues[i].ID)
		if err != nil {
			return nil, err
		}
		venues[i].Courts = courts
	}
	if s.cache != nil {
		_ = s.cache.SetVenues(ctx, venues)
	}
	return venues, nil
}

func (s *CourtService) GetVenue(ctx context.Context, id int64) (*domain.Facility, error) {
	venue, err := s.facilities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	courts, err := s.courts.ListByFacility(ctx, venue.ID)
	if err != nil {
		return nil, err
	}
	venue.Courts = courts
	return venue, nil
}

// ListSports serves the reference data the court creation form is built on.
func (s *CourtService) ListSports(ctx context.Context) ([]domain.Sport, error) {
	return s.courts.ListSports(ctx)
}

func (s *CourtService) CreateFacility(ctx context.Context, ownerID int64, input FacilityInput) (*domain.Facility, error) {
	if input.OpeningTime >= input.ClosingTime {
		return nil, domain.ErrInvalidInterval
	}
	facility := &domain.Facility{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		Pincode:     input.Pincode,
		Phone:       input.Phone,
		Email:       input.Email,
		OpeningTime: input.OpeningTime,
		ClosingTime: input.ClosingTime,
		IsActive:    true,
	}
	if err := s.facilities.Create(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

func (s *CourtService) UpdateFacility(ctx context.Context, ownerID, facilityID int64, input FacilityInput) (*domain.Facility, error) {
	facility, err := s.ownedFacility(ctx, ownerID, facilityID)
	if err != nil {
		return nil, err
	}
	if input.OpeningTime >= input.ClosingTime {
		return nil, domain.ErrInvalidInterval
	}

	facility.Name = input.Name
	facility.Description = input.Description
	facility.Address = input.Address
	facility.City = input.City
	facility.State = input.State
	facility.Pincode = input.Pincode
	facility.Phone = input.Phone
	facility.Email = input.Email
	facility.OpeningTime = input.OpeningTime
	facility.ClosingTime = input.ClosingTime

	if err := s.facilities.Update(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

// CreateCourt attaches the court to the owner's facility; owners without a
// facility must register one first.
func (s *CourtService) CreateCourt(ctx context.Context, ownerID int64, input CourtInput) (*domain.Court, error) {
	facility, err := s.facilities.FirstByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("you need to create a facility before adding courts")
		}
		return nil, err
	}
	if input.PricePerHour.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("price per hour must be positive")
	}

	court := &domain.Court{
		FacilityID:   facility.ID,
		SportID:      input.SportID,
		Name:         input.Name,
		Description:  input.Description,
		PricePerHour: input.PricePerHour,
		Currency:     input.Currency,
		CourtNumber:  input.CourtNumber,
		SurfaceType:  input.SurfaceType,
		CourtSize:    input.CourtSize,
		Status:       domain.CourtStatusActive,
		IsAvailable:  true,
		OpeningTime:  input.OpeningTime,
		ClosingTime:  input.ClosingTime,
	}
	if court.Currency == "" {
		court.Currency = "INR"
	}
	if err := s.courts.Create(ctx, court); err != nil {
		return nil, err
	}
	return court, nil
}

func (s *CourtService) UpdateCourtStatus(ctx context.Context, ownerID, courtID int64, status domain.CourtStatus) error {
	if !domain.ValidCourtStatus(status) {
		return errors.New("invalid court status")
	}
	if _, err := s.ownedCourt(ctx, ownerID, courtID); err != nil {
		return err
	}
	return s.courts.UpdateStatus(ctx, courtID, status)
}

func (s *CourtService) AddTimeSlot(ctx context.Context, ownerID int64, input TimeSlotInput) (*domain.TimeSlot, error) {
	if input.StartTime >= input.EndTime {
		return nil, domain.ErrInvalidInterval
	}
	if _, err := s.ownedCourt(ctx, ownerID, input.CourtID); err != nil {
		return nil, err
	}

	slot := &domain.TimeSlot{
		CourtID:     input.CourtID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsAvailable: true,
	}
	if err := s.courts.CreateTimeSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *CourtService) BlockTimeSlot(ctx context.Context, ownerID, courtID, slotID int64, reason string) error {
	if _, err := s.ownedCourt(ctx, ownerID, courtID); err != nil {
		return err
	}
	return s.courts.BlockTimeSlot(ctx, slotID, reason)
}

func (s *CourtService) DashboardKPIs(ctx context.Context, ownerID int64) (*domain.DashboardKPIs, error) {
	return s.facilities.DashboardKPIs(ctx, ownerID)
}

func (s *CourtService) RecentBookings(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID, 10)
}

func (s *CourtService) PeakHours(ctx context.Context, ownerID int64) ([]domain.PeakHour, error) {
	since := time.Now().AddDate(0, 0, -30)
	return s.facilities.PeakHours(ctx, ownerID, since)
}

func (s *CourtService) ownedFacility(ctx context.Context, ownerID, facilityID int64) (*domain.Facility, error) {
	facility, err := s.facilities.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if facility.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return facility, nil
}

func (s *CourtService) ownedCourt(ctx context.Context, ownerID, courtID int64) (*domain.Court, error) {
	court, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedFacility(ctx, ownerID, court.FacilityID); err != nil {
		return nil, err
	}
	return court, nil
}

var _ CourtUseCase = (*CourtService)(nil)
