package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/quickcourt/courtbooking/internal/domain"
)

func TestPGTimeRoundTrip(t *testing.T) {
	for _, tod := range []domain.TimeOfDay{
		domain.NewTimeOfDay(0, 0),
		domain.NewTimeOfDay(9, 45),
		domain.NewTimeOfDay(23, 59),
	} {
		pg := pgTime(tod)
		assert.True(t, pg.Valid)
		assert.Equal(t, tod, toTimeOfDay(pg))
	}
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"pending", "confirmed"}, activeStatuses())
}

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewBookingRepository(pool))
	assert.NotNil(t, NewCourtRepository(pool))
	assert.NotNil(t, NewFacilityRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
	assert.NotNil(t, NewRatingRepository(pool))
	assert.NotNil(t, NewNotificationRepository(pool))
}
