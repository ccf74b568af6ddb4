package domain

import "time"

type Facility struct {
	ID      int64
	OwnerID int64

	Name        string
	Description string
	Address     string
	City        string
	State       string
	Pincode     string

	Phone string
	Email string

	OpeningTime TimeOfDay
	ClosingTime TimeOfDay

	IsActive   bool
	IsVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time

	Courts []Court
}
