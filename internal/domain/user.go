package domain

import "time"

type UserType string

const (
	UserTypePlayer UserType = "player"
	UserTypeOwner  UserType = "owner"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	UserType     UserType
	PhoneNumber  string

	IsEmailVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// EmailOTP is a short-lived verification code mailed after registration.
type EmailOTP struct {
	ID        int64
	UserID    int64
	Code      string
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

const MaxOTPAttempts = 5

func (o *EmailOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
