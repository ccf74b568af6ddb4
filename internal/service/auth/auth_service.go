package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quickcourt/courtbooking/internal/auth"
	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/kafka"
	"github.com/quickcourt/courtbooking/internal/repository"
)

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AuthService struct {
	users              repository.UserRepository
	producer           Producer
	notificationsTopic string
	jwtSecret          string
	tokenTTL           time.Duration
	otpTTL             time.Duration
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	UserType    domain.UserType
	PhoneNumber string
}

func NewAuthService(users repository.UserRepository, producer Producer, notificationsTopic, jwtSecret string, tokenTTL, otpTTL time.Duration) *AuthService {
	return &AuthService{
		users:              users,
		producer:           producer,
		notificationsTopic: notificationsTopic,
		jwtSecret:          jwtSecret,
		tokenTTL:           tokenTTL,
		otpTTL:             otpTTL,
	}
}

// Register creates an unverified account and mails a one-time code.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, errors.New("email is required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if input.UserType != domain.UserTypePlayer && input.UserType != domain.UserTypeOwner {
		return nil, errors.New("user type must be player or owner")
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, errors.New("email is already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		UserType:     input.UserType,
		PhoneNumber:  input.PhoneNumber,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueOTP(ctx, user); err != nil {
		log.Printf("WARNING: failed to issue OTP for %s: %v", user.Email, err)
	}
	return user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return nil
	}

	otp, err := s.users.GetOTP(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("no verification code issued, request a new one")
		}
		return err
	}
	if otp.Expired(time.Now()) {
		return errors.New("verification code expired, request a new one")
	}
	if otp.Attempts >= domain.MaxOTPAttempts {
		return errors.New("too many attempts, request a new code")
	}
	if otp.Code != code {
		_ = s.users.IncrementOTPAttempts(ctx, otp.ID)
		return errors.New("invalid verification code")
	}

	if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return err
	}
	return s.users.DeleteOTP(ctx, user.ID)
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return errors.New("email is already verified")
	}
	return s.issueOTP(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, errors.New("invalid email or password")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid email or password")
	}
	if !user.IsEmailVerified {
		return "", nil, errors.New("email is not verified")
	}

	token, err := auth.CreateAccessToken(s.jwtSecret, user.ID, string(user.UserType), user.Email, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issueOTP(ctx context.Context, user *domain.User) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}
	otp := &domain.EmailOTP{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(s.otpTTL),
	}
	if err := s.users.SaveOTP(ctx, otp); err != nil {
		return err
	}

	if s.producer == nil || s.notificationsTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:    "email_otp",
		UserID:  user.ID,
		Email:   user.Email,
		OTPCode: code,
	}
	return s.producer.Publish(ctx, s.notificationsTopic, user.Email, event)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

var _ AuthUseCase = (*AuthService)(nil)
