package email

import (
	"context"
	"fmt"

	"github.com/quickcourt/courtbooking/internal/kafka"
)

// Sender delivers notification mail for booking transitions and OTP codes.
// Delivery is best-effort; a failure never rolls back the booking that
// triggered it.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case "email_otp":
		fmt.Printf("send email to %s: your verification code is %s\n", event.Email, event.OTPCode)
	default:
		fmt.Printf("send email to %s about %s for booking %s on %s %s-%s\n",
			event.Email, event.Type, event.BookingID, event.BookingDate, event.StartTime, event.EndTime)
	}
	return nil
}
