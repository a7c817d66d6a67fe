package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"drivehire-backend/internal/logger"
)

type emailService struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

func NewEmailService(apiKey, fromAddr, fromName string) EmailService {
	return &emailService{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (s *emailService) send(ctx context.Context, to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromAddr)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmailPlainText(from, subject, recipient, body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email provider rejected message: status %d", response.StatusCode)
	}
	logger.Debug("email sent", "to", to, "subject", subject)
	return nil
}

func (s *emailService) SendBookingCreated(ctx context.Context, to, name, code string) error {
	subject := fmt.Sprintf("Booking %s received", code)
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s has been received and is waiting for the driver's confirmation. You will be notified as soon as the driver responds.\n\nBest regards,\nThe DriveHire Team", name, code)
	return s.send(ctx, to, subject, body)
}

func (s *emailService) SendBookingConfirmed(ctx context.Context, to, name, code, startDate string) error {
	subject := fmt.Sprintf("Booking %s confirmed", code)
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s has been confirmed. The trip starts on %s. Please make sure the deposit is paid before the trip begins.\n\nBest regards,\nThe DriveHire Team", name, code, startDate)
	return s.send(ctx, to, subject, body)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, to, name, code, reason string) error {
	subject := fmt.Sprintf("Booking %s cancelled", code)
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s has been cancelled.", name, code)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe DriveHire Team"
	return s.send(ctx, to, subject, body)
}

func (s *emailService) SendPaymentVerified(ctx context.Context, to, name, code string, amount int64) error {
	subject := fmt.Sprintf("Payment received for booking %s", code)
	body := fmt.Sprintf("Hello %s,\n\nYour payment of %d for booking %s has been verified. Thank you.\n\nBest regards,\nThe DriveHire Team", name, amount, code)
	return s.send(ctx, to, subject, body)
}

func (s *emailService) SendPaymentRejected(ctx context.Context, to, name, code string, amount int64) error {
	subject := fmt.Sprintf("Payment rejected for booking %s", code)
	body := fmt.Sprintf("Hello %s,\n\nYour payment of %d for booking %s could not be verified. Please check the proof of payment and submit it again.\n\nBest regards,\nThe DriveHire Team", name, amount, code)
	return s.send(ctx, to, subject, body)
}

func (s *emailService) SendPaymentReminder(ctx context.Context, to, name, code, startDate string, remaining int64) error {
	subject := fmt.Sprintf("Payment reminder for booking %s", code)
	body := fmt.Sprintf("Hello %s,\n\nYour trip for booking %s starts on %s and %d is still outstanding. Please complete the payment before the trip begins.\n\nBest regards,\nThe DriveHire Team", name, code, startDate, remaining)
	return s.send(ctx, to, subject, body)
}
