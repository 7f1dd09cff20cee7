package services

import (
	"context"
	"fmt"
	"html"

	"eventmanagement/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService creates an EmailService that renders and sends
// domain-level emails through the given mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationData) error {
	subject := fmt.Sprintf("You're registered for %s", data.EventTitle)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour registration for %s is confirmed.\n\nWhen: %s\nWhere: %s\nParticipants: %d\n",
		data.Name, data.EventTitle, data.EventStart, data.Location, data.Participants,
	)
	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your registration for <strong>%s</strong> is confirmed.</p>"+
			"<p>When: %s<br>Where: %s<br>Participants: %d</p>",
		html.EscapeString(data.Name), html.EscapeString(data.EventTitle),
		data.EventStart, html.EscapeString(data.Location), data.Participants,
	)
	if err := s.mailer.Send(data.Email, subject, htmlBody, text); err != nil {
		return fmt.Errorf("send registration confirmation: %w", err)
	}
	return nil
}
