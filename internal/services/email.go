package services

import (
	"context"
	"fmt"
	"log"

	"eventmanagement/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendParticipantInvite sends the invitation email using the "participant_invite" template.
func (s *emailService) SendParticipantInvite(ctx context.Context, data *domain.ParticipantInviteEmailData) error {
	if data == nil {
		return fmt.Errorf("participant invite data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("participant_invite", data)
	if err != nil {
		return fmt.Errorf("failed to render participant_invite template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send participant invite email: %w", err)
	}
	log.Printf("[EMAIL] Participant invite sent to %s", data.Email)
	return nil
}
