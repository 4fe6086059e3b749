// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package email delivers meeting notifications over SMTP. It implements
// the email channel of the domain.NotificationTransport interface.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
)

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string // Optional for authenticated SMTP
	Password string // Optional for authenticated SMTP
}

// SMTPService delivers email-channel notifications via SMTP.
type SMTPService struct {
	config    SMTPConfig
	templates *TemplateManager
}

// NewSMTPService creates a new SMTP email transport.
func NewSMTPService(config SMTPConfig) (*SMTPService, error) {
	templates, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}

	return &SMTPService{
		config:    config,
		templates: templates,
	}, nil
}

// Channel returns the channel this transport delivers over.
func (s *SMTPService) Channel() models.NotificationChannel {
	return models.NotificationChannelEmail
}

// Deliver renders and sends an invitation email to the recipient.
func (s *SMTPService) Deliver(ctx context.Context, invitation domain.MeetingInvitation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", invitation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", invitation.MeetingTitle))

	if invitation.RecipientEmail == "" {
		return fmt.Errorf("recipient email is empty")
	}

	rendered, err := s.templates.RenderInvitation(invitation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render invitation templates", logging.ErrKey, err)
		return err
	}

	subject := fmt.Sprintf("Meeting Invitation: %s", invitation.MeetingTitle)
	message := buildEmailMessage(invitation.RecipientEmail, subject, rendered.HTML, rendered.Text, s.config)

	if err := sendEmailMessage(invitation.RecipientEmail, message, s.config); err != nil {
		slog.ErrorContext(ctx, "failed to send invitation email", logging.ErrKey, err)
		return err
	}

	slog.DebugContext(ctx, "sent invitation email")
	return nil
}
