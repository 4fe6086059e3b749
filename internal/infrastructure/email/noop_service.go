// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

// NoOpService is an email transport that logs instead of sending. It is
// used when SMTP is not configured, e.g. in local development.
type NoOpService struct{}

// NewNoOpService creates a new no-op email transport.
func NewNoOpService() *NoOpService {
	return &NoOpService{}
}

// Channel returns the channel this transport delivers over.
func (s *NoOpService) Channel() models.NotificationChannel {
	return models.NotificationChannelEmail
}

// Deliver logs the invitation without sending anything.
func (s *NoOpService) Deliver(ctx context.Context, invitation domain.MeetingInvitation) error {
	slog.InfoContext(ctx, "email delivery disabled, skipping invitation",
		"recipient_email", invitation.RecipientEmail,
		"meeting_title", invitation.MeetingTitle,
	)
	return nil
}
