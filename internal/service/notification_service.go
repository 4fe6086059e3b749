// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
)

// NotificationService tracks outbound notifications through the delivery
// pipeline and hands queued ones to the channel transports.
type NotificationService struct {
	NotificationRepository domain.NotificationRepository
	MessageBuilder         domain.MessageBuilder
	Transports             map[models.NotificationChannel]domain.NotificationTransport
	Config                 ServiceConfig
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationRepository domain.NotificationRepository,
	messageBuilder domain.MessageBuilder,
	transports []domain.NotificationTransport,
	config ServiceConfig,
) *NotificationService {
	byChannel := make(map[models.NotificationChannel]domain.NotificationTransport, len(transports))
	for _, t := range transports {
		byChannel[t.Channel()] = t
	}
	if config.MaxNotificationRetries <= 0 {
		config.MaxNotificationRetries = models.DefaultMaxRetries
	}
	return &NotificationService{
		NotificationRepository: notificationRepository,
		MessageBuilder:         messageBuilder,
		Transports:             byChannel,
		Config:                 config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *NotificationService) ServiceReady() bool {
	return s.NotificationRepository != nil && s.MessageBuilder != nil
}

// notificationGuardError maps the model's guard errors onto the service
// error taxonomy.
func notificationGuardError(err error) error {
	switch {
	case errors.Is(err, models.ErrAmbiguousRecipient),
		errors.Is(err, models.ErrInvalidRecipient):
		return domain.NewValidationError(err.Error(), err)
	case errors.Is(err, models.ErrNotificationFinal),
		errors.Is(err, models.ErrNotificationNotQueued),
		errors.Is(err, models.ErrInvalidStatusOrder),
		errors.Is(err, errRetryBudgetExhausted):
		return domain.NewConflictError(err.Error(), err)
	}
	return domain.NewInternalError("notification transition failed", err)
}

// CreateForParticipation creates a pending notification for one
// participation of a meeting, capturing the attendee's contact details as
// they are right now.
func (s *NotificationService) CreateForParticipation(ctx context.Context, meeting *models.Meeting, participation *models.Participation, channel models.NotificationChannel) (*models.Notification, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("notification service is not ready")
	}

	if !channel.IsValid() {
		return nil, domain.NewValidationError("unknown notification channel")
	}
	if err := participation.CheckAttendeeExclusivity(); err != nil {
		return nil, domain.NewValidationError(err.Error(), err)
	}

	now := time.Now().UTC()
	notification := &models.Notification{
		MeetingUID: meeting.UID,
		Channel:    channel,
		Status:     models.NotificationStatusPending,
		Contact:    participation.ContactSnapshot(),
		CreatedAt:  &now,
		UpdatedAt:  &now,
	}
	if participation.InternalAttendee != nil {
		notification.InternalRecipientUID = participation.InternalAttendee.UID
	} else {
		notification.ExternalRecipientUID = participation.ExternalAttendee.UID
	}

	if err := s.NotificationRepository.Create(ctx, notification); err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("notification_uid", notification.UID))
	slog.DebugContext(ctx, "created notification", "channel", channel, "recipient_type", notification.RecipientType())

	if err := s.MessageBuilder.SendIndexNotification(ctx, models.ActionCreated, *notification); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for new notification", logging.ErrKey, err)
	}

	return notification, nil
}

// GetNotification fetches one notification by UID.
func (s *NotificationService) GetNotification(ctx context.Context, notificationUID string) (*models.Notification, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("notification service is not ready")
	}
	return s.NotificationRepository.Get(ctx, notificationUID)
}

// ListByMeeting fetches every notification of one meeting.
func (s *NotificationService) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Notification, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("notification service is not ready")
	}
	return s.NotificationRepository.ListByMeeting(ctx, meetingUID)
}

// transition loads the notification with its revision, applies fn to it
// and persists the result. Every explicit pipeline step goes through here.
func (s *NotificationService) transition(ctx context.Context, notificationUID string, fn func(*models.Notification) error) (*models.Notification, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("notification service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("notification_uid", notificationUID))

	notification, revision, err := s.NotificationRepository.GetWithRevision(ctx, notificationUID)
	if err != nil {
		return nil, err
	}

	if err := fn(notification); err != nil {
		slog.WarnContext(ctx, "notification transition rejected",
			logging.ErrKey, err, "status", notification.Status)
		return nil, notificationGuardError(err)
	}

	now := time.Now().UTC()
	notification.UpdatedAt = &now

	if err := s.NotificationRepository.Update(ctx, notification, revision); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "notification transitioned", "status", notification.Status)

	if err := s.MessageBuilder.SendIndexNotification(ctx, models.ActionUpdated, *notification); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for notification", logging.ErrKey, err)
	}

	return notification, nil
}

// QueueNotification moves a pending notification to queued and announces
// it to the dispatcher.
func (s *NotificationService) QueueNotification(ctx context.Context, notificationUID string) (*models.Notification, error) {
	notification, err := s.transition(ctx, notificationUID, func(n *models.Notification) error {
		return n.Queue()
	})
	if err != nil {
		return nil, err
	}

	if err := s.MessageBuilder.SendNotificationQueued(ctx, *notification); err != nil {
		slog.ErrorContext(ctx, "error sending notification queued message", logging.ErrKey, err)
	}

	return notification, nil
}

// MarkSending records that a transport picked the notification up.
func (s *NotificationService) MarkSending(ctx context.Context, notificationUID string) (*models.Notification, error) {
	return s.transition(ctx, notificationUID, func(n *models.Notification) error {
		return n.MarkSending()
	})
}

// MarkSent records that the transport accepted the message.
func (s *NotificationService) MarkSent(ctx context.Context, notificationUID string) (*models.Notification, error) {
	return s.transition(ctx, notificationUID, func(n *models.Notification) error {
		return n.MarkSent(time.Now().UTC())
	})
}

// MarkDelivered records provider delivery confirmation.
func (s *NotificationService) MarkDelivered(ctx context.Context, notificationUID string) (*models.Notification, error) {
	return s.transition(ctx, notificationUID, func(n *models.Notification) error {
		return n.MarkDelivered(time.Now().UTC())
	})
}

// MarkRead records that the recipient opened the message.
func (s *NotificationService) MarkRead(ctx context.Context, notificationUID string) (*models.Notification, error) {
	return s.transition(ctx, notificationUID, func(n *models.Notification) error {
		return n.MarkRead(time.Now().UTC())
	})
}

// MarkFailed records a delivery failure with the transport's error message.
func (s *NotificationService) MarkFailed(ctx context.Context, notificationUID string, errMsg string) (*models.Notification, error) {
	return s.transition(ctx, notificationUID, func(n *models.Notification) error {
		return n.MarkFailed(errMsg)
	})
}

// CancelNotification withdraws a notification from the pipeline.
func (s *NotificationService) CancelNotification(ctx context.Context, notificationUID string) (*models.Notification, error) {
	return s.transition(ctx, notificationUID, func(n *models.Notification) error {
		return n.Cancel()
	})
}

// RetryNotification puts a failed notification back in the queue when its
// retry budget allows it. An exhausted budget is a conflict, not a silent
// no-op, so callers learn why the notification stays failed.
func (s *NotificationService) RetryNotification(ctx context.Context, notificationUID string) (*models.Notification, error) {
	notification, err := s.transition(ctx, notificationUID, func(n *models.Notification) error {
		if !n.CanRetry(s.Config.MaxNotificationRetries) {
			if n.Status != models.NotificationStatusFailed {
				return models.ErrInvalidStatusOrder
			}
			return errRetryBudgetExhausted
		}
		n.IncrementRetry(time.Now().UTC())
		return n.Requeue()
	})
	if err != nil {
		return nil, err
	}

	if err := s.MessageBuilder.SendNotificationQueued(ctx, *notification); err != nil {
		slog.ErrorContext(ctx, "error sending notification queued message", logging.ErrKey, err)
	}

	return notification, nil
}

var errRetryBudgetExhausted = errors.New("notification retry budget exhausted")

// Dispatch delivers one queued notification over its channel transport and
// records the outcome. Channels without a wired transport fail the
// notification so the retry path stays available once a transport exists.
func (s *NotificationService) Dispatch(ctx context.Context, notificationUID string, invitation domain.MeetingInvitation) (*models.Notification, error) {
	notification, err := s.MarkSending(ctx, notificationUID)
	if err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("notification_uid", notificationUID))

	transport, ok := s.Transports[notification.Channel]
	if !ok {
		slog.WarnContext(ctx, "no transport wired for channel", "channel", notification.Channel)
		return s.MarkFailed(ctx, notificationUID, "no transport for channel "+string(notification.Channel))
	}

	if err := transport.Deliver(ctx, invitation); err != nil {
		slog.ErrorContext(ctx, "notification delivery failed", logging.ErrKey, err, "channel", notification.Channel)
		return s.MarkFailed(ctx, notificationUID, err.Error())
	}

	return s.MarkSent(ctx, notificationUID)
}
