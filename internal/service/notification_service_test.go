// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/infrastructure/email"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/infrastructure/store"
)

// newTestNotificationService wires a NotificationService against the
// in-memory KV store with one email transport.
func newTestNotificationService(t *testing.T) (*NotificationService, *mocks.MockMessageBuilder, *email.MockTransport) {
	t.Helper()

	messageBuilder := &mocks.MockMessageBuilder{}
	transport := &email.MockTransport{}
	svc := NewNotificationService(
		store.NewNatsNotificationRepository(store.NewMockNatsKeyValue()),
		messageBuilder,
		[]domain.NotificationTransport{transport},
		ServiceConfig{},
	)
	return svc, messageBuilder, transport
}

// seedNotification creates a notification for an internal attendee with a
// full contact snapshot and walks it to the wanted status.
func seedNotification(t *testing.T, svc *NotificationService, messageBuilder *mocks.MockMessageBuilder, status models.NotificationStatus) *models.Notification {
	t.Helper()
	ctx := context.Background()

	messageBuilder.On("SendIndexNotification", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	messageBuilder.On("SendNotificationQueued", mock.Anything, mock.Anything).Return(nil)

	meeting := &models.Meeting{UID: "meeting-1", Title: "Budget review"}
	participation := &models.Participation{
		UID:        "participation-1",
		MeetingUID: "meeting-1",
		InternalAttendee: &models.InternalAttendee{
			UID: "user-1", FirstName: "Ada", LastName: "Lovelace",
			Email: "ada@example.org", Phone: "+15550100",
		},
		Status: models.ParticipationStatusInvited,
	}

	notification, err := svc.CreateForParticipation(ctx, meeting, participation, models.NotificationChannelEmail)
	require.NoError(t, err)

	steps := map[models.NotificationStatus][]func(context.Context, string) (*models.Notification, error){
		models.NotificationStatusPending: {},
		models.NotificationStatusQueued:  {svc.QueueNotification},
		models.NotificationStatusSending: {svc.QueueNotification, svc.MarkSending},
		models.NotificationStatusSent:    {svc.QueueNotification, svc.MarkSending, svc.MarkSent},
		models.NotificationStatusFailed: {svc.QueueNotification, func(ctx context.Context, uid string) (*models.Notification, error) {
			return svc.MarkFailed(ctx, uid, "mailbox unavailable")
		}},
	}
	for _, step := range steps[status] {
		notification, err = step(ctx, notification.UID)
		require.NoError(t, err)
	}
	return notification
}

func TestCreateForParticipation(t *testing.T) {
	ctx := context.Background()

	t.Run("internal attendee", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusPending)

		assert.NotEmpty(t, notification.UID)
		assert.Equal(t, models.NotificationStatusPending, notification.Status)
		assert.Equal(t, "user-1", notification.InternalRecipientUID)
		assert.Empty(t, notification.ExternalRecipientUID)
		assert.Equal(t, "ada@example.org", notification.Contact.Email)
	})

	t.Run("ambiguous attendee", func(t *testing.T) {
		svc, _, _ := newTestNotificationService(t)
		participation := &models.Participation{
			UID:              "participation-1",
			MeetingUID:       "meeting-1",
			InternalAttendee: &models.InternalAttendee{UID: "user-1"},
			ExternalAttendee: &models.ExternalAttendee{UID: "guest-1"},
		}

		_, err := svc.CreateForParticipation(ctx, &models.Meeting{UID: "meeting-1"}, participation, models.NotificationChannelEmail)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("unknown channel", func(t *testing.T) {
		svc, _, _ := newTestNotificationService(t)
		participation := &models.Participation{
			UID:              "participation-1",
			MeetingUID:       "meeting-1",
			InternalAttendee: &models.InternalAttendee{UID: "user-1"},
		}

		_, err := svc.CreateForParticipation(ctx, &models.Meeting{UID: "meeting-1"}, participation, models.NotificationChannel("fax"))

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func TestQueueNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("queue pending notification", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusPending)

		queued, err := svc.QueueNotification(ctx, notification.UID)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusQueued, queued.Status)
		messageBuilder.AssertCalled(t, "SendNotificationQueued", mock.Anything, mock.Anything)
	})

	t.Run("queue twice is a conflict", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusQueued)

		_, err := svc.QueueNotification(ctx, notification.UID)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	})

	t.Run("queue not found", func(t *testing.T) {
		svc, _, _ := newTestNotificationService(t)

		_, err := svc.QueueNotification(ctx, "missing")

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	invitation := domain.MeetingInvitation{MeetingTitle: "Budget review"}

	t.Run("dispatch delivers and marks sent", func(t *testing.T) {
		svc, messageBuilder, transport := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusQueued)
		transport.On("Deliver", mock.Anything, invitation).Return(nil)

		result, err := svc.Dispatch(ctx, notification.UID, invitation)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusSent, result.Status)
		assert.NotNil(t, result.SentAt)
		transport.AssertExpectations(t)
	})

	t.Run("dispatch marks failed when the transport errors", func(t *testing.T) {
		svc, messageBuilder, transport := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusQueued)
		transport.On("Deliver", mock.Anything, invitation).Return(errors.New("smtp: connection refused"))

		result, err := svc.Dispatch(ctx, notification.UID, invitation)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusFailed, result.Status)
		assert.Equal(t, "smtp: connection refused", result.ErrorMessage)
	})

	t.Run("dispatch without a transport for the channel", func(t *testing.T) {
		messageBuilder := &mocks.MockMessageBuilder{}
		svc := NewNotificationService(
			store.NewNatsNotificationRepository(store.NewMockNatsKeyValue()),
			messageBuilder,
			nil,
			ServiceConfig{},
		)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusQueued)

		result, err := svc.Dispatch(ctx, notification.UID, invitation)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusFailed, result.Status)
		assert.Contains(t, result.ErrorMessage, "no transport for channel email")
	})

	t.Run("dispatch a pending notification", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusPending)

		_, err := svc.Dispatch(ctx, notification.UID, invitation)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	})
}

func TestRetryNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("retry failed notification requeues it", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusFailed)

		retried, err := svc.RetryNotification(ctx, notification.UID)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusQueued, retried.Status)
		assert.Equal(t, 1, retried.RetryCount)
		assert.Empty(t, retried.ErrorMessage)
		assert.NotNil(t, retried.LastRetryAt)
	})

	t.Run("retry budget exhausted", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusFailed)

		// Burn the whole budget.
		for i := 0; i < models.DefaultMaxRetries; i++ {
			_, err := svc.RetryNotification(ctx, notification.UID)
			require.NoError(t, err)
			_, err = svc.MarkFailed(ctx, notification.UID, "mailbox unavailable")
			require.NoError(t, err)
		}

		_, err := svc.RetryNotification(ctx, notification.UID)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
		assert.Contains(t, err.Error(), "retry budget exhausted")
	})

	t.Run("retry a sent notification", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusSent)

		_, err := svc.RetryNotification(ctx, notification.UID)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	})
}

func TestCancelNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel queued notification", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusQueued)

		cancelled, err := svc.CancelNotification(ctx, notification.UID)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusCancelled, cancelled.Status)
	})

	t.Run("cancel twice is a conflict", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusQueued)

		_, err := svc.CancelNotification(ctx, notification.UID)
		require.NoError(t, err)

		_, err = svc.CancelNotification(ctx, notification.UID)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	})
}

func TestDeliveryConfirmations(t *testing.T) {
	ctx := context.Background()

	t.Run("sent then delivered then read", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusSent)

		delivered, err := svc.MarkDelivered(ctx, notification.UID)
		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusDelivered, delivered.Status)
		assert.NotNil(t, delivered.DeliveredAt)

		read, err := svc.MarkRead(ctx, notification.UID)
		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusRead, read.Status)
		assert.NotNil(t, read.ReadAt)
	})

	t.Run("delivered before sent", func(t *testing.T) {
		svc, messageBuilder, _ := newTestNotificationService(t)
		notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusQueued)

		_, err := svc.MarkDelivered(ctx, notification.UID)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	})
}

// The retry path stamps the retry time; a stale LastRetryAt would hide a
// stuck dispatcher.
func TestRetryStampsTime(t *testing.T) {
	svc, messageBuilder, _ := newTestNotificationService(t)
	notification := seedNotification(t, svc, messageBuilder, models.NotificationStatusFailed)

	before := time.Now().UTC().Add(-time.Second)
	retried, err := svc.RetryNotification(context.Background(), notification.UID)

	require.NoError(t, err)
	assert.True(t, retried.LastRetryAt.After(before))
}
