// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingNotification(channel NotificationChannel) *Notification {
	return &Notification{
		UID:                  "notification-1",
		MeetingUID:           "meeting-1",
		InternalRecipientUID: "user-1",
		Channel:              channel,
		Status:               NotificationStatusPending,
		Contact: ContactSnapshot{
			Name:  "Ada Lovelace",
			Email: "ada@example.org",
			Phone: "+14155550100",
		},
	}
}

func TestNotificationCheckRecipientExclusivity(t *testing.T) {
	tests := []struct {
		name        string
		internalUID string
		externalUID string
		wantErr     bool
	}{
		{name: "internal only", internalUID: "user-1"},
		{name: "external only", externalUID: "guest-1"},
		{name: "both set", internalUID: "user-1", externalUID: "guest-1", wantErr: true},
		{name: "neither set", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notification := &Notification{
				InternalRecipientUID: tt.internalUID,
				ExternalRecipientUID: tt.externalUID,
			}

			err := notification.CheckRecipientExclusivity()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAmbiguousRecipient)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotificationHasValidRecipient(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(n *Notification)
		channel NotificationChannel
		valid   bool
	}{
		{
			name:    "email with address",
			channel: NotificationChannelEmail,
			mutate:  func(n *Notification) {},
			valid:   true,
		},
		{
			name:    "email without address",
			channel: NotificationChannelEmail,
			mutate:  func(n *Notification) { n.Contact.Email = "" },
			valid:   false,
		},
		{
			name:    "sms with phone",
			channel: NotificationChannelSMS,
			mutate:  func(n *Notification) {},
			valid:   true,
		},
		{
			name:    "whatsapp without phone",
			channel: NotificationChannelWhatsApp,
			mutate:  func(n *Notification) { n.Contact.Phone = "" },
			valid:   false,
		},
		{
			name:    "push with internal recipient",
			channel: NotificationChannelPush,
			mutate:  func(n *Notification) {},
			valid:   true,
		},
		{
			name:    "in_app with external recipient",
			channel: NotificationChannelInApp,
			mutate: func(n *Notification) {
				n.InternalRecipientUID = ""
				n.ExternalRecipientUID = "guest-1"
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notification := pendingNotification(tt.channel)
			tt.mutate(notification)

			assert.Equal(t, tt.valid, notification.HasValidRecipient())
		})
	}
}

func TestNotificationQueue(t *testing.T) {
	t.Run("queue pending notification", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)

		err := notification.Queue()

		require.NoError(t, err)
		assert.Equal(t, NotificationStatusQueued, notification.Status)
	})

	t.Run("queue without a resolvable contact", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)
		notification.Contact.Email = ""

		err := notification.Queue()

		assert.ErrorIs(t, err, ErrInvalidRecipient)
		assert.Equal(t, NotificationStatusPending, notification.Status)
	})

	t.Run("queue an already queued notification", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)
		require.NoError(t, notification.Queue())

		err := notification.Queue()

		assert.ErrorIs(t, err, ErrInvalidStatusOrder)
	})
}

func TestNotificationDeliveryPipeline(t *testing.T) {
	now := time.Now().UTC()

	t.Run("full happy path", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)

		require.NoError(t, notification.Queue())
		require.NoError(t, notification.MarkSending())
		require.NoError(t, notification.MarkSent(now))
		require.NoError(t, notification.MarkDelivered(now))
		require.NoError(t, notification.MarkRead(now))

		assert.Equal(t, NotificationStatusRead, notification.Status)
		assert.NotNil(t, notification.SentAt)
		assert.NotNil(t, notification.DeliveredAt)
		assert.NotNil(t, notification.ReadAt)
	})

	t.Run("sending requires queued", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)

		err := notification.MarkSending()

		assert.ErrorIs(t, err, ErrNotificationNotQueued)
	})

	t.Run("delivered requires sent", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)
		require.NoError(t, notification.Queue())

		err := notification.MarkDelivered(now)

		assert.ErrorIs(t, err, ErrInvalidStatusOrder)
	})

	t.Run("read timestamp is only set once", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)
		require.NoError(t, notification.Queue())
		require.NoError(t, notification.MarkSent(now))

		first := now.Add(time.Minute)
		require.NoError(t, notification.MarkRead(first))
		require.NotNil(t, notification.ReadAt)
		assert.Equal(t, first, *notification.ReadAt)

		err := notification.MarkRead(first.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, NotificationStatusRead, notification.Status)
		assert.Equal(t, first, *notification.ReadAt)
	})

	t.Run("failed only from queued or sending", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)
		require.NoError(t, notification.Queue())
		require.NoError(t, notification.MarkSent(now))

		err := notification.MarkFailed("smtp timeout")

		assert.ErrorIs(t, err, ErrInvalidStatusOrder)
	})

	t.Run("cancel from any non-final state", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)
		require.NoError(t, notification.Queue())

		require.NoError(t, notification.Cancel())
		assert.Equal(t, NotificationStatusCancelled, notification.Status)

		err := notification.Cancel()
		assert.ErrorIs(t, err, ErrNotificationFinal)
	})
}

func TestNotificationRetry(t *testing.T) {
	now := time.Now().UTC()

	failedNotification := func() *Notification {
		notification := pendingNotification(NotificationChannelEmail)
		require.NoError(t, notification.Queue())
		require.NoError(t, notification.MarkFailed("smtp timeout"))
		return notification
	}

	t.Run("retry counter and timestamp", func(t *testing.T) {
		notification := failedNotification()

		notification.IncrementRetry(now)
		notification.IncrementRetry(now.Add(time.Minute))

		assert.Equal(t, 2, notification.RetryCount)
		require.NotNil(t, notification.LastRetryAt)
		assert.Equal(t, now.Add(time.Minute), *notification.LastRetryAt)
	})

	t.Run("can retry within budget", func(t *testing.T) {
		notification := failedNotification()

		assert.True(t, notification.CanRetry(DefaultMaxRetries))

		notification.RetryCount = DefaultMaxRetries - 1
		assert.True(t, notification.CanRetry(DefaultMaxRetries))

		notification.RetryCount = DefaultMaxRetries
		assert.False(t, notification.CanRetry(DefaultMaxRetries))
	})

	t.Run("only failed notifications can retry", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)
		require.NoError(t, notification.Queue())

		assert.False(t, notification.CanRetry(DefaultMaxRetries))
	})

	t.Run("requeue clears the error", func(t *testing.T) {
		notification := failedNotification()

		err := notification.Requeue()

		require.NoError(t, err)
		assert.Equal(t, NotificationStatusQueued, notification.Status)
		assert.Empty(t, notification.ErrorMessage)
	})

	t.Run("requeue requires failed", func(t *testing.T) {
		notification := pendingNotification(NotificationChannelEmail)

		err := notification.Requeue()

		assert.ErrorIs(t, err, ErrInvalidStatusOrder)
	})
}
