// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package messaging publishes workflow events and indexing messages to NATS.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
)

// INatsConn is the NATS connection interface needed by the MessageBuilder.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// indexerMessage is the envelope the indexer service consumes.
type indexerMessage struct {
	Action models.MessageAction `json:"action"`
	Data   any                  `json:"data"`
	Tags   []string             `json:"tags,omitempty"`
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// sendIndexerMessage sends an indexing message for a created or updated
// resource, or a bare UID for a deleted one.
func (m *MessageBuilder) sendIndexerMessage(ctx context.Context, subject string, action models.MessageAction, data any, tags []string) error {
	var payload any
	switch action {
	case models.ActionCreated, models.ActionUpdated:
		payload = data
	case models.ActionDeleted:
		// The data should just be a string of the UID being deleted.
		payload = data
	}

	message, err := json.Marshal(indexerMessage{
		Action: action,
		Data:   payload,
		Tags:   tags,
	})
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling indexer message", logging.ErrKey, err, "subject", subject)
		return err
	}

	return m.sendMessage(ctx, subject, message)
}

// SendIndexMeeting sends an indexing message for a meeting.
func (m *MessageBuilder) SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.Meeting) error {
	return m.sendIndexerMessage(ctx, models.IndexMeetingSubject, action, data, data.Tags())
}

// SendDeleteIndexMeeting sends a message to remove a meeting from the index.
func (m *MessageBuilder) SendDeleteIndexMeeting(ctx context.Context, data string) error {
	return m.sendIndexerMessage(ctx, models.IndexMeetingSubject, models.ActionDeleted, data, nil)
}

// SendIndexParticipation sends an indexing message for a participation.
func (m *MessageBuilder) SendIndexParticipation(ctx context.Context, action models.MessageAction, data models.Participation) error {
	return m.sendIndexerMessage(ctx, models.IndexParticipationSubject, action, data, data.Tags())
}

// SendDeleteIndexParticipation sends a message to remove a participation from the index.
func (m *MessageBuilder) SendDeleteIndexParticipation(ctx context.Context, data string) error {
	return m.sendIndexerMessage(ctx, models.IndexParticipationSubject, models.ActionDeleted, data, nil)
}

// SendIndexNotification sends an indexing message for a notification.
func (m *MessageBuilder) SendIndexNotification(ctx context.Context, action models.MessageAction, data models.Notification) error {
	return m.sendIndexerMessage(ctx, models.IndexNotificationSubject, action, data, data.Tags())
}

// SendDeleteIndexNotification sends a message to remove a notification from the index.
func (m *MessageBuilder) SendDeleteIndexNotification(ctx context.Context, data string) error {
	return m.sendIndexerMessage(ctx, models.IndexNotificationSubject, models.ActionDeleted, data, nil)
}

// SendIndexActionItem sends an indexing message for an action item.
func (m *MessageBuilder) SendIndexActionItem(ctx context.Context, action models.MessageAction, data models.ActionItem) error {
	return m.sendIndexerMessage(ctx, models.IndexActionItemSubject, action, data, data.Tags())
}

// SendDeleteIndexActionItem sends a message to remove an action item from the index.
func (m *MessageBuilder) SendDeleteIndexActionItem(ctx context.Context, data string) error {
	return m.sendIndexerMessage(ctx, models.IndexActionItemSubject, models.ActionDeleted, data, nil)
}

// SendMeetingDeleted announces that a meeting and its owned collections
// are gone so other services can clean up.
func (m *MessageBuilder) SendMeetingDeleted(ctx context.Context, meetingUID string) error {
	return m.sendMessage(ctx, models.MeetingDeletedSubject, []byte(meetingUID))
}

// SendNotificationQueued announces that a notification became eligible for
// transport pickup.
func (m *MessageBuilder) SendNotificationQueued(ctx context.Context, notification models.Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling notification", logging.ErrKey, err)
		return err
	}
	return m.sendMessage(ctx, models.NotificationQueuedSubject, data)
}
