// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

// Message represents a domain message interface
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler defines how the service handles incoming messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandlerReady() bool
}

// MeetingIndexSender handles indexing operations for meetings.
type MeetingIndexSender interface {
	SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.Meeting) error
	SendDeleteIndexMeeting(ctx context.Context, data string) error
}

// ParticipationIndexSender handles indexing operations for participations.
type ParticipationIndexSender interface {
	SendIndexParticipation(ctx context.Context, action models.MessageAction, data models.Participation) error
	SendDeleteIndexParticipation(ctx context.Context, data string) error
}

// NotificationIndexSender handles indexing operations for notifications.
type NotificationIndexSender interface {
	SendIndexNotification(ctx context.Context, action models.MessageAction, data models.Notification) error
	SendDeleteIndexNotification(ctx context.Context, data string) error
}

// ActionItemIndexSender handles indexing operations for action items.
type ActionItemIndexSender interface {
	SendIndexActionItem(ctx context.Context, action models.MessageAction, data models.ActionItem) error
	SendDeleteIndexActionItem(ctx context.Context, data string) error
}

// LifecycleEventSender publishes workflow events other services subscribe to.
type LifecycleEventSender interface {
	SendMeetingDeleted(ctx context.Context, meetingUID string) error
	SendNotificationQueued(ctx context.Context, notification models.Notification) error
}

// MessageBuilder is the composite interface the services depend on for all
// outbound messaging.
type MessageBuilder interface {
	MeetingIndexSender
	ParticipationIndexSender
	NotificationIndexSender
	ActionItemIndexSender
	LifecycleEventSender
}
