// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

// NotificationTransport performs the actual delivery of a queued
// notification over one channel. The workflow core decides what to send
// and when a notification may be re-attempted; the transport owns the wire
// protocol to the provider and reports the outcome back through the
// notification service's MarkSent/MarkFailed path.
type NotificationTransport interface {
	// Channel returns the channel this transport delivers over.
	Channel() models.NotificationChannel
	// Deliver sends the invitation to the notification's contact snapshot.
	Deliver(ctx context.Context, invitation MeetingInvitation) error
}

// MeetingInvitation contains the data needed to deliver a meeting
// invitation over any channel.
type MeetingInvitation struct {
	RecipientName  string
	RecipientEmail string
	RecipientPhone string
	MeetingTitle   string
	Description    string
	StartTime      time.Time
	EndTime        time.Time
	Location       string // room or address, when the format has one
	JoinLink       string // video conference link, when the format has one
	ConferenceID   string
	Passcode       string
	Instructions   string
}
