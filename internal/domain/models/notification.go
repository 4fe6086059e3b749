// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"errors"
	"fmt"
	"time"
)

// NotificationChannel is the channel a notification is delivered over.
type NotificationChannel string

const (
	// NotificationChannelEmail delivers over email; requires a contact email.
	NotificationChannelEmail NotificationChannel = "email"
	// NotificationChannelSMS delivers over SMS; requires a contact phone.
	NotificationChannelSMS NotificationChannel = "sms"
	// NotificationChannelWhatsApp delivers over WhatsApp; requires a contact phone.
	NotificationChannelWhatsApp NotificationChannel = "whatsapp"
	// NotificationChannelPush delivers a mobile push; requires an internal recipient.
	NotificationChannelPush NotificationChannel = "push"
	// NotificationChannelInApp delivers an in-app message; requires an internal recipient.
	NotificationChannelInApp NotificationChannel = "in_app"
)

// IsValid reports whether the channel is one of the known values.
func (c NotificationChannel) IsValid() bool {
	switch c {
	case NotificationChannelEmail, NotificationChannelSMS, NotificationChannelWhatsApp,
		NotificationChannelPush, NotificationChannelInApp:
		return true
	}
	return false
}

// NotificationStatus represents the delivery status of one outbound
// notification. The string values are part of the public contract.
type NotificationStatus string

const (
	// NotificationStatusPending is the initial status; the notification has
	// not been handed to a transport yet.
	NotificationStatusPending NotificationStatus = "pending"
	// NotificationStatusQueued means the notification passed recipient
	// validation and is waiting for a transport.
	NotificationStatusQueued NotificationStatus = "queued"
	// NotificationStatusSending means a transport is currently delivering it.
	NotificationStatusSending NotificationStatus = "sending"
	// NotificationStatusSent means the transport accepted the message.
	NotificationStatusSent NotificationStatus = "sent"
	// NotificationStatusDelivered means the provider confirmed delivery.
	NotificationStatusDelivered NotificationStatus = "delivered"
	// NotificationStatusRead means the recipient opened the message. Final.
	NotificationStatusRead NotificationStatus = "read"
	// NotificationStatusFailed means delivery failed. Final, but retryable
	// through the explicit retry path.
	NotificationStatusFailed NotificationStatus = "failed"
	// NotificationStatusCancelled means the notification was withdrawn. Final.
	NotificationStatusCancelled NotificationStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values.
func (s NotificationStatus) IsValid() bool {
	switch s {
	case NotificationStatusPending, NotificationStatusQueued, NotificationStatusSending,
		NotificationStatusSent, NotificationStatusDelivered, NotificationStatusRead,
		NotificationStatusFailed, NotificationStatusCancelled:
		return true
	}
	return false
}

// IsFinal reports whether the delivery pipeline is done with this
// notification.
func (s NotificationStatus) IsFinal() bool {
	switch s {
	case NotificationStatusRead, NotificationStatusFailed, NotificationStatusCancelled:
		return true
	}
	return false
}

// Label returns the human-readable label for the status.
func (s NotificationStatus) Label() string {
	switch s {
	case NotificationStatusPending:
		return "Pending"
	case NotificationStatusQueued:
		return "Queued"
	case NotificationStatusSending:
		return "Sending"
	case NotificationStatusSent:
		return "Sent"
	case NotificationStatusDelivered:
		return "Delivered"
	case NotificationStatusRead:
		return "Read"
	case NotificationStatusFailed:
		return "Failed"
	case NotificationStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Color returns the display color associated with the status.
func (s NotificationStatus) Color() string {
	switch s {
	case NotificationStatusPending, NotificationStatusQueued:
		return "secondary"
	case NotificationStatusSending:
		return "info"
	case NotificationStatusSent, NotificationStatusDelivered:
		return "primary"
	case NotificationStatusRead:
		return "success"
	case NotificationStatusFailed:
		return "danger"
	case NotificationStatusCancelled:
		return "dark"
	}
	return "secondary"
}

// DefaultMaxRetries is the retry budget applied when callers do not supply
// their own.
const DefaultMaxRetries = 3

// Guard errors returned by notification operations.
var (
	ErrAmbiguousRecipient    = errors.New("exactly one of internal or external recipient must be set")
	ErrInvalidRecipient      = errors.New("recipient has no valid contact for the channel")
	ErrNotificationFinal     = errors.New("notification is in a final state")
	ErrNotificationNotQueued = errors.New("notification is not queued")
	ErrInvalidStatusOrder    = errors.New("illegal notification status transition")
)

// Notification is one outbound message attempt to a meeting participant,
// tracked through the delivery pipeline. Exactly one of the recipient UIDs
// is set, mirroring the participation invariant but enforced independently.
type Notification struct {
	UID                  string              `json:"uid"`
	MeetingUID           string              `json:"meeting_uid"`
	InternalRecipientUID string              `json:"internal_recipient_uid,omitempty"`
	ExternalRecipientUID string              `json:"external_recipient_uid,omitempty"`
	Channel              NotificationChannel `json:"channel"`
	Status               NotificationStatus  `json:"status"`
	Contact              ContactSnapshot     `json:"contact"`
	RetryCount           int                 `json:"retry_count,omitempty"`
	LastRetryAt          *time.Time          `json:"last_retry_at,omitempty"`
	ErrorMessage         string              `json:"error_message,omitempty"`
	SentAt               *time.Time          `json:"sent_at,omitempty"`
	DeliveredAt          *time.Time          `json:"delivered_at,omitempty"`
	ReadAt               *time.Time          `json:"read_at,omitempty"`
	CreatedAt            *time.Time          `json:"created_at,omitempty"`
	UpdatedAt            *time.Time          `json:"updated_at,omitempty"`
}

// CheckRecipientExclusivity enforces the XOR invariant on the recipient
// references.
func (n *Notification) CheckRecipientExclusivity() error {
	if (n.InternalRecipientUID == "") == (n.ExternalRecipientUID == "") {
		return ErrAmbiguousRecipient
	}
	return nil
}

// RecipientType returns internal when the internal recipient reference is
// set, external otherwise.
func (n *Notification) RecipientType() ParticipantType {
	if n.InternalRecipientUID != "" {
		return ParticipantTypeInternal
	}
	return ParticipantTypeExternal
}

// HasValidRecipient reports whether the contact snapshot satisfies the
// channel's requirements: email needs an email address, sms and whatsapp
// need a phone number, push and in_app need an internal recipient with a
// system identity. A notification can exist without a valid recipient, but
// it cannot leave pending.
func (n *Notification) HasValidRecipient() bool {
	switch n.Channel {
	case NotificationChannelEmail:
		return n.Contact.Email != ""
	case NotificationChannelSMS, NotificationChannelWhatsApp:
		return n.Contact.Phone != ""
	case NotificationChannelPush, NotificationChannelInApp:
		return n.InternalRecipientUID != ""
	}
	return false
}

// Queue moves the notification from pending to queued. A resolvable
// contact for the channel is a precondition for leaving pending.
func (n *Notification) Queue() error {
	if err := n.CheckRecipientExclusivity(); err != nil {
		return err
	}
	if n.Status != NotificationStatusPending {
		return ErrInvalidStatusOrder
	}
	if !n.HasValidRecipient() {
		return ErrInvalidRecipient
	}
	n.Status = NotificationStatusQueued
	return nil
}

// MarkSending records that a transport picked the notification up.
func (n *Notification) MarkSending() error {
	if n.Status != NotificationStatusQueued {
		return ErrNotificationNotQueued
	}
	n.Status = NotificationStatusSending
	return nil
}

// MarkSent records that the transport accepted the message.
func (n *Notification) MarkSent(now time.Time) error {
	if n.Status != NotificationStatusSending && n.Status != NotificationStatusQueued {
		return ErrInvalidStatusOrder
	}
	n.Status = NotificationStatusSent
	n.SentAt = &now
	return nil
}

// MarkDelivered records provider delivery confirmation.
func (n *Notification) MarkDelivered(now time.Time) error {
	if n.Status != NotificationStatusSent {
		return ErrInvalidStatusOrder
	}
	n.Status = NotificationStatusDelivered
	n.DeliveredAt = &now
	return nil
}

// MarkRead records that the recipient opened the message. Repeated read
// receipts are a no-op; the first read timestamp is kept.
func (n *Notification) MarkRead(now time.Time) error {
	if n.Status == NotificationStatusRead {
		return nil
	}
	if n.Status != NotificationStatusSent && n.Status != NotificationStatusDelivered {
		return ErrInvalidStatusOrder
	}
	n.Status = NotificationStatusRead
	if n.ReadAt == nil {
		n.ReadAt = &now
	}
	return nil
}

// MarkFailed records a delivery failure with the transport's error message.
// Failure is only reachable from queued or sending.
func (n *Notification) MarkFailed(errMsg string) error {
	if n.Status != NotificationStatusQueued && n.Status != NotificationStatusSending {
		return ErrInvalidStatusOrder
	}
	n.Status = NotificationStatusFailed
	n.ErrorMessage = errMsg
	return nil
}

// Cancel withdraws the notification from any non-final state.
func (n *Notification) Cancel() error {
	if n.Status.IsFinal() {
		return ErrNotificationFinal
	}
	n.Status = NotificationStatusCancelled
	return nil
}

// IncrementRetry bumps the retry counter and stamps the retry time. It
// does not change the delivery status; re-queueing is the caller's call.
func (n *Notification) IncrementRetry(now time.Time) {
	n.RetryCount++
	n.LastRetryAt = &now
}

// CanRetry reports whether the notification failed and still has retry
// budget left. Retry exhaustion is not an error: the notification simply
// stays failed.
func (n *Notification) CanRetry(maxRetries int) bool {
	return n.Status == NotificationStatusFailed && n.RetryCount < maxRetries
}

// Requeue puts a failed notification back in the queue for another
// delivery attempt.
func (n *Notification) Requeue() error {
	if n.Status != NotificationStatusFailed {
		return ErrInvalidStatusOrder
	}
	if !n.HasValidRecipient() {
		return ErrInvalidRecipient
	}
	n.Status = NotificationStatusQueued
	n.ErrorMessage = ""
	return nil
}

// Tags generates a consistent set of tags for the notification.
func (n *Notification) Tags() []string {
	tags := []string{}

	if n == nil {
		return nil
	}

	if n.UID != "" {
		tags = append(tags, n.UID)
		tags = append(tags, fmt.Sprintf("notification_uid:%s", n.UID))
	}

	if n.MeetingUID != "" {
		tags = append(tags, fmt.Sprintf("meeting_uid:%s", n.MeetingUID))
	}

	if n.Channel != "" {
		tags = append(tags, fmt.Sprintf("channel:%s", n.Channel))
	}

	if n.Status != "" {
		tags = append(tags, fmt.Sprintf("status:%s", n.Status))
	}

	return tags
}
