// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package messaging

import (
	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
)

// NatsMessage adapts a *nats.Msg to the domain.Message interface so the
// handlers never import the NATS client directly.
type NatsMessage struct {
	msg *nats.Msg
}

// NewNatsMessage wraps a received NATS message.
func NewNatsMessage(msg *nats.Msg) *NatsMessage {
	return &NatsMessage{msg: msg}
}

// Subject returns the message subject.
func (m *NatsMessage) Subject() string {
	return m.msg.Subject
}

// Data returns the message payload.
func (m *NatsMessage) Data() []byte {
	return m.msg.Data
}

// Respond replies to the message.
func (m *NatsMessage) Respond(data []byte) error {
	return m.msg.Respond(data)
}

// HasReply reports whether the sender expects a reply.
func (m *NatsMessage) HasReply() bool {
	return m.msg.Reply != ""
}

var _ domain.Message = (*NatsMessage)(nil)
