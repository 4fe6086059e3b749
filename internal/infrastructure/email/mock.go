// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

// MockTransport implements domain.NotificationTransport for testing
type MockTransport struct {
	mock.Mock
	TransportChannel models.NotificationChannel
}

func (m *MockTransport) Channel() models.NotificationChannel {
	if m.TransportChannel != "" {
		return m.TransportChannel
	}
	return models.NotificationChannelEmail
}

func (m *MockTransport) Deliver(ctx context.Context, invitation domain.MeetingInvitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}
