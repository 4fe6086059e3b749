// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

func TestRenderInvitation(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	start := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	invitation := domain.MeetingInvitation{
		RecipientName:  "Ada Lovelace",
		RecipientEmail: "ada@example.org",
		MeetingTitle:   "Quarterly review",
		Description:    "Budget and roadmap",
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		JoinLink:       "https://zoom.us/j/123",
		Passcode:       "abc123",
	}

	rendered, err := tm.RenderInvitation(invitation)

	require.NoError(t, err)
	for _, body := range []string{rendered.HTML, rendered.Text} {
		assert.Contains(t, body, "Quarterly review")
		assert.Contains(t, body, "Ada Lovelace")
		assert.Contains(t, body, "https://zoom.us/j/123")
		assert.Contains(t, body, "abc123")
	}
	assert.Contains(t, rendered.Text, "Tuesday, September 15, 2026")
}

func TestRenderInvitationWithoutOptionalFields(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	start := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	rendered, err := tm.RenderInvitation(domain.MeetingInvitation{
		MeetingTitle: "Site visit",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		Location:     "Room 4B",
	})

	require.NoError(t, err)
	assert.Contains(t, rendered.Text, "Hello there")
	assert.Contains(t, rendered.Text, "Room 4B")
	assert.NotContains(t, rendered.Text, "Join link")
	assert.NotContains(t, rendered.Text, "Passcode")
}

func TestNoOpService(t *testing.T) {
	svc := NewNoOpService()

	assert.Equal(t, models.NotificationChannelEmail, svc.Channel())
	assert.NoError(t, svc.Deliver(context.Background(), domain.MeetingInvitation{
		RecipientEmail: "ada@example.org",
		MeetingTitle:   "Quarterly review",
	}))
}
