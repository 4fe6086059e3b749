// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/utils"
)

// newTestActionItemService wires an ActionItemService whose action items
// live in the in-memory KV store, with the meeting lookups mocked.
func newTestActionItemService(t *testing.T) (*ActionItemService, *mocks.MockMeetingRepository, *mocks.MockMessageBuilder) {
	t.Helper()

	meetingRepo := &mocks.MockMeetingRepository{}
	messageBuilder := &mocks.MockMessageBuilder{}
	svc := NewActionItemService(
		meetingRepo,
		store.NewNatsActionItemRepository(store.NewMockNatsKeyValue()),
		messageBuilder,
	)
	return svc, meetingRepo, messageBuilder
}

func seedActionItem(t *testing.T, svc *ActionItemService, meetingRepo *mocks.MockMeetingRepository, messageBuilder *mocks.MockMessageBuilder, payload *models.CreateActionItemRequest) *models.ActionItem {
	t.Helper()

	meetingRepo.On("Exists", mock.Anything, payload.MeetingUID).Return(true, nil)
	messageBuilder.On("SendIndexActionItem", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	actionItem, err := svc.CreateActionItem(context.Background(), payload)
	require.NoError(t, err)
	return actionItem
}

func TestCreateActionItem(t *testing.T) {
	ctx := context.Background()

	t.Run("create pending action item", func(t *testing.T) {
		svc, meetingRepo, messageBuilder := newTestActionItemService(t)

		actionItem := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:     "meeting-1",
			Description:    "Publish the minutes",
			ResponsibleUID: "user-1",
		})

		assert.NotEmpty(t, actionItem.UID)
		assert.Equal(t, models.ActionItemStatusPending, actionItem.Status)
		assert.NotNil(t, actionItem.CreatedAt)
	})

	t.Run("missing description", func(t *testing.T) {
		svc, _, _ := newTestActionItemService(t)

		_, err := svc.CreateActionItem(ctx, &models.CreateActionItemRequest{MeetingUID: "meeting-1"})

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("meeting does not exist", func(t *testing.T) {
		svc, meetingRepo, _ := newTestActionItemService(t)
		meetingRepo.On("Exists", mock.Anything, "missing").Return(false, nil)

		_, err := svc.CreateActionItem(ctx, &models.CreateActionItemRequest{
			MeetingUID:  "missing",
			Description: "Publish the minutes",
		})

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestTransitionActionItem(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to completed", func(t *testing.T) {
		svc, meetingRepo, messageBuilder := newTestActionItemService(t)
		actionItem := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Publish the minutes",
		})

		completed, err := svc.TransitionActionItem(ctx, actionItem.UID, models.ActionItemStatusCompleted)

		require.NoError(t, err)
		assert.Equal(t, models.ActionItemStatusCompleted, completed.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, meetingRepo, messageBuilder := newTestActionItemService(t)
		actionItem := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Publish the minutes",
		})

		_, err := svc.TransitionActionItem(ctx, actionItem.UID, models.ActionItemStatus("done"))

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newTestActionItemService(t)

		_, err := svc.TransitionActionItem(ctx, "missing", models.ActionItemStatusCompleted)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestBulkTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("mixed batch counts per item", func(t *testing.T) {
		svc, meetingRepo, messageBuilder := newTestActionItemService(t)
		first := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Publish the minutes",
		})
		second := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Circulate the budget",
		})

		result, err := svc.BulkTransition(ctx, []string{first.UID, second.UID, "missing"}, models.ActionItemStatusCompleted)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Updated)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("duplicate UIDs are collapsed", func(t *testing.T) {
		svc, meetingRepo, messageBuilder := newTestActionItemService(t)
		actionItem := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Publish the minutes",
		})

		result, err := svc.BulkTransition(ctx, []string{actionItem.UID, actionItem.UID}, models.ActionItemStatusInProgress)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Updated)
		assert.Equal(t, 0, result.Failed)
	})

	t.Run("empty batch", func(t *testing.T) {
		svc, _, _ := newTestActionItemService(t)

		_, err := svc.BulkTransition(ctx, nil, models.ActionItemStatusCompleted)

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("unknown status rejects the whole batch", func(t *testing.T) {
		svc, _, _ := newTestActionItemService(t)

		_, err := svc.BulkTransition(ctx, []string{"a"}, models.ActionItemStatus("done"))

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func TestListOverdueByMeeting(t *testing.T) {
	ctx := context.Background()

	t.Run("only open items past their due date", func(t *testing.T) {
		svc, meetingRepo, messageBuilder := newTestActionItemService(t)
		now := time.Now().UTC()

		overdue := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Publish the minutes",
			DueDate:     utils.TimePtr(now.Add(-24 * time.Hour)),
		})
		seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Circulate the budget",
			DueDate:     utils.TimePtr(now.Add(24 * time.Hour)),
		})
		completed := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Book the venue",
			DueDate:     utils.TimePtr(now.Add(-24 * time.Hour)),
		})
		_, err := svc.TransitionActionItem(ctx, completed.UID, models.ActionItemStatusCompleted)
		require.NoError(t, err)

		items, err := svc.ListOverdueByMeeting(ctx, "meeting-1")

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, overdue.UID, items[0].UID)
	})
}

func TestDeleteActionItem(t *testing.T) {
	ctx := context.Background()

	t.Run("delete existing action item", func(t *testing.T) {
		svc, meetingRepo, messageBuilder := newTestActionItemService(t)
		actionItem := seedActionItem(t, svc, meetingRepo, messageBuilder, &models.CreateActionItemRequest{
			MeetingUID:  "meeting-1",
			Description: "Publish the minutes",
		})
		messageBuilder.On("SendDeleteIndexActionItem", mock.Anything, actionItem.UID).Return(nil)

		_, revision, err := svc.ActionItemRepository.GetWithRevision(ctx, actionItem.UID)
		require.NoError(t, err)

		err = svc.DeleteActionItem(ctx, actionItem.UID, revision)

		require.NoError(t, err)
		_, err = svc.GetActionItem(ctx, actionItem.UID)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}
