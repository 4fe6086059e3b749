// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/infrastructure/store"
)

// newAssetsMeetingService wires a MeetingService whose agenda items and
// documents live in the in-memory KV store, with the meeting lookups
// mocked.
func newAssetsMeetingService(t *testing.T) (*MeetingService, *mocks.MockMeetingRepository) {
	t.Helper()

	meetingRepo := &mocks.MockMeetingRepository{}
	svc := NewMeetingService(
		meetingRepo,
		&mocks.MockParticipationRepository{},
		&mocks.MockNotificationRepository{},
		&mocks.MockActionItemRepository{},
		store.NewNatsAgendaItemRepository(store.NewMockNatsKeyValue()),
		store.NewNatsDocumentRepository(store.NewMockNatsKeyValue()),
		&mocks.MockMessageBuilder{},
		&NotificationService{},
		ServiceConfig{},
	)
	return svc, meetingRepo
}

func TestAddAgendaItem(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit order is kept", func(t *testing.T) {
		svc, meetingRepo := newAssetsMeetingService(t)
		meetingRepo.On("Exists", mock.Anything, "meeting-1").Return(true, nil)

		item, err := svc.AddAgendaItem(ctx, &models.AgendaItem{
			MeetingUID: "meeting-1",
			Title:      "Approval of the minutes",
			Order:      5,
		})

		require.NoError(t, err)
		assert.Equal(t, 5, item.Order)
		assert.NotEmpty(t, item.UID)
	})

	t.Run("zero order appends after existing items", func(t *testing.T) {
		svc, meetingRepo := newAssetsMeetingService(t)
		meetingRepo.On("Exists", mock.Anything, "meeting-1").Return(true, nil)

		_, err := svc.AddAgendaItem(ctx, &models.AgendaItem{
			MeetingUID: "meeting-1", Title: "Opening", Order: 1,
		})
		require.NoError(t, err)
		_, err = svc.AddAgendaItem(ctx, &models.AgendaItem{
			MeetingUID: "meeting-1", Title: "Budget", Order: 2,
		})
		require.NoError(t, err)

		appended, err := svc.AddAgendaItem(ctx, &models.AgendaItem{
			MeetingUID: "meeting-1", Title: "Any other business",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, appended.Order)
	})

	t.Run("missing title", func(t *testing.T) {
		svc, _ := newAssetsMeetingService(t)

		_, err := svc.AddAgendaItem(ctx, &models.AgendaItem{MeetingUID: "meeting-1"})

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("meeting does not exist", func(t *testing.T) {
		svc, meetingRepo := newAssetsMeetingService(t)
		meetingRepo.On("Exists", mock.Anything, "missing").Return(false, nil)

		_, err := svc.AddAgendaItem(ctx, &models.AgendaItem{
			MeetingUID: "missing", Title: "Opening",
		})

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestListAgendaItems(t *testing.T) {
	ctx := context.Background()

	t.Run("agenda comes back in order", func(t *testing.T) {
		svc, meetingRepo := newAssetsMeetingService(t)
		meetingRepo.On("Exists", mock.Anything, "meeting-1").Return(true, nil)

		for _, item := range []*models.AgendaItem{
			{MeetingUID: "meeting-1", Title: "Any other business", Order: 3},
			{MeetingUID: "meeting-1", Title: "Opening", Order: 1},
			{MeetingUID: "meeting-1", Title: "Budget", Order: 2},
		} {
			_, err := svc.AddAgendaItem(ctx, item)
			require.NoError(t, err)
		}

		items, err := svc.ListAgendaItems(ctx, "meeting-1")

		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "Opening", items[0].Title)
		assert.Equal(t, "Budget", items[1].Title)
		assert.Equal(t, "Any other business", items[2].Title)
	})
}

func TestAttachDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("attach document metadata", func(t *testing.T) {
		svc, meetingRepo := newAssetsMeetingService(t)
		meetingRepo.On("Exists", mock.Anything, "meeting-1").Return(true, nil)

		document, err := svc.AttachDocument(ctx, &models.Document{
			MeetingUID: "meeting-1",
			FileName:   "minutes.pdf",
			ObjectKey:  "meetings/meeting-1/minutes.pdf",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, document.UID)
		assert.NotNil(t, document.CreatedAt)

		documents, err := svc.ListDocuments(ctx, "meeting-1")
		require.NoError(t, err)
		require.Len(t, documents, 1)
		assert.Equal(t, "minutes.pdf", documents[0].FileName)
	})

	t.Run("missing object key", func(t *testing.T) {
		svc, _ := newAssetsMeetingService(t)

		_, err := svc.AttachDocument(ctx, &models.Document{
			MeetingUID: "meeting-1",
			FileName:   "minutes.pdf",
		})

		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func TestDetachDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("detach removes the metadata record", func(t *testing.T) {
		svc, meetingRepo := newAssetsMeetingService(t)
		meetingRepo.On("Exists", mock.Anything, "meeting-1").Return(true, nil)

		document, err := svc.AttachDocument(ctx, &models.Document{
			MeetingUID: "meeting-1",
			FileName:   "minutes.pdf",
			ObjectKey:  "meetings/meeting-1/minutes.pdf",
		})
		require.NoError(t, err)

		_, revision, err := svc.DocumentRepository.GetWithRevision(ctx, document.UID)
		require.NoError(t, err)

		err = svc.DetachDocument(ctx, document.UID, revision)

		require.NoError(t, err)
		documents, err := svc.ListDocuments(ctx, "meeting-1")
		require.NoError(t, err)
		assert.Empty(t, documents)
	})
}
