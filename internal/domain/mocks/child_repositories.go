// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

// MockParticipationRepository implements ParticipationRepository for testing
type MockParticipationRepository struct {
	mock.Mock
}

func (m *MockParticipationRepository) Create(ctx context.Context, participation *models.Participation) error {
	args := m.Called(ctx, participation)
	return args.Error(0)
}

func (m *MockParticipationRepository) Get(ctx context.Context, participationUID string) (*models.Participation, error) {
	args := m.Called(ctx, participationUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participation), args.Error(1)
}

func (m *MockParticipationRepository) GetWithRevision(ctx context.Context, participationUID string) (*models.Participation, uint64, error) {
	args := m.Called(ctx, participationUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Participation), args.Get(1).(uint64), args.Error(2)
}

func (m *MockParticipationRepository) Update(ctx context.Context, participation *models.Participation, revision uint64) error {
	args := m.Called(ctx, participation, revision)
	return args.Error(0)
}

func (m *MockParticipationRepository) Delete(ctx context.Context, participationUID string, revision uint64) error {
	args := m.Called(ctx, participationUID, revision)
	return args.Error(0)
}

func (m *MockParticipationRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Participation, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participation), args.Error(1)
}

func (m *MockParticipationRepository) DeleteAllByMeeting(ctx context.Context, meetingUID string) error {
	args := m.Called(ctx, meetingUID)
	return args.Error(0)
}

// MockNotificationRepository implements NotificationRepository for testing
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, notificationUID string) (*models.Notification, error) {
	args := m.Called(ctx, notificationUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetWithRevision(ctx context.Context, notificationUID string) (*models.Notification, uint64, error) {
	args := m.Called(ctx, notificationUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Notification), args.Get(1).(uint64), args.Error(2)
}

func (m *MockNotificationRepository) Update(ctx context.Context, notification *models.Notification, revision uint64) error {
	args := m.Called(ctx, notification, revision)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, notificationUID string, revision uint64) error {
	args := m.Called(ctx, notificationUID, revision)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Notification, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) DeleteAllByMeeting(ctx context.Context, meetingUID string) error {
	args := m.Called(ctx, meetingUID)
	return args.Error(0)
}

// MockActionItemRepository implements ActionItemRepository for testing
type MockActionItemRepository struct {
	mock.Mock
}

func (m *MockActionItemRepository) Create(ctx context.Context, actionItem *models.ActionItem) error {
	args := m.Called(ctx, actionItem)
	return args.Error(0)
}

func (m *MockActionItemRepository) Get(ctx context.Context, actionItemUID string) (*models.ActionItem, error) {
	args := m.Called(ctx, actionItemUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActionItem), args.Error(1)
}

func (m *MockActionItemRepository) GetWithRevision(ctx context.Context, actionItemUID string) (*models.ActionItem, uint64, error) {
	args := m.Called(ctx, actionItemUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.ActionItem), args.Get(1).(uint64), args.Error(2)
}

func (m *MockActionItemRepository) Update(ctx context.Context, actionItem *models.ActionItem, revision uint64) error {
	args := m.Called(ctx, actionItem, revision)
	return args.Error(0)
}

func (m *MockActionItemRepository) Delete(ctx context.Context, actionItemUID string, revision uint64) error {
	args := m.Called(ctx, actionItemUID, revision)
	return args.Error(0)
}

func (m *MockActionItemRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.ActionItem, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ActionItem), args.Error(1)
}

func (m *MockActionItemRepository) DeleteAllByMeeting(ctx context.Context, meetingUID string) error {
	args := m.Called(ctx, meetingUID)
	return args.Error(0)
}

// MockAgendaItemRepository implements AgendaItemRepository for testing
type MockAgendaItemRepository struct {
	mock.Mock
}

func (m *MockAgendaItemRepository) Create(ctx context.Context, agendaItem *models.AgendaItem) error {
	args := m.Called(ctx, agendaItem)
	return args.Error(0)
}

func (m *MockAgendaItemRepository) Get(ctx context.Context, agendaItemUID string) (*models.AgendaItem, error) {
	args := m.Called(ctx, agendaItemUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgendaItem), args.Error(1)
}

func (m *MockAgendaItemRepository) GetWithRevision(ctx context.Context, agendaItemUID string) (*models.AgendaItem, uint64, error) {
	args := m.Called(ctx, agendaItemUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.AgendaItem), args.Get(1).(uint64), args.Error(2)
}

func (m *MockAgendaItemRepository) Update(ctx context.Context, agendaItem *models.AgendaItem, revision uint64) error {
	args := m.Called(ctx, agendaItem, revision)
	return args.Error(0)
}

func (m *MockAgendaItemRepository) Delete(ctx context.Context, agendaItemUID string, revision uint64) error {
	args := m.Called(ctx, agendaItemUID, revision)
	return args.Error(0)
}

func (m *MockAgendaItemRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.AgendaItem, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AgendaItem), args.Error(1)
}

func (m *MockAgendaItemRepository) DeleteAllByMeeting(ctx context.Context, meetingUID string) error {
	args := m.Called(ctx, meetingUID)
	return args.Error(0)
}

// MockDocumentRepository implements DocumentRepository for testing
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, document *models.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, documentUID string) (*models.Document, error) {
	args := m.Called(ctx, documentUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetWithRevision(ctx context.Context, documentUID string) (*models.Document, uint64, error) {
	args := m.Called(ctx, documentUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Document), args.Get(1).(uint64), args.Error(2)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, documentUID string, revision uint64) error {
	args := m.Called(ctx, documentUID, revision)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Document, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) DeleteAllByMeeting(ctx context.Context, meetingUID string) error {
	args := m.Called(ctx, meetingUID)
	return args.Error(0)
}
