// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

// MeetingRepository defines the interface for meeting storage operations.
// This interface can be implemented by different storage backends (NATS, PostgreSQL, etc.)
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	Exists(ctx context.Context, meetingUID string) (bool, error)
	Get(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	Update(ctx context.Context, meeting *models.Meeting, revision uint64) error
	Delete(ctx context.Context, meetingUID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Meeting, error)
}

// ParticipationRepository defines the interface for participation storage
// operations. Participations are keyed by their own UID and indexed by the
// owning meeting.
type ParticipationRepository interface {
	Create(ctx context.Context, participation *models.Participation) error
	Get(ctx context.Context, participationUID string) (*models.Participation, error)
	GetWithRevision(ctx context.Context, participationUID string) (*models.Participation, uint64, error)
	Update(ctx context.Context, participation *models.Participation, revision uint64) error
	Delete(ctx context.Context, participationUID string, revision uint64) error
	ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Participation, error)
	DeleteAllByMeeting(ctx context.Context, meetingUID string) error
}

// NotificationRepository defines the interface for notification storage
// operations.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	Get(ctx context.Context, notificationUID string) (*models.Notification, error)
	GetWithRevision(ctx context.Context, notificationUID string) (*models.Notification, uint64, error)
	Update(ctx context.Context, notification *models.Notification, revision uint64) error
	Delete(ctx context.Context, notificationUID string, revision uint64) error
	ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Notification, error)
	DeleteAllByMeeting(ctx context.Context, meetingUID string) error
}

// ActionItemRepository defines the interface for action item storage
// operations.
type ActionItemRepository interface {
	Create(ctx context.Context, actionItem *models.ActionItem) error
	Get(ctx context.Context, actionItemUID string) (*models.ActionItem, error)
	GetWithRevision(ctx context.Context, actionItemUID string) (*models.ActionItem, uint64, error)
	Update(ctx context.Context, actionItem *models.ActionItem, revision uint64) error
	Delete(ctx context.Context, actionItemUID string, revision uint64) error
	ListByMeeting(ctx context.Context, meetingUID string) ([]*models.ActionItem, error)
	DeleteAllByMeeting(ctx context.Context, meetingUID string) error
}

// AgendaItemRepository defines the interface for agenda item storage
// operations.
type AgendaItemRepository interface {
	Create(ctx context.Context, agendaItem *models.AgendaItem) error
	Get(ctx context.Context, agendaItemUID string) (*models.AgendaItem, error)
	GetWithRevision(ctx context.Context, agendaItemUID string) (*models.AgendaItem, uint64, error)
	Update(ctx context.Context, agendaItem *models.AgendaItem, revision uint64) error
	Delete(ctx context.Context, agendaItemUID string, revision uint64) error
	ListByMeeting(ctx context.Context, meetingUID string) ([]*models.AgendaItem, error)
	DeleteAllByMeeting(ctx context.Context, meetingUID string) error
}

// DocumentRepository defines the interface for meeting document metadata
// storage operations.
type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	Get(ctx context.Context, documentUID string) (*models.Document, error)
	GetWithRevision(ctx context.Context, documentUID string) (*models.Document, uint64, error)
	Delete(ctx context.Context, documentUID string, revision uint64) error
	ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Document, error)
	DeleteAllByMeeting(ctx context.Context, meetingUID string) error
}
