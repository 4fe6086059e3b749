// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

// NatsParticipationRepository is the NATS KV store repository for participations.
type NatsParticipationRepository struct {
	*NatsChildRepository[models.Participation]
}

// NewNatsParticipationRepository creates a new NATS KV store repository for participations.
func NewNatsParticipationRepository(kvStore INatsKeyValue) *NatsParticipationRepository {
	return &NatsParticipationRepository{
		NatsChildRepository: NewNatsChildRepository(
			kvStore, "participation", KeyPrefixParticipation,
			func(p *models.Participation) string { return p.UID },
			func(p *models.Participation, uid string) { p.UID = uid },
			func(p *models.Participation) string { return p.MeetingUID },
		),
	}
}

// NatsNotificationRepository is the NATS KV store repository for notifications.
type NatsNotificationRepository struct {
	*NatsChildRepository[models.Notification]
}

// NewNatsNotificationRepository creates a new NATS KV store repository for notifications.
func NewNatsNotificationRepository(kvStore INatsKeyValue) *NatsNotificationRepository {
	return &NatsNotificationRepository{
		NatsChildRepository: NewNatsChildRepository(
			kvStore, "notification", KeyPrefixNotification,
			func(n *models.Notification) string { return n.UID },
			func(n *models.Notification, uid string) { n.UID = uid },
			func(n *models.Notification) string { return n.MeetingUID },
		),
	}
}

// NatsActionItemRepository is the NATS KV store repository for action items.
type NatsActionItemRepository struct {
	*NatsChildRepository[models.ActionItem]
}

// NewNatsActionItemRepository creates a new NATS KV store repository for action items.
func NewNatsActionItemRepository(kvStore INatsKeyValue) *NatsActionItemRepository {
	return &NatsActionItemRepository{
		NatsChildRepository: NewNatsChildRepository(
			kvStore, "action item", KeyPrefixActionItem,
			func(a *models.ActionItem) string { return a.UID },
			func(a *models.ActionItem, uid string) { a.UID = uid },
			func(a *models.ActionItem) string { return a.MeetingUID },
		),
	}
}

// NatsAgendaItemRepository is the NATS KV store repository for agenda items.
type NatsAgendaItemRepository struct {
	*NatsChildRepository[models.AgendaItem]
}

// NewNatsAgendaItemRepository creates a new NATS KV store repository for agenda items.
func NewNatsAgendaItemRepository(kvStore INatsKeyValue) *NatsAgendaItemRepository {
	return &NatsAgendaItemRepository{
		NatsChildRepository: NewNatsChildRepository(
			kvStore, "agenda item", KeyPrefixAgendaItem,
			func(a *models.AgendaItem) string { return a.UID },
			func(a *models.AgendaItem, uid string) { a.UID = uid },
			func(a *models.AgendaItem) string { return a.MeetingUID },
		),
	}
}

// NatsDocumentRepository is the NATS KV store repository for meeting
// document metadata.
type NatsDocumentRepository struct {
	*NatsChildRepository[models.Document]
}

// NewNatsDocumentRepository creates a new NATS KV store repository for document metadata.
func NewNatsDocumentRepository(kvStore INatsKeyValue) *NatsDocumentRepository {
	return &NatsDocumentRepository{
		NatsChildRepository: NewNatsChildRepository(
			kvStore, "document", KeyPrefixDocument,
			func(d *models.Document) string { return d.UID },
			func(d *models.Document, uid string) { d.UID = uid },
			func(d *models.Document) string { return d.MeetingUID },
		),
	}
}
