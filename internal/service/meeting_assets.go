// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
)

// Agenda items and documents are authored through the meeting service:
// they have no lifecycle of their own, only membership in the aggregate.

// AddAgendaItem appends an agenda item to a meeting. A zero order places
// the item after the existing ones.
func (s *MeetingService) AddAgendaItem(ctx context.Context, agendaItem *models.AgendaItem) (*models.AgendaItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	if agendaItem == nil || agendaItem.MeetingUID == "" {
		return nil, domain.NewValidationError("agenda item with a meeting reference is required")
	}
	if agendaItem.Title == "" {
		return nil, domain.NewValidationError("agenda item title is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", agendaItem.MeetingUID))

	exists, err := s.MeetingRepository.Exists(ctx, agendaItem.MeetingUID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("meeting not found")
	}

	if agendaItem.Order == 0 {
		existing, err := s.AgendaItemRepository.ListByMeeting(ctx, agendaItem.MeetingUID)
		if err != nil {
			return nil, err
		}
		for _, item := range existing {
			if item.Order >= agendaItem.Order {
				agendaItem.Order = item.Order + 1
			}
		}
	}

	now := time.Now().UTC()
	agendaItem.CreatedAt = &now

	if err := s.AgendaItemRepository.Create(ctx, agendaItem); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "created agenda item", "agenda_item_uid", agendaItem.UID, "order", agendaItem.Order)
	return agendaItem, nil
}

// ListAgendaItems fetches a meeting's agenda in order.
func (s *MeetingService) ListAgendaItems(ctx context.Context, meetingUID string) ([]*models.AgendaItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	items, err := s.AgendaItemRepository.ListByMeeting(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items, nil
}

// DeleteAgendaItem removes one agenda item.
func (s *MeetingService) DeleteAgendaItem(ctx context.Context, agendaItemUID string, revision uint64) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("meeting service is not ready")
	}
	return s.AgendaItemRepository.Delete(ctx, agendaItemUID, revision)
}

// AttachDocument records the metadata of a document uploaded for a
// meeting. The binary lives in external object storage; only the key is
// kept here.
func (s *MeetingService) AttachDocument(ctx context.Context, document *models.Document) (*models.Document, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	if document == nil || document.MeetingUID == "" {
		return nil, domain.NewValidationError("document with a meeting reference is required")
	}
	if document.FileName == "" || document.ObjectKey == "" {
		return nil, domain.NewValidationError("document file name and object key are required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", document.MeetingUID))

	exists, err := s.MeetingRepository.Exists(ctx, document.MeetingUID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("meeting not found")
	}

	now := time.Now().UTC()
	document.CreatedAt = &now

	if err := s.DocumentRepository.Create(ctx, document); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "attached document", "document_uid", document.UID, "file_name", document.FileName)
	return document, nil
}

// ListDocuments fetches the metadata of a meeting's documents.
func (s *MeetingService) ListDocuments(ctx context.Context, meetingUID string) ([]*models.Document, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}
	return s.DocumentRepository.ListByMeeting(ctx, meetingUID)
}

// DetachDocument removes one document's metadata record.
func (s *MeetingService) DetachDocument(ctx context.Context, documentUID string, revision uint64) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("meeting service is not ready")
	}
	return s.DocumentRepository.Delete(ctx, documentUID, revision)
}
