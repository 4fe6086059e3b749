// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/concurrent"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/constants"
	"github.com/samber/lo"
)

// ActionItemService tracks the follow-up tasks created from meetings.
type ActionItemService struct {
	MeetingRepository    domain.MeetingRepository
	ActionItemRepository domain.ActionItemRepository
	MessageBuilder       domain.MessageBuilder

	validate *validator.Validate
}

// NewActionItemService creates a new ActionItemService.
func NewActionItemService(
	meetingRepository domain.MeetingRepository,
	actionItemRepository domain.ActionItemRepository,
	messageBuilder domain.MessageBuilder,
) *ActionItemService {
	return &ActionItemService{
		MeetingRepository:    meetingRepository,
		ActionItemRepository: actionItemRepository,
		MessageBuilder:       messageBuilder,
		validate:             validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ActionItemService) ServiceReady() bool {
	return s.MeetingRepository != nil &&
		s.ActionItemRepository != nil &&
		s.MessageBuilder != nil
}

// CreateActionItem creates a follow-up task on a meeting in the pending
// status.
func (s *ActionItemService) CreateActionItem(ctx context.Context, payload *models.CreateActionItemRequest) (*models.ActionItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("action item service is not ready")
	}

	if payload == nil {
		return nil, domain.NewValidationError("action item payload is required")
	}
	if err := s.validate.Struct(payload); err != nil {
		slog.WarnContext(ctx, "invalid action item payload", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid action item payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", payload.MeetingUID))

	exists, err := s.MeetingRepository.Exists(ctx, payload.MeetingUID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("meeting not found")
	}

	now := time.Now().UTC()
	actionItem := &models.ActionItem{
		MeetingUID:     payload.MeetingUID,
		Description:    payload.Description,
		ResponsibleUID: payload.ResponsibleUID,
		DueDate:        payload.DueDate,
		Comment:        payload.Comment,
		Status:         models.ActionItemStatusPending,
		CreatedAt:      &now,
		UpdatedAt:      &now,
	}

	if err := s.ActionItemRepository.Create(ctx, actionItem); err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("action_item_uid", actionItem.UID))
	slog.DebugContext(ctx, "created action item", "responsible_uid", actionItem.ResponsibleUID)

	if err := s.MessageBuilder.SendIndexActionItem(ctx, models.ActionCreated, *actionItem); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for new action item", logging.ErrKey, err)
	}

	return actionItem, nil
}

// GetActionItem fetches one action item by UID.
func (s *ActionItemService) GetActionItem(ctx context.Context, actionItemUID string) (*models.ActionItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("action item service is not ready")
	}
	return s.ActionItemRepository.Get(ctx, actionItemUID)
}

// ListByMeeting fetches every action item of one meeting.
func (s *ActionItemService) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.ActionItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("action item service is not ready")
	}
	return s.ActionItemRepository.ListByMeeting(ctx, meetingUID)
}

// ListOverdueByMeeting fetches the meeting's action items whose due date
// has passed and that are still open.
func (s *ActionItemService) ListOverdueByMeeting(ctx context.Context, meetingUID string) ([]*models.ActionItem, error) {
	actionItems, err := s.ListByMeeting(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return lo.Filter(actionItems, func(item *models.ActionItem, _ int) bool {
		return item.IsOverdue(now)
	}), nil
}

// TransitionActionItem moves one action item to the given status.
func (s *ActionItemService) TransitionActionItem(ctx context.Context, actionItemUID string, newStatus models.ActionItemStatus) (*models.ActionItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("action item service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("action_item_uid", actionItemUID))

	actionItem, revision, err := s.ActionItemRepository.GetWithRevision(ctx, actionItemUID)
	if err != nil {
		return nil, err
	}

	if err := actionItem.Transition(newStatus); err != nil {
		if errors.Is(err, models.ErrUnknownActionItemStatus) {
			return nil, domain.NewValidationError(err.Error(), err)
		}
		return nil, domain.NewConflictError(err.Error(), err)
	}

	now := time.Now().UTC()
	actionItem.UpdatedAt = &now

	if err := s.ActionItemRepository.Update(ctx, actionItem, revision); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "action item transitioned", "status", actionItem.Status)

	if err := s.MessageBuilder.SendIndexActionItem(ctx, models.ActionUpdated, *actionItem); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for action item", logging.ErrKey, err)
	}

	return actionItem, nil
}

// BulkTransition moves several action items to the same status. The batch
// is per-item: a rejected or conflicting item is counted as failed and
// never blocks or rolls back the others.
func (s *ActionItemService) BulkTransition(ctx context.Context, actionItemUIDs []string, newStatus models.ActionItemStatus) (*models.BulkActionItemResult, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("action item service is not ready")
	}

	if !newStatus.IsValid() {
		return nil, domain.NewValidationError("unknown action item status")
	}

	uids := lo.Uniq(actionItemUIDs)
	if len(uids) == 0 {
		return nil, domain.NewValidationError("no action items given")
	}

	var updated, failed atomic.Int64
	tasks := lo.Map(uids, func(uid string, _ int) func() error {
		return func() error {
			if _, err := s.TransitionActionItem(ctx, uid, newStatus); err != nil {
				slog.WarnContext(ctx, "bulk action item transition failed",
					logging.ErrKey, err, "action_item_uid", uid)
				failed.Add(1)
				return nil
			}
			updated.Add(1)
			return nil
		}
	})

	pool := concurrent.NewWorkerPool(constants.IndexMessageWorkers)
	pool.RunAll(ctx, tasks...)

	result := &models.BulkActionItemResult{
		Updated: int(updated.Load()),
		Failed:  int(failed.Load()),
	}
	slog.DebugContext(ctx, "bulk action item transition finished",
		"status", newStatus, "updated", result.Updated, "failed", result.Failed)
	return result, nil
}

// DeleteActionItem removes one action item.
func (s *ActionItemService) DeleteActionItem(ctx context.Context, actionItemUID string, revision uint64) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("action item service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("action_item_uid", actionItemUID))

	if err := s.ActionItemRepository.Delete(ctx, actionItemUID, revision); err != nil {
		return err
	}

	if err := s.MessageBuilder.SendDeleteIndexActionItem(ctx, actionItemUID); err != nil {
		slog.ErrorContext(ctx, "error sending delete indexing message for action item", logging.ErrKey, err)
	}

	slog.DebugContext(ctx, "deleted action item")
	return nil
}
