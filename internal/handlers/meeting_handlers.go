// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package handlers contains the NATS message handlers that are the
// service's request entry point.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/service"
)

// MeetingHandler handles meeting workflow messages and events.
type MeetingHandler struct {
	meetingService       *service.MeetingService
	participationService *service.ParticipationService
	notificationService  *service.NotificationService
	actionItemService    *service.ActionItemService
}

func NewMeetingHandler(
	meetingService *service.MeetingService,
	participationService *service.ParticipationService,
	notificationService *service.NotificationService,
	actionItemService *service.ActionItemService,
) *MeetingHandler {
	return &MeetingHandler{
		meetingService:       meetingService,
		participationService: participationService,
		notificationService:  notificationService,
		actionItemService:    actionItemService,
	}
}

func (h *MeetingHandler) HandlerReady() bool {
	return h.meetingService.ServiceReady() &&
		h.participationService.ServiceReady() &&
		h.notificationService.ServiceReady() &&
		h.actionItemService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler interface
func (h *MeetingHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.MeetingGetTitleSubject:     h.HandleMeetingGetTitle,
		models.MeetingGetAggregateSubject: h.HandleMeetingGetAggregate,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		if msg.HasReply() {
			if err := msg.Respond(nil); err != nil {
				slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			}
		}
		return
	}

	response, err := handler(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "error handling message", logging.ErrKey, err)
		if msg.HasReply() {
			if err := msg.Respond(nil); err != nil {
				slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			}
		}
		return
	}

	if msg.HasReply() {
		if err := msg.Respond(response); err != nil {
			slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			return
		}
		slog.DebugContext(ctx, "responded to NATS message")
	} else {
		slog.DebugContext(ctx, "handled NATS message (no reply expected)")
	}
}

// meetingUIDFromMessage parses and validates the meeting UID carried as
// the message payload.
func meetingUIDFromMessage(ctx context.Context, msg domain.Message) (string, error) {
	meetingUID := string(msg.Data())
	if _, err := uuid.Parse(meetingUID); err != nil {
		slog.ErrorContext(ctx, "error parsing meeting UID", logging.ErrKey, err)
		return "", fmt.Errorf("invalid meeting UID %q: %w", meetingUID, err)
	}
	return meetingUID, nil
}

// HandleMeetingGetTitle is the message handler for the meeting-get-title subject.
func (h *MeetingHandler) HandleMeetingGetTitle(ctx context.Context, msg domain.Message) ([]byte, error) {
	meetingUID, err := meetingUIDFromMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, err := h.meetingService.GetMeeting(ctx, meetingUID)
	if err != nil {
		slog.ErrorContext(ctx, "error getting meeting", logging.ErrKey, err)
		return nil, err
	}

	return []byte(meeting.Title), nil
}

// HandleMeetingGetAggregate is the message handler for the
// meeting-get-aggregate subject. It replies with the JSON-encoded meeting
// plus all of its owned collections.
func (h *MeetingHandler) HandleMeetingGetAggregate(ctx context.Context, msg domain.Message) ([]byte, error) {
	meetingUID, err := meetingUIDFromMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	aggregate, err := h.meetingService.GetMeetingAggregate(ctx, meetingUID)
	if err != nil {
		slog.ErrorContext(ctx, "error getting meeting aggregate", logging.ErrKey, err)
		return nil, err
	}

	payload, err := json.Marshal(aggregate)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling meeting aggregate", logging.ErrKey, err)
		return nil, err
	}

	return payload, nil
}
