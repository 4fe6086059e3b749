// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/concurrent"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/constants"
)

// meetingGuardError maps the model's lifecycle guard errors onto the
// service error taxonomy.
func meetingGuardError(err error) error {
	switch {
	case errors.Is(err, models.ErrMeetingAlreadyValidated):
		return domain.NewConflictError("meeting is already validated", err)
	case errors.Is(err, models.ErrMeetingInTerminalState),
		errors.Is(err, models.ErrMeetingAlreadyPast),
		errors.Is(err, models.ErrMeetingStillUpcoming),
		errors.Is(err, models.ErrMeetingNotPostponed):
		return domain.NewConflictError(err.Error(), err)
	case errors.Is(err, models.ErrReasonRequired),
		errors.Is(err, models.ErrDateNotInFuture),
		errors.Is(err, models.ErrInvalidTimeWindow):
		return domain.NewValidationError(err.Error(), err)
	}
	return domain.NewConflictError(err.Error(), err)
}

// transition loads the meeting with its revision, applies fn to it and
// persists the result. Every lifecycle operation goes through here so
// concurrent transitions on the same meeting collide on the revision
// instead of silently overwriting each other.
func (s *MeetingService) transition(ctx context.Context, meetingUID string, fn func(*models.Meeting) error) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, revision, err := s.MeetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	if err := fn(meeting); err != nil {
		slog.WarnContext(ctx, "meeting transition rejected",
			logging.ErrKey, err, "status", meeting.Status)
		return nil, meetingGuardError(err)
	}

	now := time.Now().UTC()
	meeting.UpdatedAt = &now

	if err := s.MeetingRepository.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "meeting transitioned", "status", meeting.Status)

	if err := s.MessageBuilder.SendIndexMeeting(ctx, models.ActionUpdated, *meeting); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for meeting", logging.ErrKey, err)
	}

	return meeting, nil
}

// ValidateMeeting confirms a planned meeting and records the validator.
func (s *MeetingService) ValidateMeeting(ctx context.Context, meetingUID, actorUID string) (*models.Meeting, error) {
	return s.transition(ctx, meetingUID, func(m *models.Meeting) error {
		return m.Confirm(actorUID, time.Now().UTC())
	})
}

// CancelMeeting cancels a meeting with a mandatory reason.
func (s *MeetingService) CancelMeeting(ctx context.Context, meetingUID, reason string) (*models.Meeting, error) {
	return s.transition(ctx, meetingUID, func(m *models.Meeting) error {
		return m.Cancel(reason, time.Now().UTC())
	})
}

// PostponeMeeting records a proposed new date without committing a new
// time window.
func (s *MeetingService) PostponeMeeting(ctx context.Context, meetingUID string, proposedDate time.Time, reason string) (*models.Meeting, error) {
	return s.transition(ctx, meetingUID, func(m *models.Meeting) error {
		return m.Postpone(proposedDate, reason, time.Now().UTC())
	})
}

// RescheduleMeeting commits a new time window on a postponed meeting and
// returns it to planned.
func (s *MeetingService) RescheduleMeeting(ctx context.Context, meetingUID string, start, end time.Time) (*models.Meeting, error) {
	return s.transition(ctx, meetingUID, func(m *models.Meeting) error {
		return m.Reschedule(start, end, time.Now().UTC())
	})
}

// StartMeeting moves a meeting to in_progress once its start time has
// passed, opening the attendance window.
func (s *MeetingService) StartMeeting(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	return s.transition(ctx, meetingUID, func(m *models.Meeting) error {
		return m.Start(time.Now().UTC())
	})
}

// CompleteMeeting closes a meeting, optionally attaching a summary and a
// report document reference.
func (s *MeetingService) CompleteMeeting(ctx context.Context, meetingUID, summary, reportAttachmentUID string) (*models.Meeting, error) {
	return s.transition(ctx, meetingUID, func(m *models.Meeting) error {
		if err := m.Complete(time.Now().UTC()); err != nil {
			return err
		}
		if summary != "" {
			m.Summary = summary
		}
		if reportAttachmentUID != "" {
			m.ReportAttachmentUID = reportAttachmentUID
		}
		return nil
	})
}

// ArchiveMeeting moves a completed or cancelled meeting to archived.
func (s *MeetingService) ArchiveMeeting(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	return s.transition(ctx, meetingUID, func(m *models.Meeting) error {
		return m.Archive()
	})
}

// invitationFor assembles the channel-agnostic invitation payload for one
// notification of a meeting.
func invitationFor(meeting *models.Meeting, contact models.ContactSnapshot) domain.MeetingInvitation {
	invitation := domain.MeetingInvitation{
		RecipientName:  contact.Name,
		RecipientEmail: contact.Email,
		RecipientPhone: contact.Phone,
		MeetingTitle:   meeting.Title,
		Description:    meeting.Description,
		StartTime:      meeting.StartTime,
		EndTime:        meeting.EndTime,
	}
	if meeting.Location != nil {
		if meeting.Location.RoomUID != "" {
			invitation.Location = meeting.Location.RoomUID
		} else {
			invitation.Location = meeting.Location.Address
		}
	}
	if meeting.VideoConference != nil {
		invitation.JoinLink = meeting.VideoConference.JoinLink
		invitation.ConferenceID = meeting.VideoConference.ConferenceID
		invitation.Passcode = meeting.VideoConference.Passcode
		invitation.Instructions = meeting.VideoConference.Instructions
	}
	return invitation
}

// SendInvitations creates and delivers one notification per participation
// of the meeting over the given channel. The batch is per-participation:
// a participation whose contact cannot satisfy the channel, or whose
// delivery fails, is counted as failed and never blocks the others.
func (s *MeetingService) SendInvitations(ctx context.Context, meetingUID string, channel models.NotificationChannel) (*models.InvitationResult, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	if !channel.IsValid() {
		return nil, domain.NewValidationError("unknown notification channel")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, err := s.MeetingRepository.Get(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	if meeting.Status.IsTerminal() {
		return nil, domain.NewConflictError("meeting is in a terminal state")
	}

	participations, err := s.ParticipationRepository.ListByMeeting(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	if len(participations) == 0 {
		return nil, domain.NewValidationError("meeting has no participants to invite")
	}

	workers := s.Config.InvitationWorkers
	if workers <= 0 {
		workers = constants.InvitationFanoutWorkers
	}

	var sent, failed atomic.Int64
	tasks := make([]func() error, 0, len(participations))
	for _, participation := range participations {
		tasks = append(tasks, func() error {
			taskCtx := logging.AppendCtx(ctx, slog.String("participation_uid", participation.UID))

			notification, err := s.NotificationService.CreateForParticipation(taskCtx, meeting, participation, channel)
			if err != nil {
				slog.ErrorContext(taskCtx, "error creating invitation notification", logging.ErrKey, err)
				failed.Add(1)
				return nil
			}

			if _, err := s.NotificationService.QueueNotification(taskCtx, notification.UID); err != nil {
				// Typically an unresolvable contact for the channel. The
				// notification stays pending as the record of the attempt.
				slog.WarnContext(taskCtx, "invitation could not be queued", logging.ErrKey, err)
				failed.Add(1)
				return nil
			}

			invitation := invitationFor(meeting, notification.Contact)
			result, err := s.NotificationService.Dispatch(taskCtx, notification.UID, invitation)
			if err != nil || result.Status != models.NotificationStatusSent {
				failed.Add(1)
				return nil
			}

			sent.Add(1)
			return nil
		})
	}

	pool := concurrent.NewWorkerPool(workers)
	pool.RunAll(ctx, tasks...)

	result := &models.InvitationResult{
		Sent:   int(sent.Load()),
		Failed: int(failed.Load()),
	}
	slog.DebugContext(ctx, "invitation fan-out finished",
		"channel", channel, "sent", result.Sent, "failed", result.Failed)
	return result, nil
}
