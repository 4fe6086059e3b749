// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
)

// ParticipationService tracks who is invited to a meeting and what became
// of each invitation.
type ParticipationService struct {
	MeetingRepository       domain.MeetingRepository
	ParticipationRepository domain.ParticipationRepository
	MessageBuilder          domain.MessageBuilder

	validate *validator.Validate
}

// NewParticipationService creates a new ParticipationService.
func NewParticipationService(
	meetingRepository domain.MeetingRepository,
	participationRepository domain.ParticipationRepository,
	messageBuilder domain.MessageBuilder,
) *ParticipationService {
	return &ParticipationService{
		MeetingRepository:       meetingRepository,
		ParticipationRepository: participationRepository,
		MessageBuilder:          messageBuilder,
		validate:                validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ParticipationService) ServiceReady() bool {
	return s.MeetingRepository != nil &&
		s.ParticipationRepository != nil &&
		s.MessageBuilder != nil
}

// participationGuardError maps the model's guard errors onto the service
// error taxonomy.
func participationGuardError(err error) error {
	var domainErr *domain.DomainError
	switch {
	case errors.As(err, &domainErr):
		// Cross-entity guards load other records; their errors are already
		// classified.
		return err
	case errors.Is(err, models.ErrAmbiguousAttendee),
		errors.Is(err, models.ErrReasonRequired):
		return domain.NewValidationError(err.Error(), err)
	case errors.Is(err, models.ErrMeetingNotStarted),
		errors.Is(err, models.ErrAttendanceFinal):
		return domain.NewConflictError(err.Error(), err)
	}
	return domain.NewConflictError(err.Error(), err)
}

// AddParticipation invites an attendee to a meeting. Exactly one of the
// internal and external attendee references must be set, and the meeting
// must exist and not be in a terminal state.
func (s *ParticipationService) AddParticipation(ctx context.Context, payload *models.AddParticipationRequest) (*models.Participation, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("participation service is not ready")
	}

	if payload == nil {
		return nil, domain.NewValidationError("participation payload is required")
	}
	if err := s.validate.Struct(payload); err != nil {
		slog.WarnContext(ctx, "invalid participation payload", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid participation payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", payload.MeetingUID))

	meeting, err := s.MeetingRepository.Get(ctx, payload.MeetingUID)
	if err != nil {
		return nil, err
	}
	if meeting.Status.IsTerminal() {
		return nil, domain.NewConflictError("meeting is in a terminal state")
	}

	now := time.Now().UTC()
	participation := &models.Participation{
		MeetingUID:       payload.MeetingUID,
		InternalAttendee: payload.InternalAttendee,
		ExternalAttendee: payload.ExternalAttendee,
		Status:           models.ParticipationStatusInvited,
		CreatedAt:        &now,
		UpdatedAt:        &now,
	}
	if err := participation.CheckAttendeeExclusivity(); err != nil {
		return nil, participationGuardError(err)
	}

	if err := s.ParticipationRepository.Create(ctx, participation); err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("participation_uid", participation.UID))
	slog.DebugContext(ctx, "created participation",
		"participant_type", participation.ParticipantType(), "display_name", participation.DisplayName())

	if err := s.MessageBuilder.SendIndexParticipation(ctx, models.ActionCreated, *participation); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for new participation", logging.ErrKey, err)
	}

	return participation, nil
}

// GetParticipation fetches one participation by UID.
func (s *ParticipationService) GetParticipation(ctx context.Context, participationUID string) (*models.Participation, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("participation service is not ready")
	}
	return s.ParticipationRepository.Get(ctx, participationUID)
}

// ListByMeeting fetches every participation of one meeting.
func (s *ParticipationService) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Participation, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("participation service is not ready")
	}
	return s.ParticipationRepository.ListByMeeting(ctx, meetingUID)
}

// transition loads the participation with its revision, applies fn to it
// and persists the result.
func (s *ParticipationService) transition(ctx context.Context, participationUID string, fn func(*models.Participation) error) (*models.Participation, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("participation service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("participation_uid", participationUID))

	participation, revision, err := s.ParticipationRepository.GetWithRevision(ctx, participationUID)
	if err != nil {
		return nil, err
	}

	if err := fn(participation); err != nil {
		slog.WarnContext(ctx, "participation transition rejected",
			logging.ErrKey, err, "status", participation.Status)
		return nil, participationGuardError(err)
	}

	now := time.Now().UTC()
	participation.UpdatedAt = &now

	if err := s.ParticipationRepository.Update(ctx, participation, revision); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "participation transitioned", "status", participation.Status)

	if err := s.MessageBuilder.SendIndexParticipation(ctx, models.ActionUpdated, *participation); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for participation", logging.ErrKey, err)
	}

	return participation, nil
}

// ConfirmParticipation records that the attendee will attend.
func (s *ParticipationService) ConfirmParticipation(ctx context.Context, participationUID string) (*models.Participation, error) {
	return s.transition(ctx, participationUID, func(p *models.Participation) error {
		return p.Confirm(time.Now().UTC())
	})
}

// MarkAttended records presence. Attendance is only recordable once the
// owning meeting's start time has passed, so the meeting is loaded to
// evaluate the guard.
func (s *ParticipationService) MarkAttended(ctx context.Context, participationUID string) (*models.Participation, error) {
	return s.attendanceTransition(ctx, participationUID, func(p *models.Participation, meetingStart time.Time) error {
		return p.MarkAttended(meetingStart, time.Now().UTC())
	})
}

// MarkAbsent records a no-show with an optional reason, under the same
// meeting-started guard as MarkAttended.
func (s *ParticipationService) MarkAbsent(ctx context.Context, participationUID, reason string) (*models.Participation, error) {
	return s.attendanceTransition(ctx, participationUID, func(p *models.Participation, meetingStart time.Time) error {
		return p.MarkAbsent(reason, meetingStart, time.Now().UTC())
	})
}

// attendanceTransition is a transition that additionally needs the owning
// meeting's start time for the guard.
func (s *ParticipationService) attendanceTransition(ctx context.Context, participationUID string, fn func(*models.Participation, time.Time) error) (*models.Participation, error) {
	return s.transition(ctx, participationUID, func(p *models.Participation) error {
		meeting, err := s.MeetingRepository.Get(ctx, p.MeetingUID)
		if err != nil {
			return err
		}
		return fn(p, meeting.StartTime)
	})
}

// ExcuseParticipation records an excused absence with a mandatory reason.
func (s *ParticipationService) ExcuseParticipation(ctx context.Context, participationUID, reason string) (*models.Participation, error) {
	return s.transition(ctx, participationUID, func(p *models.Participation) error {
		return p.Excuse(reason)
	})
}

// DeleteParticipation removes one participation.
func (s *ParticipationService) DeleteParticipation(ctx context.Context, participationUID string, revision uint64) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("participation service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("participation_uid", participationUID))

	if err := s.ParticipationRepository.Delete(ctx, participationUID, revision); err != nil {
		return err
	}

	if err := s.MessageBuilder.SendDeleteIndexParticipation(ctx, participationUID); err != nil {
		slog.ErrorContext(ctx, "error sending delete indexing message for participation", logging.ErrKey, err)
	}

	slog.DebugContext(ctx, "deleted participation")
	return nil
}
