// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/akamensky/base58"
	"github.com/go-playground/validator/v10"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/concurrent"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/utils"
	"github.com/samber/lo"
)

// MeetingService owns the meeting aggregate: authoring, the lifecycle
// state machine, and invitation fan-out.
type MeetingService struct {
	MeetingRepository       domain.MeetingRepository
	ParticipationRepository domain.ParticipationRepository
	NotificationRepository  domain.NotificationRepository
	ActionItemRepository    domain.ActionItemRepository
	AgendaItemRepository    domain.AgendaItemRepository
	DocumentRepository      domain.DocumentRepository
	MessageBuilder          domain.MessageBuilder
	NotificationService     *NotificationService
	Config                  ServiceConfig

	validate *validator.Validate
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(
	meetingRepository domain.MeetingRepository,
	participationRepository domain.ParticipationRepository,
	notificationRepository domain.NotificationRepository,
	actionItemRepository domain.ActionItemRepository,
	agendaItemRepository domain.AgendaItemRepository,
	documentRepository domain.DocumentRepository,
	messageBuilder domain.MessageBuilder,
	notificationService *NotificationService,
	config ServiceConfig,
) *MeetingService {
	return &MeetingService{
		MeetingRepository:       meetingRepository,
		ParticipationRepository: participationRepository,
		NotificationRepository:  notificationRepository,
		ActionItemRepository:    actionItemRepository,
		AgendaItemRepository:    agendaItemRepository,
		DocumentRepository:      documentRepository,
		MessageBuilder:          messageBuilder,
		NotificationService:     notificationService,
		Config:                  config,
		validate:                validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *MeetingService) ServiceReady() bool {
	return s.MeetingRepository != nil &&
		s.ParticipationRepository != nil &&
		s.NotificationRepository != nil &&
		s.ActionItemRepository != nil &&
		s.AgendaItemRepository != nil &&
		s.DocumentRepository != nil &&
		s.MessageBuilder != nil &&
		s.NotificationService != nil
}

// validateMeetingFields checks the invariants the authoring boundary
// enforces: a sane time window and the location/video details the chosen
// format requires.
func (s *MeetingService) validateMeetingFields(ctx context.Context, meeting *models.Meeting) error {
	if meeting.EndTime.Before(meeting.StartTime) {
		slog.WarnContext(ctx, "end time is before start time",
			"start_time", meeting.StartTime, "end_time", meeting.EndTime)
		return domain.NewValidationError("end time must not be before start time")
	}

	if meeting.Format.RequiresPhysicalLocation() && meeting.Location.IsZero() {
		slog.WarnContext(ctx, "missing physical location", "format", meeting.Format)
		return domain.NewValidationError("a room or address is required for this meeting format")
	}

	if meeting.Format.RequiresVideoConference() && meeting.VideoConference.IsZero() {
		slog.WarnContext(ctx, "missing video conference details", "format", meeting.Format)
		return domain.NewValidationError("a video conference link is required for this meeting format")
	}

	return nil
}

// checkRoomAvailability rejects a meeting whose room is already booked by
// another active meeting with an overlapping time window. Overlap
// detection is deliberately simple; resolving conflicts is the caller's
// problem.
func (s *MeetingService) checkRoomAvailability(ctx context.Context, meeting *models.Meeting) error {
	if meeting.Location == nil || meeting.Location.RoomUID == "" {
		return nil
	}

	meetings, err := s.MeetingRepository.ListAll(ctx)
	if err != nil {
		return err
	}

	conflict, found := lo.Find(meetings, func(other *models.Meeting) bool {
		if other.UID == meeting.UID || other.Status.IsTerminal() {
			return false
		}
		if other.Location == nil || other.Location.RoomUID != meeting.Location.RoomUID {
			return false
		}
		return meeting.StartTime.Before(other.EndTime) && other.StartTime.Before(meeting.EndTime)
	})
	if found {
		slog.WarnContext(ctx, "room already booked",
			"room_uid", meeting.Location.RoomUID, "conflicting_meeting_uid", conflict.UID)
		return domain.NewConflictError("room is already booked for an overlapping meeting")
	}

	return nil
}

// generatePasscode creates a short base58 passcode for a video conference.
func generatePasscode() string {
	buf := make([]byte, constants.PasscodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return base58.Encode(buf)
}

// CreateMeeting authors a new meeting in the planned status.
func (s *MeetingService) CreateMeeting(ctx context.Context, payload *models.CreateMeetingRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	if payload == nil {
		return nil, domain.NewValidationError("meeting payload is required")
	}
	if err := s.validate.Struct(payload); err != nil {
		slog.WarnContext(ctx, "invalid create meeting payload", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid meeting payload", err)
	}

	now := time.Now().UTC()
	meeting := &models.Meeting{
		Title:             payload.Title,
		Description:       payload.Description,
		StartTime:         payload.StartTime,
		EndTime:           payload.EndTime,
		OrganizingUnitUID: payload.OrganizingUnitUID,
		ChairUID:          payload.ChairUID,
		Format:            payload.Format,
		Location:          payload.Location,
		VideoConference:   payload.VideoConference,
		Status:            models.MeetingStatusPlanned,
		CreatedAt:         &now,
		UpdatedAt:         &now,
	}

	if err := s.validateMeetingFields(ctx, meeting); err != nil {
		return nil, err
	}
	if err := s.checkRoomAvailability(ctx, meeting); err != nil {
		return nil, err
	}

	// Virtual and hybrid meetings get a generated passcode when none is set.
	if meeting.Format.RequiresVideoConference() && meeting.VideoConference.Passcode == "" {
		meeting.VideoConference.Passcode = generatePasscode()
	}

	if err := s.MeetingRepository.Create(ctx, meeting); err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meeting.UID))
	slog.DebugContext(ctx, "created meeting", "meeting", meeting)

	// Don't fail the creation if the indexing message cannot be sent.
	if err := s.MessageBuilder.SendIndexMeeting(ctx, models.ActionCreated, *meeting); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for new meeting", logging.ErrKey, err)
	}

	return meeting, nil
}

// GetMeetings fetches all meetings.
func (s *MeetingService) GetMeetings(ctx context.Context) ([]*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	meetings, err := s.MeetingRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "returning meetings", "count", len(meetings))
	return meetings, nil
}

// GetMeeting fetches one meeting by UID.
func (s *MeetingService) GetMeeting(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))
	return s.MeetingRepository.Get(ctx, meetingUID)
}

// GetMeetingAggregate loads one meeting together with all of its owned
// collections as a consistent snapshot.
func (s *MeetingService) GetMeetingAggregate(ctx context.Context, meetingUID string) (*models.MeetingAggregate, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, err := s.MeetingRepository.Get(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	aggregate := &models.MeetingAggregate{Meeting: meeting}

	pool := concurrent.NewWorkerPool(4)
	err = pool.Run(ctx,
		func() error {
			var err error
			aggregate.Participations, err = s.ParticipationRepository.ListByMeeting(ctx, meetingUID)
			return err
		},
		func() error {
			var err error
			aggregate.Notifications, err = s.NotificationRepository.ListByMeeting(ctx, meetingUID)
			return err
		},
		func() error {
			var err error
			aggregate.ActionItems, err = s.ActionItemRepository.ListByMeeting(ctx, meetingUID)
			return err
		},
		func() error {
			var err error
			aggregate.AgendaItems, err = s.AgendaItemRepository.ListByMeeting(ctx, meetingUID)
			return err
		},
		func() error {
			var err error
			aggregate.Documents, err = s.DocumentRepository.ListByMeeting(ctx, meetingUID)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return aggregate, nil
}

// UpdateMeeting edits an existing meeting's authoring fields. Lifecycle
// transitions go through the dedicated operations, never through here.
func (s *MeetingService) UpdateMeeting(ctx context.Context, meetingUID string, payload *models.UpdateMeetingRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	if payload == nil {
		return nil, domain.NewValidationError("meeting payload is required")
	}
	if err := s.validate.Struct(payload); err != nil {
		slog.WarnContext(ctx, "invalid update meeting payload", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid meeting payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, revision, err := s.MeetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	meeting.Title = utils.CoalescePtr(payload.Title, meeting.Title)
	meeting.Description = utils.CoalescePtr(payload.Description, meeting.Description)
	meeting.StartTime = utils.CoalescePtr(payload.StartTime, meeting.StartTime)
	meeting.EndTime = utils.CoalescePtr(payload.EndTime, meeting.EndTime)
	meeting.ChairUID = utils.CoalescePtr(payload.ChairUID, meeting.ChairUID)
	meeting.Format = utils.CoalescePtr(payload.Format, meeting.Format)
	if payload.Location != nil {
		meeting.Location = payload.Location
	}
	if payload.VideoConference != nil {
		meeting.VideoConference = payload.VideoConference
	}
	meeting.Summary = utils.CoalescePtr(payload.Summary, meeting.Summary)

	if err := s.validateMeetingFields(ctx, meeting); err != nil {
		return nil, err
	}
	if err := s.checkRoomAvailability(ctx, meeting); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	meeting.UpdatedAt = &now

	if err := s.MeetingRepository.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "updated meeting", "meeting", meeting)

	if err := s.MessageBuilder.SendIndexMeeting(ctx, models.ActionUpdated, *meeting); err != nil {
		slog.ErrorContext(ctx, "error sending indexing message for updated meeting", logging.ErrKey, err)
	}

	return meeting, nil
}

// DeleteMeeting removes a meeting and cascades to all of its owned
// collections. The cascade is per-child: one failed child removal is
// logged and does not resurrect the meeting.
func (s *MeetingService) DeleteMeeting(ctx context.Context, meetingUID string, revision uint64) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("meeting service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	if err := s.MeetingRepository.Delete(ctx, meetingUID, revision); err != nil {
		return err
	}

	// Cascade: removing the meeting removes everything it owns. One failed
	// child removal is logged and does not resurrect the meeting.
	cascades := []struct {
		name   string
		delete func(ctx context.Context, meetingUID string) error
	}{
		{"participations", s.ParticipationRepository.DeleteAllByMeeting},
		{"notifications", s.NotificationRepository.DeleteAllByMeeting},
		{"action items", s.ActionItemRepository.DeleteAllByMeeting},
		{"agenda items", s.AgendaItemRepository.DeleteAllByMeeting},
		{"documents", s.DocumentRepository.DeleteAllByMeeting},
	}

	pool := concurrent.NewWorkerPool(len(cascades))
	tasks := make([]func() error, 0, len(cascades))
	for _, c := range cascades {
		tasks = append(tasks, func() error {
			if err := c.delete(ctx, meetingUID); err != nil {
				slog.ErrorContext(ctx, "error cascading meeting deletion",
					logging.ErrKey, err, "collection", c.name)
			}
			return nil
		})
	}
	pool.RunAll(ctx, tasks...)

	if err := s.MessageBuilder.SendDeleteIndexMeeting(ctx, meetingUID); err != nil {
		slog.ErrorContext(ctx, "error sending delete indexing message for meeting", logging.ErrKey, err)
	}
	if err := s.MessageBuilder.SendMeetingDeleted(ctx, meetingUID); err != nil {
		slog.ErrorContext(ctx, "error sending meeting deleted message", logging.ErrKey, err)
	}

	slog.DebugContext(ctx, "deleted meeting and cascaded owned collections")
	return nil
}
