// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MeetingFormat represents how a meeting is held.
type MeetingFormat string

const (
	// MeetingFormatInPerson is a meeting held at a physical location only.
	MeetingFormatInPerson MeetingFormat = "in_person"
	// MeetingFormatVirtual is a meeting held over video conference only.
	MeetingFormatVirtual MeetingFormat = "virtual"
	// MeetingFormatHybrid is a meeting with both a room and a video conference.
	MeetingFormatHybrid MeetingFormat = "hybrid"
)

// IsValid reports whether the format is one of the known values.
func (f MeetingFormat) IsValid() bool {
	switch f {
	case MeetingFormatInPerson, MeetingFormatVirtual, MeetingFormatHybrid:
		return true
	}
	return false
}

// RequiresPhysicalLocation reports whether meetings of this format must
// carry a room or an address.
func (f MeetingFormat) RequiresPhysicalLocation() bool {
	return f == MeetingFormatInPerson || f == MeetingFormatHybrid
}

// RequiresVideoConference reports whether meetings of this format must
// carry video conference details.
func (f MeetingFormat) RequiresVideoConference() bool {
	return f == MeetingFormatVirtual || f == MeetingFormatHybrid
}

// Guard errors returned by meeting lifecycle transitions. The service layer
// wraps these into DomainErrors so callers keep the semantic category.
var (
	ErrMeetingAlreadyValidated = errors.New("meeting is already validated")
	ErrMeetingInTerminalState  = errors.New("meeting is in a terminal state")
	ErrMeetingAlreadyPast      = errors.New("meeting has already ended")
	ErrMeetingStillUpcoming    = errors.New("meeting has not started yet")
	ErrMeetingNotPostponed     = errors.New("meeting is not postponed")
	ErrReasonRequired          = errors.New("a reason is required")
	ErrDateNotInFuture         = errors.New("proposed date must be in the future")
	ErrInvalidTimeWindow       = errors.New("end time must not be before start time")
)

// Location is the physical location of a meeting: either a reference to a
// managed room or a free-text address.
type Location struct {
	RoomUID string `json:"room_uid,omitempty"`
	Address string `json:"address,omitempty"`
}

// IsZero reports whether neither a room nor an address is set.
func (l *Location) IsZero() bool {
	return l == nil || (l.RoomUID == "" && strings.TrimSpace(l.Address) == "")
}

// VideoConference holds the video conference details of a virtual or
// hybrid meeting.
type VideoConference struct {
	Platform     string `json:"platform,omitempty"`
	JoinLink     string `json:"join_link,omitempty"`
	ConferenceID string `json:"conference_id,omitempty"`
	Passcode     string `json:"passcode,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// IsZero reports whether no joinable video conference is set.
func (v *VideoConference) IsZero() bool {
	return v == nil || v.JoinLink == ""
}

// Meeting is the key-value store representation of a meeting. It is the
// aggregate root owning participations, notifications, agenda items,
// action items and documents; the child collections are stored in their
// own buckets and assembled by the repository.
type Meeting struct {
	UID                 string           `json:"uid"`
	Title               string           `json:"title"`
	Description         string           `json:"description,omitempty"`
	StartTime           time.Time        `json:"start_time"`
	EndTime             time.Time        `json:"end_time"`
	OrganizingUnitUID   string           `json:"organizing_unit_uid"`
	ChairUID            string           `json:"chair_uid,omitempty"`
	Format              MeetingFormat    `json:"format"`
	Location            *Location        `json:"location,omitempty"`
	VideoConference     *VideoConference `json:"video_conference,omitempty"`
	Status              MeetingStatus    `json:"status"`
	ProposedDate        *time.Time       `json:"proposed_date,omitempty"`
	PostponementReason  string           `json:"postponement_reason,omitempty"`
	CancellationReason  string           `json:"cancellation_reason,omitempty"`
	ValidatedBy         string           `json:"validated_by,omitempty"`
	ValidatedAt         *time.Time       `json:"validated_at,omitempty"`
	Summary             string           `json:"summary,omitempty"`
	ReportAttachmentUID string           `json:"report_attachment_uid,omitempty"`
	CreatedAt           *time.Time       `json:"created_at,omitempty"`
	UpdatedAt           *time.Time       `json:"updated_at,omitempty"`
}

// IsPast reports whether the meeting's end time has already elapsed.
func (m *Meeting) IsPast(now time.Time) bool {
	return m.EndTime.Before(now)
}

// IsOngoing reports whether the meeting is currently running.
func (m *Meeting) IsOngoing(now time.Time) bool {
	return !m.StartTime.After(now) && !m.EndTime.Before(now)
}

// IsUpcoming reports whether the meeting's start time is in the future.
func (m *Meeting) IsUpcoming(now time.Time) bool {
	return m.StartTime.After(now)
}

// Confirm validates the meeting: it moves the status to confirmed and
// records who validated it and when. Re-validating a confirmed meeting is
// reported as a distinct error so callers can surface "already validated"
// instead of a generic transition failure.
func (m *Meeting) Confirm(actorUID string, now time.Time) error {
	if m.Status == MeetingStatusConfirmed {
		return ErrMeetingAlreadyValidated
	}
	if m.Status.IsTerminal() {
		return ErrMeetingInTerminalState
	}
	m.Status = MeetingStatusConfirmed
	m.ValidatedBy = actorUID
	m.ValidatedAt = &now
	return nil
}

// Cancel moves the meeting to cancelled. A meeting whose end time has
// already elapsed cannot be cancelled, and the reason must not be blank.
func (m *Meeting) Cancel(reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if m.Status.IsTerminal() {
		return ErrMeetingInTerminalState
	}
	if m.IsPast(now) {
		return ErrMeetingAlreadyPast
	}
	m.Status = MeetingStatusCancelled
	m.CancellationReason = reason
	return nil
}

// Postpone records a proposed new date and moves the meeting to postponed.
// The authoritative start and end times are left untouched; Reschedule
// commits a new window later.
func (m *Meeting) Postpone(proposedDate time.Time, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if !proposedDate.After(now) {
		return ErrDateNotInFuture
	}
	if m.Status.IsTerminal() {
		return ErrMeetingInTerminalState
	}
	m.Status = MeetingStatusPostponed
	m.ProposedDate = &proposedDate
	m.PostponementReason = reason
	return nil
}

// Reschedule commits a new time window on a postponed meeting and returns
// it to planned. The proposed date and postponement reason are kept for
// audit.
func (m *Meeting) Reschedule(start, end time.Time, now time.Time) error {
	if m.Status != MeetingStatusPostponed {
		return ErrMeetingNotPostponed
	}
	if end.Before(start) {
		return ErrInvalidTimeWindow
	}
	if !start.After(now) {
		return ErrDateNotInFuture
	}
	m.StartTime = start
	m.EndTime = end
	m.Status = MeetingStatusPlanned
	return nil
}

// Start moves the meeting to in_progress once its start time has passed.
func (m *Meeting) Start(now time.Time) error {
	if m.Status != MeetingStatusPlanned && m.Status != MeetingStatusConfirmed {
		return fmt.Errorf("cannot start a meeting with status %q", m.Status)
	}
	if m.IsUpcoming(now) {
		return ErrMeetingStillUpcoming
	}
	m.Status = MeetingStatusInProgress
	return nil
}

// Complete moves the meeting to completed. An upcoming meeting cannot be
// completed.
func (m *Meeting) Complete(now time.Time) error {
	if m.Status.IsTerminal() {
		return ErrMeetingInTerminalState
	}
	if m.IsUpcoming(now) {
		return ErrMeetingStillUpcoming
	}
	m.Status = MeetingStatusCompleted
	return nil
}

// Archive moves a completed or cancelled meeting to the final
// administrative archived status.
func (m *Meeting) Archive() error {
	if m.Status != MeetingStatusCompleted && m.Status != MeetingStatusCancelled {
		return fmt.Errorf("cannot archive a meeting with status %q", m.Status)
	}
	m.Status = MeetingStatusArchived
	return nil
}

// Tags generates a consistent set of tags for the meeting.
// IMPORTANT: If you modify this method, please update the Meeting Tags documentation in the README.md
// to ensure consumers understand how to use these tags for searching.
func (m *Meeting) Tags() []string {
	tags := []string{}

	if m == nil {
		return nil
	}

	if m.UID != "" {
		// without prefix
		tags = append(tags, m.UID)
		// with prefix
		tags = append(tags, fmt.Sprintf("meeting_uid:%s", m.UID))
	}

	if m.OrganizingUnitUID != "" {
		tags = append(tags, fmt.Sprintf("organizing_unit_uid:%s", m.OrganizingUnitUID))
	}

	if m.Title != "" {
		tags = append(tags, m.Title)
	}

	if m.Status != "" {
		tags = append(tags, fmt.Sprintf("status:%s", m.Status))
	}

	return tags
}
