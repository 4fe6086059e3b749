// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ParticipationStatus represents the attendance status of one attendee for
// one meeting. The string values are part of the public contract.
type ParticipationStatus string

const (
	// ParticipationStatusInvited is the initial status of every participation.
	ParticipationStatusInvited ParticipationStatus = "invited"
	// ParticipationStatusConfirmed means the attendee confirmed they will attend.
	ParticipationStatusConfirmed ParticipationStatus = "confirmed"
	// ParticipationStatusAttended means the attendee was present.
	ParticipationStatusAttended ParticipationStatus = "attended"
	// ParticipationStatusAbsent means the attendee did not show up.
	ParticipationStatusAbsent ParticipationStatus = "absent"
	// ParticipationStatusExcused means the attendee gave a reason for not attending.
	ParticipationStatusExcused ParticipationStatus = "excused"
)

// IsValid reports whether the status is one of the known values.
func (s ParticipationStatus) IsValid() bool {
	switch s {
	case ParticipationStatusInvited, ParticipationStatusConfirmed,
		ParticipationStatusAttended, ParticipationStatusAbsent,
		ParticipationStatusExcused:
		return true
	}
	return false
}

// Label returns the human-readable label for the status.
func (s ParticipationStatus) Label() string {
	switch s {
	case ParticipationStatusInvited:
		return "Invited"
	case ParticipationStatusConfirmed:
		return "Confirmed"
	case ParticipationStatusAttended:
		return "Attended"
	case ParticipationStatusAbsent:
		return "Absent"
	case ParticipationStatusExcused:
		return "Excused"
	}
	return string(s)
}

// Color returns the display color associated with the status.
func (s ParticipationStatus) Color() string {
	switch s {
	case ParticipationStatusInvited:
		return "secondary"
	case ParticipationStatusConfirmed:
		return "primary"
	case ParticipationStatusAttended:
		return "success"
	case ParticipationStatusAbsent:
		return "danger"
	case ParticipationStatusExcused:
		return "warning"
	}
	return "secondary"
}

// Guard errors returned by participation operations.
var (
	ErrAmbiguousAttendee = errors.New("exactly one of internal or external attendee must be set")
	ErrMeetingNotStarted = errors.New("meeting has not started yet")
	ErrAttendanceFinal   = errors.New("attendance has already been recorded")
)

// Participation is the record of one attendee (internal staff or external
// guest) and their attendance status for a meeting. Exactly one of
// InternalAttendee and ExternalAttendee is set; the invariant is checked
// at every mutation, not just at creation.
type Participation struct {
	UID              string              `json:"uid"`
	MeetingUID       string              `json:"meeting_uid"`
	InternalAttendee *InternalAttendee   `json:"internal_attendee,omitempty"`
	ExternalAttendee *ExternalAttendee   `json:"external_attendee,omitempty"`
	Status           ParticipationStatus `json:"status"`
	ConfirmedAt      *time.Time          `json:"confirmed_at,omitempty"`
	AbsenceReason    string              `json:"absence_reason,omitempty"`
	CreatedAt        *time.Time          `json:"created_at,omitempty"`
	UpdatedAt        *time.Time          `json:"updated_at,omitempty"`
}

// CheckAttendeeExclusivity enforces the XOR invariant on the attendee
// references.
func (p *Participation) CheckAttendeeExclusivity() error {
	if (p.InternalAttendee == nil) == (p.ExternalAttendee == nil) {
		return ErrAmbiguousAttendee
	}
	return nil
}

// ParticipantType returns internal when the internal attendee reference is
// set, external otherwise.
func (p *Participation) ParticipantType() ParticipantType {
	if p.InternalAttendee != nil {
		return ParticipantTypeInternal
	}
	return ParticipantTypeExternal
}

// DisplayName returns the attendee's name regardless of kind.
func (p *Participation) DisplayName() string {
	if p.InternalAttendee != nil {
		return p.InternalAttendee.GetFullName()
	}
	if p.ExternalAttendee != nil {
		return p.ExternalAttendee.Name
	}
	return ""
}

// ContactSnapshot captures the attendee's contact details for notification
// creation.
func (p *Participation) ContactSnapshot() ContactSnapshot {
	if p.InternalAttendee != nil {
		return SnapshotFromInternal(p.InternalAttendee)
	}
	return SnapshotFromExternal(p.ExternalAttendee)
}

// isFinal reports whether attendance has already been recorded.
func (p *Participation) isFinal() bool {
	return p.Status == ParticipationStatusAttended || p.Status == ParticipationStatusAbsent
}

// Confirm records that the attendee will attend. Re-confirming is allowed
// and refreshes the confirmation timestamp.
func (p *Participation) Confirm(now time.Time) error {
	if err := p.CheckAttendeeExclusivity(); err != nil {
		return err
	}
	if p.isFinal() {
		return ErrAttendanceFinal
	}
	p.Status = ParticipationStatusConfirmed
	p.ConfirmedAt = &now
	return nil
}

// MarkAttended records presence. Attendance can only be recorded once the
// owning meeting's start time has passed.
func (p *Participation) MarkAttended(meetingStart, now time.Time) error {
	if err := p.CheckAttendeeExclusivity(); err != nil {
		return err
	}
	if meetingStart.After(now) {
		return ErrMeetingNotStarted
	}
	p.Status = ParticipationStatusAttended
	return nil
}

// MarkAbsent records a no-show with an optional reason. Like MarkAttended,
// it is only legal once the meeting has started.
func (p *Participation) MarkAbsent(reason string, meetingStart, now time.Time) error {
	if err := p.CheckAttendeeExclusivity(); err != nil {
		return err
	}
	if meetingStart.After(now) {
		return ErrMeetingNotStarted
	}
	p.Status = ParticipationStatusAbsent
	p.AbsenceReason = reason
	return nil
}

// Excuse records an excused absence with a mandatory reason. An excuse may
// be filed before the meeting starts.
func (p *Participation) Excuse(reason string) error {
	if err := p.CheckAttendeeExclusivity(); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if p.isFinal() {
		return ErrAttendanceFinal
	}
	p.Status = ParticipationStatusExcused
	p.AbsenceReason = reason
	return nil
}

// Tags generates a consistent set of tags for the participation.
func (p *Participation) Tags() []string {
	tags := []string{}

	if p == nil {
		return nil
	}

	if p.UID != "" {
		tags = append(tags, p.UID)
		tags = append(tags, fmt.Sprintf("participation_uid:%s", p.UID))
	}

	if p.MeetingUID != "" {
		tags = append(tags, fmt.Sprintf("meeting_uid:%s", p.MeetingUID))
	}

	if name := p.DisplayName(); name != "" {
		tags = append(tags, name)
	}

	tags = append(tags, fmt.Sprintf("participant_type:%s", p.ParticipantType()))

	return tags
}
