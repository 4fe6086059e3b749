// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// CreateMeetingRequest is the payload for authoring a new meeting.
type CreateMeetingRequest struct {
	Title             string           `json:"title" validate:"required"`
	Description       string           `json:"description,omitempty"`
	StartTime         time.Time        `json:"start_time" validate:"required"`
	EndTime           time.Time        `json:"end_time" validate:"required"`
	OrganizingUnitUID string           `json:"organizing_unit_uid" validate:"required"`
	ChairUID          string           `json:"chair_uid,omitempty"`
	Format            MeetingFormat    `json:"format" validate:"required,oneof=in_person virtual hybrid"`
	Location          *Location        `json:"location,omitempty"`
	VideoConference   *VideoConference `json:"video_conference,omitempty"`
}

// UpdateMeetingRequest is the payload for editing an existing meeting.
// Nil fields are left unchanged.
type UpdateMeetingRequest struct {
	Title           *string          `json:"title,omitempty"`
	Description     *string          `json:"description,omitempty"`
	StartTime       *time.Time       `json:"start_time,omitempty"`
	EndTime         *time.Time       `json:"end_time,omitempty"`
	ChairUID        *string          `json:"chair_uid,omitempty"`
	Format          *MeetingFormat   `json:"format,omitempty" validate:"omitempty,oneof=in_person virtual hybrid"`
	Location        *Location        `json:"location,omitempty"`
	VideoConference *VideoConference `json:"video_conference,omitempty"`
	Summary         *string          `json:"summary,omitempty"`
}

// AddParticipationRequest is the payload for inviting an attendee to a
// meeting. Exactly one of InternalAttendee and ExternalAttendee must be
// set.
type AddParticipationRequest struct {
	MeetingUID       string            `json:"meeting_uid" validate:"required"`
	InternalAttendee *InternalAttendee `json:"internal_attendee,omitempty"`
	ExternalAttendee *ExternalAttendee `json:"external_attendee,omitempty"`
}

// CreateActionItemRequest is the payload for creating a follow-up task.
type CreateActionItemRequest struct {
	MeetingUID     string     `json:"meeting_uid" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	ResponsibleUID string     `json:"responsible_uid,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Comment        string     `json:"comment,omitempty"`
}

// InvitationResult reports the outcome of a bulk invitation send. The
// batch is per-participation: failures are counted, never rolled back.
type InvitationResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// BulkActionItemResult reports the outcome of a bulk action item status
// change.
type BulkActionItemResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}
