// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// MeetingStatus represents the lifecycle status of a meeting.
//
// The string values are part of the public contract: API consumers and the
// indexer key off these literal values, so they must never be renamed.
type MeetingStatus string

const (
	// MeetingStatusPlanned is the initial status of every meeting.
	MeetingStatusPlanned MeetingStatus = "planned"
	// MeetingStatusConfirmed means the meeting has been validated by an organizer.
	MeetingStatusConfirmed MeetingStatus = "confirmed"
	// MeetingStatusInProgress means the meeting is currently running.
	MeetingStatusInProgress MeetingStatus = "in_progress"
	// MeetingStatusCompleted means the meeting has taken place.
	MeetingStatusCompleted MeetingStatus = "completed"
	// MeetingStatusCancelled means the meeting was called off before it ended.
	MeetingStatusCancelled MeetingStatus = "cancelled"
	// MeetingStatusPostponed means a new date has been proposed but not committed.
	MeetingStatusPostponed MeetingStatus = "postponed"
	// MeetingStatusArchived is the final administrative status.
	MeetingStatusArchived MeetingStatus = "archived"
)

// MeetingStatuses lists every valid meeting status.
var MeetingStatuses = []MeetingStatus{
	MeetingStatusPlanned,
	MeetingStatusConfirmed,
	MeetingStatusInProgress,
	MeetingStatusCompleted,
	MeetingStatusCancelled,
	MeetingStatusPostponed,
	MeetingStatusArchived,
}

// IsValid reports whether the status is one of the known values.
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusPlanned, MeetingStatusConfirmed, MeetingStatusInProgress,
		MeetingStatusCompleted, MeetingStatusCancelled, MeetingStatusPostponed,
		MeetingStatusArchived:
		return true
	}
	return false
}

// IsTerminal reports whether no further lifecycle transitions are allowed.
func (s MeetingStatus) IsTerminal() bool {
	switch s {
	case MeetingStatusCompleted, MeetingStatusCancelled, MeetingStatusArchived:
		return true
	}
	return false
}

// Label returns the human-readable label for the status.
// Cosmetic accessors are kept separate from transition guards on purpose.
func (s MeetingStatus) Label() string {
	switch s {
	case MeetingStatusPlanned:
		return "Planned"
	case MeetingStatusConfirmed:
		return "Confirmed"
	case MeetingStatusInProgress:
		return "In progress"
	case MeetingStatusCompleted:
		return "Completed"
	case MeetingStatusCancelled:
		return "Cancelled"
	case MeetingStatusPostponed:
		return "Postponed"
	case MeetingStatusArchived:
		return "Archived"
	}
	return string(s)
}

// Color returns the display color associated with the status.
func (s MeetingStatus) Color() string {
	switch s {
	case MeetingStatusPlanned:
		return "secondary"
	case MeetingStatusConfirmed:
		return "primary"
	case MeetingStatusInProgress:
		return "info"
	case MeetingStatusCompleted:
		return "success"
	case MeetingStatusCancelled:
		return "danger"
	case MeetingStatusPostponed:
		return "warning"
	case MeetingStatusArchived:
		return "dark"
	}
	return "secondary"
}

// Icon returns the display icon name associated with the status.
func (s MeetingStatus) Icon() string {
	switch s {
	case MeetingStatusPlanned:
		return "calendar"
	case MeetingStatusConfirmed:
		return "calendar-check"
	case MeetingStatusInProgress:
		return "play-circle"
	case MeetingStatusCompleted:
		return "check-circle"
	case MeetingStatusCancelled:
		return "x-circle"
	case MeetingStatusPostponed:
		return "clock-history"
	case MeetingStatusArchived:
		return "archive"
	}
	return "calendar"
}
