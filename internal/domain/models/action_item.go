// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"errors"
	"fmt"
	"time"
)

// ActionItemStatus represents the lifecycle status of a follow-up task.
type ActionItemStatus string

const (
	// ActionItemStatusPending is the initial status of every action item.
	ActionItemStatusPending ActionItemStatus = "pending"
	// ActionItemStatusInProgress means someone is working on the task.
	ActionItemStatusInProgress ActionItemStatus = "in_progress"
	// ActionItemStatusCompleted means the task is done.
	ActionItemStatusCompleted ActionItemStatus = "completed"
	// ActionItemStatusCancelled means the task was dropped.
	ActionItemStatusCancelled ActionItemStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values.
func (s ActionItemStatus) IsValid() bool {
	switch s {
	case ActionItemStatusPending, ActionItemStatusInProgress,
		ActionItemStatusCompleted, ActionItemStatusCancelled:
		return true
	}
	return false
}

// Label returns the human-readable label for the status.
func (s ActionItemStatus) Label() string {
	switch s {
	case ActionItemStatusPending:
		return "Pending"
	case ActionItemStatusInProgress:
		return "In progress"
	case ActionItemStatusCompleted:
		return "Completed"
	case ActionItemStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// ErrUnknownActionItemStatus is returned when transitioning to a status
// value outside the four known ones.
var ErrUnknownActionItemStatus = errors.New("unknown action item status")

// ActionItem is a follow-up task created from a meeting, optionally
// assigned and due-dated.
type ActionItem struct {
	UID            string           `json:"uid"`
	MeetingUID     string           `json:"meeting_uid"`
	Description    string           `json:"description"`
	ResponsibleUID string           `json:"responsible_uid,omitempty"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	Comment        string           `json:"comment,omitempty"`
	Status         ActionItemStatus `json:"status"`
	CreatedAt      *time.Time       `json:"created_at,omitempty"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}

// Transition moves the action item to any of the four known statuses.
// Task tracking is deliberately free-form: there is no enforced ordering
// between the statuses, only the value set is checked.
func (a *ActionItem) Transition(newStatus ActionItemStatus) error {
	if !newStatus.IsValid() {
		return ErrUnknownActionItemStatus
	}
	a.Status = newStatus
	return nil
}

// IsOverdue reports whether the task has a due date in the past and is
// neither completed nor cancelled.
func (a *ActionItem) IsOverdue(now time.Time) bool {
	if a.DueDate == nil {
		return false
	}
	if a.Status == ActionItemStatusCompleted || a.Status == ActionItemStatusCancelled {
		return false
	}
	return a.DueDate.Before(now)
}

// Tags generates a consistent set of tags for the action item.
func (a *ActionItem) Tags() []string {
	tags := []string{}

	if a == nil {
		return nil
	}

	if a.UID != "" {
		tags = append(tags, a.UID)
		tags = append(tags, fmt.Sprintf("action_item_uid:%s", a.UID))
	}

	if a.MeetingUID != "" {
		tags = append(tags, fmt.Sprintf("meeting_uid:%s", a.MeetingUID))
	}

	if a.ResponsibleUID != "" {
		tags = append(tags, fmt.Sprintf("responsible_uid:%s", a.ResponsibleUID))
	}

	if a.Status != "" {
		tags = append(tags, fmt.Sprintf("status:%s", a.Status))
	}

	return tags
}
