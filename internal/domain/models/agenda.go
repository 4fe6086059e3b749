// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// AgendaItem is one ordered point on a meeting's agenda.
type AgendaItem struct {
	UID             string     `json:"uid"`
	MeetingUID      string     `json:"meeting_uid"`
	Order           int        `json:"order"`
	Title           string     `json:"title"`
	PresenterUID    string     `json:"presenter_uid,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// Document is metadata about a file attached to a meeting (a report,
// supporting material). The binary itself lives in the object store.
type Document struct {
	UID           string     `json:"uid"`
	MeetingUID    string     `json:"meeting_uid"`
	FileName      string     `json:"file_name"`
	ObjectKey     string     `json:"object_key"`
	ContentType   string     `json:"content_type,omitempty"`
	UploadedByUID string     `json:"uploaded_by_uid,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// MeetingAggregate is one meeting together with all of its owned
// collections, loaded as a consistent snapshot so that cross-entity guards
// (attendance needs the meeting's start time) see one version of the world.
type MeetingAggregate struct {
	Meeting        *Meeting         `json:"meeting"`
	Participations []*Participation `json:"participations,omitempty"`
	Notifications  []*Notification  `json:"notifications,omitempty"`
	ActionItems    []*ActionItem    `json:"action_items,omitempty"`
	AgendaItems    []*AgendaItem    `json:"agenda_items,omitempty"`
	Documents      []*Document      `json:"documents,omitempty"`
}
