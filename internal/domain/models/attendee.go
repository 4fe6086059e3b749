// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"strings"
)

// ParticipantType distinguishes internal staff from external guests.
// It is derived from which attendee reference is set, never stored.
type ParticipantType string

const (
	// ParticipantTypeInternal represents a staff member with an organizational identity.
	ParticipantTypeInternal ParticipantType = "internal"
	// ParticipantTypeExternal represents a guest identified by contact details only.
	ParticipantTypeExternal ParticipantType = "external"
)

// InternalAttendee is a staff member with an organizational identity.
type InternalAttendee struct {
	UID       string `json:"uid"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
}

// GetFullName returns the attendee's full name, trimmed of surrounding whitespace.
func (a *InternalAttendee) GetFullName() string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", a.FirstName, a.LastName))
}

// ExternalAttendee is a guest or consultant without an organizational
// identity, identified by contact details only.
type ExternalAttendee struct {
	UID          string `json:"uid"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// ContactSnapshot is the recipient contact information captured from an
// attendee at notification creation time. It is never re-derived after
// creation so a later change of attendee details does not rewrite history.
type ContactSnapshot struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SnapshotFromInternal captures a contact snapshot from an internal attendee.
func SnapshotFromInternal(a *InternalAttendee) ContactSnapshot {
	if a == nil {
		return ContactSnapshot{}
	}
	return ContactSnapshot{
		Name:  a.GetFullName(),
		Email: a.Email,
		Phone: a.Phone,
	}
}

// SnapshotFromExternal captures a contact snapshot from an external attendee.
func SnapshotFromExternal(a *ExternalAttendee) ContactSnapshot {
	if a == nil {
		return ContactSnapshot{}
	}
	return ContactSnapshot{
		Name:  a.Name,
		Email: a.Email,
		Phone: a.Phone,
	}
}
