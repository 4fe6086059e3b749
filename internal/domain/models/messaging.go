// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// NATS subjects used by the meeting workflow service.
const (
	// IndexMeetingSubject is the subject for the indexing of meetings.
	// The subject is of the form: lfx.index.meeting
	IndexMeetingSubject = "lfx.index.meeting"

	// IndexParticipationSubject is the subject for the indexing of meeting participations.
	// The subject is of the form: lfx.index.meeting_participation
	IndexParticipationSubject = "lfx.index.meeting_participation"

	// IndexNotificationSubject is the subject for the indexing of meeting notifications.
	// The subject is of the form: lfx.index.meeting_notification
	IndexNotificationSubject = "lfx.index.meeting_notification"

	// IndexActionItemSubject is the subject for the indexing of meeting action items.
	// The subject is of the form: lfx.index.meeting_action_item
	IndexActionItemSubject = "lfx.index.meeting_action_item"

	// MeetingGetTitleSubject is the subject for the meeting-get-title request.
	// The subject is of the form: lfx.meeting-workflow-api.get_title
	MeetingGetTitleSubject = "lfx.meeting-workflow-api.get_title"

	// MeetingGetAggregateSubject is the subject for fetching one meeting
	// together with all of its owned collections.
	// The subject is of the form: lfx.meeting-workflow-api.get_aggregate
	MeetingGetAggregateSubject = "lfx.meeting-workflow-api.get_aggregate"

	// MeetingDeletedSubject is the subject emitted when a meeting and its
	// owned collections have been deleted.
	// The subject is of the form: lfx.meeting-workflow-api.meeting_deleted
	MeetingDeletedSubject = "lfx.meeting-workflow-api.meeting_deleted"

	// NotificationQueuedSubject is the subject emitted when a notification
	// becomes eligible for transport pickup.
	// The subject is of the form: lfx.meeting-workflow-api.notification_queued
	NotificationQueuedSubject = "lfx.meeting-workflow-api.notification_queued"
)

// MessageAction is the action of an indexing message.
type MessageAction string

const (
	// ActionCreated is the action of a message for a resource being created.
	ActionCreated MessageAction = "created"
	// ActionUpdated is the action of a message for a resource being updated.
	ActionUpdated MessageAction = "updated"
	// ActionDeleted is the action of a message for a resource being deleted.
	ActionDeleted MessageAction = "deleted"
)
