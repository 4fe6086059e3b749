// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service contains the meeting workflow orchestration: the meeting
// lifecycle, participation tracking, notification dispatch and action item
// follow-up.
package service

// ServiceConfig holds the configurable behavior of the workflow services.
type ServiceConfig struct {
	// MaxNotificationRetries is the retry budget for failed notifications.
	MaxNotificationRetries int
	// InvitationWorkers bounds concurrent invitation deliveries per meeting.
	InvitationWorkers int
}
