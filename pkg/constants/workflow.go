// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Notification retry constraints
const (
	// MaxNotificationRetries is the default retry budget for a failed notification.
	MaxNotificationRetries = 3
)

// Worker pool sizes
const (
	// InvitationFanoutWorkers bounds concurrent invitation deliveries per meeting.
	InvitationFanoutWorkers = 10

	// IndexMessageWorkers bounds concurrent index message publishes.
	IndexMessageWorkers = 4
)

// Passcode generation
const (
	// PasscodeBytes is the number of random bytes encoded into a generated
	// video conference passcode.
	PasscodeBytes = 6
)
