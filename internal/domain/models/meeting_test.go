// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upcomingMeeting(status MeetingStatus, now time.Time) *Meeting {
	return &Meeting{
		UID:       "meeting-1",
		Title:     "Quarterly review",
		StartTime: now.Add(24 * time.Hour),
		EndTime:   now.Add(25 * time.Hour),
		Status:    status,
	}
}

func pastMeeting(status MeetingStatus, now time.Time) *Meeting {
	return &Meeting{
		UID:       "meeting-1",
		Title:     "Quarterly review",
		StartTime: now.Add(-2 * time.Hour),
		EndTime:   now.Add(-1 * time.Hour),
		Status:    status,
	}
}

func TestMeetingStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   MeetingStatus
		terminal bool
	}{
		{MeetingStatusPlanned, false},
		{MeetingStatusConfirmed, false},
		{MeetingStatusInProgress, false},
		{MeetingStatusPostponed, false},
		{MeetingStatusCompleted, true},
		{MeetingStatusCancelled, true},
		{MeetingStatusArchived, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestMeetingPredicates(t *testing.T) {
	now := time.Now().UTC()

	past := pastMeeting(MeetingStatusPlanned, now)
	assert.True(t, past.IsPast(now))
	assert.False(t, past.IsOngoing(now))
	assert.False(t, past.IsUpcoming(now))

	upcoming := upcomingMeeting(MeetingStatusPlanned, now)
	assert.False(t, upcoming.IsPast(now))
	assert.False(t, upcoming.IsOngoing(now))
	assert.True(t, upcoming.IsUpcoming(now))

	ongoing := &Meeting{StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)}
	assert.True(t, ongoing.IsOngoing(now))
	assert.False(t, ongoing.IsPast(now))
	assert.False(t, ongoing.IsUpcoming(now))
}

func TestMeetingFormatGuards(t *testing.T) {
	assert.True(t, MeetingFormatInPerson.RequiresPhysicalLocation())
	assert.True(t, MeetingFormatHybrid.RequiresPhysicalLocation())
	assert.False(t, MeetingFormatVirtual.RequiresPhysicalLocation())

	assert.True(t, MeetingFormatVirtual.RequiresVideoConference())
	assert.True(t, MeetingFormatHybrid.RequiresVideoConference())
	assert.False(t, MeetingFormatInPerson.RequiresVideoConference())
}

func TestMeetingConfirm(t *testing.T) {
	now := time.Now().UTC()

	t.Run("confirm planned meeting", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPlanned, now)

		err := meeting.Confirm("user-1", now)

		require.NoError(t, err)
		assert.Equal(t, MeetingStatusConfirmed, meeting.Status)
		assert.Equal(t, "user-1", meeting.ValidatedBy)
		require.NotNil(t, meeting.ValidatedAt)
		assert.Equal(t, now, *meeting.ValidatedAt)
	})

	t.Run("confirm already confirmed meeting", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusConfirmed, now)

		err := meeting.Confirm("user-2", now)

		assert.ErrorIs(t, err, ErrMeetingAlreadyValidated)
		assert.Empty(t, meeting.ValidatedBy)
	})

	t.Run("confirm cancelled meeting", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusCancelled, now)

		err := meeting.Confirm("user-1", now)

		assert.ErrorIs(t, err, ErrMeetingInTerminalState)
	})
}

func TestMeetingCancel(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		meeting *Meeting
		reason  string
		wantErr error
	}{
		{
			name:    "cancel upcoming meeting",
			meeting: upcomingMeeting(MeetingStatusPlanned, now),
			reason:  "chair unavailable",
		},
		{
			name:    "cancel past meeting",
			meeting: pastMeeting(MeetingStatusPlanned, now),
			reason:  "chair unavailable",
			wantErr: ErrMeetingAlreadyPast,
		},
		{
			name:    "cancel without reason",
			meeting: upcomingMeeting(MeetingStatusPlanned, now),
			reason:  "   ",
			wantErr: ErrReasonRequired,
		},
		{
			name:    "cancel archived meeting",
			meeting: upcomingMeeting(MeetingStatusArchived, now),
			reason:  "chair unavailable",
			wantErr: ErrMeetingInTerminalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meeting.Cancel(tt.reason, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotEqual(t, MeetingStatusCancelled, tt.meeting.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, MeetingStatusCancelled, tt.meeting.Status)
			assert.Equal(t, tt.reason, tt.meeting.CancellationReason)
		})
	}
}

func TestMeetingPostponeAndReschedule(t *testing.T) {
	now := time.Now().UTC()

	t.Run("postpone keeps the original window", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPlanned, now)
		originalStart := meeting.StartTime
		proposed := now.Add(72 * time.Hour)

		err := meeting.Postpone(proposed, "venue conflict", now)

		require.NoError(t, err)
		assert.Equal(t, MeetingStatusPostponed, meeting.Status)
		assert.Equal(t, originalStart, meeting.StartTime)
		require.NotNil(t, meeting.ProposedDate)
		assert.Equal(t, proposed, *meeting.ProposedDate)
		assert.Equal(t, "venue conflict", meeting.PostponementReason)
	})

	t.Run("postpone to a past date", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPlanned, now)

		err := meeting.Postpone(now.Add(-time.Hour), "venue conflict", now)

		assert.ErrorIs(t, err, ErrDateNotInFuture)
	})

	t.Run("postpone without reason", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPlanned, now)

		err := meeting.Postpone(now.Add(time.Hour), "", now)

		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("reschedule commits the new window", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPlanned, now)
		require.NoError(t, meeting.Postpone(now.Add(72*time.Hour), "venue conflict", now))

		start := now.Add(96 * time.Hour)
		end := start.Add(time.Hour)
		err := meeting.Reschedule(start, end, now)

		require.NoError(t, err)
		assert.Equal(t, MeetingStatusPlanned, meeting.Status)
		assert.Equal(t, start, meeting.StartTime)
		assert.Equal(t, end, meeting.EndTime)
		// Kept for audit.
		assert.NotNil(t, meeting.ProposedDate)
	})

	t.Run("reschedule a meeting that is not postponed", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPlanned, now)

		err := meeting.Reschedule(now.Add(time.Hour), now.Add(2*time.Hour), now)

		assert.ErrorIs(t, err, ErrMeetingNotPostponed)
	})

	t.Run("reschedule with inverted window", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPostponed, now)

		err := meeting.Reschedule(now.Add(2*time.Hour), now.Add(time.Hour), now)

		assert.ErrorIs(t, err, ErrInvalidTimeWindow)
	})
}

func TestMeetingStart(t *testing.T) {
	now := time.Now().UTC()

	t.Run("start once the window opened", func(t *testing.T) {
		meeting := &Meeting{
			Status:    MeetingStatusConfirmed,
			StartTime: now.Add(-time.Minute),
			EndTime:   now.Add(time.Hour),
		}

		err := meeting.Start(now)

		require.NoError(t, err)
		assert.Equal(t, MeetingStatusInProgress, meeting.Status)
	})

	t.Run("start an upcoming meeting", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPlanned, now)

		err := meeting.Start(now)

		assert.ErrorIs(t, err, ErrMeetingStillUpcoming)
	})

	t.Run("start a postponed meeting", func(t *testing.T) {
		meeting := pastMeeting(MeetingStatusPostponed, now)

		err := meeting.Start(now)

		assert.Error(t, err)
	})
}

func TestMeetingComplete(t *testing.T) {
	now := time.Now().UTC()

	t.Run("complete a past meeting", func(t *testing.T) {
		meeting := pastMeeting(MeetingStatusInProgress, now)

		err := meeting.Complete(now)

		require.NoError(t, err)
		assert.Equal(t, MeetingStatusCompleted, meeting.Status)
	})

	t.Run("complete an upcoming meeting", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusConfirmed, now)

		err := meeting.Complete(now)

		assert.ErrorIs(t, err, ErrMeetingStillUpcoming)
	})

	t.Run("complete a cancelled meeting", func(t *testing.T) {
		meeting := pastMeeting(MeetingStatusCancelled, now)

		err := meeting.Complete(now)

		assert.ErrorIs(t, err, ErrMeetingInTerminalState)
	})
}

func TestMeetingArchive(t *testing.T) {
	now := time.Now().UTC()

	t.Run("archive completed meeting", func(t *testing.T) {
		meeting := pastMeeting(MeetingStatusCompleted, now)

		require.NoError(t, meeting.Archive())
		assert.Equal(t, MeetingStatusArchived, meeting.Status)
	})

	t.Run("archive cancelled meeting", func(t *testing.T) {
		meeting := pastMeeting(MeetingStatusCancelled, now)

		require.NoError(t, meeting.Archive())
		assert.Equal(t, MeetingStatusArchived, meeting.Status)
	})

	t.Run("archive planned meeting", func(t *testing.T) {
		meeting := upcomingMeeting(MeetingStatusPlanned, now)

		assert.Error(t, meeting.Archive())
		assert.Equal(t, MeetingStatusPlanned, meeting.Status)
	})
}

func TestLocationIsZero(t *testing.T) {
	var nilLocation *Location
	assert.True(t, nilLocation.IsZero())
	assert.True(t, (&Location{}).IsZero())
	assert.True(t, (&Location{Address: "   "}).IsZero())
	assert.False(t, (&Location{RoomUID: "room-1"}).IsZero())
	assert.False(t, (&Location{Address: "1 Letterman Dr"}).IsZero())
}

func TestVideoConferenceIsZero(t *testing.T) {
	var nilConference *VideoConference
	assert.True(t, nilConference.IsZero())
	assert.True(t, (&VideoConference{Platform: "zoom"}).IsZero())
	assert.False(t, (&VideoConference{JoinLink: "https://zoom.us/j/123"}).IsZero())
}

func TestMeetingTags(t *testing.T) {
	meeting := &Meeting{
		UID:               "meeting-1",
		Title:             "Quarterly review",
		OrganizingUnitUID: "unit-1",
		Status:            MeetingStatusPlanned,
	}

	tags := meeting.Tags()

	assert.Contains(t, tags, "meeting-1")
	assert.Contains(t, tags, "meeting_uid:meeting-1")
	assert.Contains(t, tags, "organizing_unit_uid:unit-1")
	assert.Contains(t, tags, "Quarterly review")
	assert.Contains(t, tags, "status:planned")
}
