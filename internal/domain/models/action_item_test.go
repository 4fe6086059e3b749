// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/pkg/utils"
)

func TestActionItemTransition(t *testing.T) {
	tests := []struct {
		name      string
		from      ActionItemStatus
		to        ActionItemStatus
		wantErr   bool
		wantState ActionItemStatus
	}{
		{name: "pending to in_progress", from: ActionItemStatusPending, to: ActionItemStatusInProgress, wantState: ActionItemStatusInProgress},
		{name: "in_progress to completed", from: ActionItemStatusInProgress, to: ActionItemStatusCompleted, wantState: ActionItemStatusCompleted},
		{name: "completed back to pending", from: ActionItemStatusCompleted, to: ActionItemStatusPending, wantState: ActionItemStatusPending},
		{name: "pending to cancelled", from: ActionItemStatusPending, to: ActionItemStatusCancelled, wantState: ActionItemStatusCancelled},
		{name: "unknown status", from: ActionItemStatusPending, to: ActionItemStatus("done"), wantErr: true, wantState: ActionItemStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionItem := &ActionItem{Status: tt.from}

			err := actionItem.Transition(tt.to)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownActionItemStatus)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, actionItem.Status)
		})
	}
}

func TestActionItemIsOverdue(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		dueDate *time.Time
		status  ActionItemStatus
		overdue bool
	}{
		{name: "no due date", dueDate: nil, status: ActionItemStatusPending, overdue: false},
		{name: "due yesterday still pending", dueDate: utils.TimePtr(yesterday), status: ActionItemStatusPending, overdue: true},
		{name: "due yesterday in progress", dueDate: utils.TimePtr(yesterday), status: ActionItemStatusInProgress, overdue: true},
		{name: "due yesterday but completed", dueDate: utils.TimePtr(yesterday), status: ActionItemStatusCompleted, overdue: false},
		{name: "due yesterday but cancelled", dueDate: utils.TimePtr(yesterday), status: ActionItemStatusCancelled, overdue: false},
		{name: "due tomorrow", dueDate: utils.TimePtr(tomorrow), status: ActionItemStatusPending, overdue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionItem := &ActionItem{DueDate: tt.dueDate, Status: tt.status}

			assert.Equal(t, tt.overdue, actionItem.IsOverdue(now))
		})
	}
}
