// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
)

// NatsMeetingRepository is the NATS KV store repository for meetings.
type NatsMeetingRepository struct {
	*NatsBaseRepository[models.Meeting]
	keyBuilder *KeyBuilder
}

// NewNatsMeetingRepository creates a new NATS KV store repository for meetings.
func NewNatsMeetingRepository(kvStore INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Meeting](kvStore, "meeting"),
		keyBuilder:         NewKeyBuilder(""),
	}
}

// Create stores a new meeting, generating a UID when none is set.
func (r *NatsMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	if meeting.UID == "" {
		meeting.UID = uuid.New().String()
	}

	key := r.keyBuilder.EntityKeyEncoded(KeyPrefixMeeting, meeting.UID)
	return r.NatsBaseRepository.Create(ctx, key, meeting)
}

// Exists checks if a meeting exists.
func (r *NatsMeetingRepository) Exists(ctx context.Context, meetingUID string) (bool, error) {
	key := r.keyBuilder.EntityKeyEncoded(KeyPrefixMeeting, meetingUID)
	return r.NatsBaseRepository.Exists(ctx, key)
}

// Get retrieves a meeting by UID.
func (r *NatsMeetingRepository) Get(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	key := r.keyBuilder.EntityKeyEncoded(KeyPrefixMeeting, meetingUID)
	return r.NatsBaseRepository.Get(ctx, key)
}

// GetWithRevision retrieves a meeting with its revision by UID.
func (r *NatsMeetingRepository) GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	key := r.keyBuilder.EntityKeyEncoded(KeyPrefixMeeting, meetingUID)
	return r.NatsBaseRepository.GetWithRevision(ctx, key)
}

// Update updates an existing meeting with optimistic concurrency control.
func (r *NatsMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	key := r.keyBuilder.EntityKeyEncoded(KeyPrefixMeeting, meeting.UID)
	return r.NatsBaseRepository.Update(ctx, key, meeting, revision)
}

// Delete removes a meeting.
func (r *NatsMeetingRepository) Delete(ctx context.Context, meetingUID string, revision uint64) error {
	key := r.keyBuilder.EntityKeyEncoded(KeyPrefixMeeting, meetingUID)
	return r.NatsBaseRepository.Delete(ctx, key, revision)
}

// ListAll lists all meetings.
func (r *NatsMeetingRepository) ListAll(ctx context.Context) ([]*models.Meeting, error) {
	return r.ListEntities(ctx, KeyPrefixMeeting+"/", r.keyBuilder)
}
