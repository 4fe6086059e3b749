// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
)

// NatsChildRepository provides the common operations for entities owned by
// a meeting (participations, notifications, action items, agenda items,
// documents). Each entity lives under its own key and is additionally
// indexed under the owning meeting so that per-meeting listing does not
// scan the whole bucket.
type NatsChildRepository[T any] struct {
	*NatsBaseRepository[T]
	keyBuilder   *KeyBuilder
	entityPrefix string
	uidOf        func(*T) string
	setUID       func(*T, string)
	meetingOf    func(*T) string
}

// NewNatsChildRepository creates a repository for a meeting-owned entity.
func NewNatsChildRepository[T any](
	kvStore INatsKeyValue,
	entityName, entityPrefix string,
	uidOf func(*T) string,
	setUID func(*T, string),
	meetingOf func(*T) string,
) *NatsChildRepository[T] {
	return &NatsChildRepository[T]{
		NatsBaseRepository: NewNatsBaseRepository[T](kvStore, entityName),
		keyBuilder:         NewKeyBuilder(""),
		entityPrefix:       entityPrefix,
		uidOf:              uidOf,
		setUID:             setUID,
		meetingOf:          meetingOf,
	}
}

// Create stores a new entity and its meeting index entry. A UID is
// generated when the entity does not carry one yet.
func (r *NatsChildRepository[T]) Create(ctx context.Context, entity *T) error {
	if r.uidOf(entity) == "" {
		r.setUID(entity, uuid.New().String())
	}

	key := r.keyBuilder.EntityKeyEncoded(r.entityPrefix, r.uidOf(entity))
	if err := r.NatsBaseRepository.Create(ctx, key, entity); err != nil {
		return err
	}

	indexKey := r.keyBuilder.IndexKeyEncoded(KeyPrefixIndexMeeting, r.meetingOf(entity), r.uidOf(entity))
	if _, err := r.kvStore.Put(ctx, indexKey, []byte{}); err != nil {
		// Per-meeting listing only sees indexed entities, so an entity
		// without its index entry would be stored but unreachable. Roll
		// the entity back and fail the create.
		if delErr := r.NatsBaseRepository.DeleteWithoutRevision(ctx, key); delErr != nil {
			slog.ErrorContext(ctx, "failed to roll back entity after index write failure",
				logging.ErrKey, delErr, "entity", r.entityName, "uid", r.uidOf(entity))
		}
		return domain.NewInternalError("failed to create meeting index entry", err)
	}

	return nil
}

// Get retrieves an entity by UID.
func (r *NatsChildRepository[T]) Get(ctx context.Context, uid string) (*T, error) {
	key := r.keyBuilder.EntityKeyEncoded(r.entityPrefix, uid)
	return r.NatsBaseRepository.Get(ctx, key)
}

// GetWithRevision retrieves an entity with its revision by UID.
func (r *NatsChildRepository[T]) GetWithRevision(ctx context.Context, uid string) (*T, uint64, error) {
	key := r.keyBuilder.EntityKeyEncoded(r.entityPrefix, uid)
	return r.NatsBaseRepository.GetWithRevision(ctx, key)
}

// Update updates an existing entity with optimistic concurrency control.
func (r *NatsChildRepository[T]) Update(ctx context.Context, entity *T, revision uint64) error {
	key := r.keyBuilder.EntityKeyEncoded(r.entityPrefix, r.uidOf(entity))
	return r.NatsBaseRepository.Update(ctx, key, entity, revision)
}

// Delete removes an entity and its meeting index entry.
func (r *NatsChildRepository[T]) Delete(ctx context.Context, uid string, revision uint64) error {
	entity, err := r.Get(ctx, uid)
	if err != nil {
		return err
	}

	key := r.keyBuilder.EntityKeyEncoded(r.entityPrefix, uid)
	if err := r.NatsBaseRepository.Delete(ctx, key, revision); err != nil {
		return err
	}

	indexKey := r.keyBuilder.IndexKeyEncoded(KeyPrefixIndexMeeting, r.meetingOf(entity), uid)
	if err := r.NatsBaseRepository.DeleteWithoutRevision(ctx, indexKey); err != nil {
		if domain.GetErrorType(err) != domain.ErrorTypeNotFound {
			slog.WarnContext(ctx, "failed to delete meeting index entry",
				logging.ErrKey, err, "entity", r.entityName, "uid", uid)
		}
	}

	return nil
}

// ListByMeeting retrieves all entities owned by one meeting via the index.
func (r *NatsChildRepository[T]) ListByMeeting(ctx context.Context, meetingUID string) ([]*T, error) {
	keys, err := r.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	indexPrefix := r.keyBuilder.IndexKey(KeyPrefixIndexMeeting, meetingUID, "")

	var entities []*T
	for _, key := range keys {
		decoded, err := r.keyBuilder.DecodeKey(key)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(decoded, indexPrefix) {
			continue
		}

		uid := strings.TrimPrefix(decoded, indexPrefix)
		entity, err := r.Get(ctx, uid)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				// Stale index entry; the entity itself is gone.
				continue
			}
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

// DeleteAllByMeeting removes every entity owned by one meeting. It is the
// cascade path used when a meeting is deleted, so revisions are not
// checked. Each failed child is reported but does not stop the sweep.
func (r *NatsChildRepository[T]) DeleteAllByMeeting(ctx context.Context, meetingUID string) error {
	entities, err := r.ListByMeeting(ctx, meetingUID)
	if err != nil {
		return err
	}

	var lastErr error
	for _, entity := range entities {
		uid := r.uidOf(entity)
		key := r.keyBuilder.EntityKeyEncoded(r.entityPrefix, uid)
		if err := r.DeleteWithoutRevision(ctx, key); err != nil {
			slog.ErrorContext(ctx, "failed to cascade delete entity",
				logging.ErrKey, err, "entity", r.entityName, "uid", uid)
			lastErr = err
			continue
		}
		indexKey := r.keyBuilder.IndexKeyEncoded(KeyPrefixIndexMeeting, meetingUID, uid)
		if err := r.DeleteWithoutRevision(ctx, indexKey); err != nil {
			if domain.GetErrorType(err) != domain.ErrorTypeNotFound {
				slog.WarnContext(ctx, "failed to delete meeting index entry",
					logging.ErrKey, err, "entity", r.entityName, "uid", uid)
			}
		}
	}

	return lastErr
}
