// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ben-ryder/headbase/internal/logger"
	"github.com/ben-ryder/headbase/models"
)

// documentRepository is the SQLite-backed implementation of
// [DocumentRepository]. It executes register, queue and metadata operations
// against the local document database using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so database interactions are traced with structured
// fields (collection, entity_id, queue ids).
type documentRepository struct {
	*DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, log *logger.Logger) DocumentRepository {
	return &documentRepository{
		DB:     db,
		logger: log,
	}
}

// UpsertRegisters writes each register inside one transaction so a partial
// merge is never persisted.
func (d *documentRepository) UpsertRegisters(ctx context.Context, registers ...models.Register) error {
	log := logger.FromContext(ctx)

	if len(registers) == 0 {
		return nil
	}

	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.UpsertRegisters").Msg("error during opening transaction")
		return fmt.Errorf("error during opening transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range registers {
		query, args, err := buildUpsertRegisterQuery(r)
		if err != nil {
			log.Err(err).
				Str("func", "documentRepository.UpsertRegisters").
				Str("collection", string(r.Key.Collection)).
				Str("entity_id", r.Key.EntityID).
				Msg("failed to create query")
			return err
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "documentRepository.UpsertRegisters").
				Str("collection", string(r.Key.Collection)).
				Str("entity_id", r.Key.EntityID).
				Msg("failed to execute query for upserting register")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "documentRepository.UpsertRegisters").Msg("error committing transaction")
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// AllRegisters loads every persisted register.
func (d *documentRepository) AllRegisters(ctx context.Context) ([]models.Register, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRegistersQuery()
	if err != nil {
		log.Err(err).Str("func", "documentRepository.AllRegisters").Msg("failed to create query")
		return nil, err
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.AllRegisters").Msg("failed to execute query for loading registers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	registers := make([]models.Register, 0, 64)
	for rows.Next() {
		var r models.Register
		var collection string

		scanErr := rows.Scan(
			&collection,
			&r.Key.EntityID,
			&r.Value,
			&r.Timestamp,
			&r.NodeID,
			&r.Deleted,
			&r.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "documentRepository.AllRegisters").Msg("failed to scan register row")
			return nil, scanErr
		}

		r.Key.Collection = models.Collection(collection)
		registers = append(registers, r)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "documentRepository.AllRegisters").Msg("iteration error after loading registers")
		return nil, err
	}

	return registers, nil
}

// EnqueueDiff appends an encoded diff to the outbound queue.
func (d *documentRepository) EnqueueDiff(ctx context.Context, payload []byte) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertDiffQuery(payload)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.EnqueueDiff").Msg("failed to create query")
		return 0, err
	}

	result, err := d.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.EnqueueDiff").Msg("failed to execute query for enqueueing diff")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Err(err).Str("func", "documentRepository.EnqueueDiff").Msg("failed to read queue id")
		return 0, err
	}

	return id, nil
}

// PendingDiffs returns all queued diffs in insertion order.
func (d *documentRepository) PendingDiffs(ctx context.Context) ([]QueuedDiff, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDiffsQuery()
	if err != nil {
		log.Err(err).Str("func", "documentRepository.PendingDiffs").Msg("failed to create query")
		return nil, err
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.PendingDiffs").Msg("failed to execute query for loading queued diffs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	diffs := make([]QueuedDiff, 0, 8)
	for rows.Next() {
		var diff QueuedDiff
		if scanErr := rows.Scan(&diff.ID, &diff.Payload); scanErr != nil {
			log.Err(scanErr).Str("func", "documentRepository.PendingDiffs").Msg("failed to scan queue row")
			return nil, scanErr
		}
		diffs = append(diffs, diff)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "documentRepository.PendingDiffs").Msg("iteration error after loading queued diffs")
		return nil, err
	}

	return diffs, nil
}

// RemoveDiffs deletes queue entries after a successful push.
func (d *documentRepository) RemoveDiffs(ctx context.Context, ids ...int64) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildDeleteDiffsQuery(ids)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.RemoveDiffs").Msg("failed to create query")
		return err
	}

	if _, err = d.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "documentRepository.RemoveDiffs").
			Int("ids count", len(ids)).
			Msg("failed to execute query for removing queued diffs")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// LoadMeta returns the value stored under key.
func (d *documentRepository) LoadMeta(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectMetaQuery(key)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.LoadMeta").Str("key", key).Msg("failed to create query")
		return "", err
	}

	var value string
	err = d.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMetaNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "documentRepository.LoadMeta").Str("key", key).Msg("failed to execute query for loading meta")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

// SaveMeta stores value under key.
func (d *documentRepository) SaveMeta(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertMetaQuery(key, value)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.SaveMeta").Str("key", key).Msg("failed to create query")
		return err
	}

	if _, err = d.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "documentRepository.SaveMeta").Str("key", key).Msg("failed to execute query for saving meta")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
