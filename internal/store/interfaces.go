// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/ben-ryder/headbase/models"
)

// DocumentRepository persists the local CRDT document: its registers, the
// queue of diffs not yet pushed to the server, and the document metadata
// (node id, Lamport clock, last server clock seen).
//
// Register values are stored exactly as given; the caller is responsible for
// encrypting them before they reach the repository.
type DocumentRepository interface {
	// UpsertRegisters writes the given registers, replacing any existing
	// row with the same (collection, entity id) key.
	UpsertRegisters(ctx context.Context, registers ...models.Register) error

	// AllRegisters returns every persisted register.
	AllRegisters(ctx context.Context) ([]models.Register, error)

	// EnqueueDiff appends an encoded diff to the outbound sync queue and
	// returns its queue id.
	EnqueueDiff(ctx context.Context, payload []byte) (int64, error)

	// PendingDiffs returns all queued diffs in insertion order.
	PendingDiffs(ctx context.Context) ([]QueuedDiff, error)

	// RemoveDiffs deletes queue entries by id after a successful push.
	RemoveDiffs(ctx context.Context, ids ...int64) error

	// LoadMeta returns the value stored under key, or ErrMetaNotFound.
	LoadMeta(ctx context.Context, key string) (string, error)

	// SaveMeta stores value under key, replacing any previous value.
	SaveMeta(ctx context.Context, key, value string) error
}

// QueuedDiff is one entry of the outbound sync queue.
type QueuedDiff struct {
	ID      int64
	Payload []byte
}

// Metadata keys used by the document store.
const (
	MetaNodeID          = "node_id"
	MetaClock           = "clock"
	MetaLastServerClock = "last_server_clock"
)
