// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/ben-ryder/headbase/models"
)

var registerColumns = []string{
	"collection",
	"entity_id",
	"value",
	"timestamp",
	"node_id",
	"deleted",
	"updated_at",
}

// buildUpsertRegisterQuery builds an insert for one register that replaces
// the existing row with the same (collection, entity_id) key.
func buildUpsertRegisterQuery(r models.Register) (string, []any, error) {
	return sq.Insert("registers").
		Columns(registerColumns...).
		Values(string(r.Key.Collection), r.Key.EntityID, r.Value, r.Timestamp, r.NodeID, r.Deleted, r.UpdatedAt).
		Suffix(`ON CONFLICT(collection, entity_id) DO UPDATE SET
			value      = excluded.value,
			timestamp  = excluded.timestamp,
			node_id    = excluded.node_id,
			deleted    = excluded.deleted,
			updated_at = excluded.updated_at`).
		ToSql()
}

func buildSelectRegistersQuery() (string, []any, error) {
	return sq.Select(registerColumns...).
		From("registers").
		OrderBy("collection", "entity_id").
		ToSql()
}

func buildInsertDiffQuery(payload []byte) (string, []any, error) {
	return sq.Insert("sync_queue").
		Columns("payload").
		Values(payload).
		ToSql()
}

func buildSelectDiffsQuery() (string, []any, error) {
	return sq.Select("id", "payload").
		From("sync_queue").
		OrderBy("id").
		ToSql()
}

// buildDeleteDiffsQuery deletes queue rows by id. squirrel expands the slice
// into an IN (?,?,...) clause.
func buildDeleteDiffsQuery(ids []int64) (string, []any, error) {
	return sq.Delete("sync_queue").
		Where(sq.Eq{"id": ids}).
		ToSql()
}

func buildUpsertMetaQuery(key, value string) (string, []any, error) {
	return sq.Insert("document_meta").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
}

func buildSelectMetaQuery(key string) (string, []any, error) {
	return sq.Select("value").
		From("document_meta").
		Where(sq.Eq{"key": key}).
		ToSql()
}
