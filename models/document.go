// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package models

import "time"

// Collection names the logical groups of entities inside the local document.
type Collection string

// Collections present in every vault document.
const (
	CollectionVaults    Collection = "vaults"
	CollectionNotes     Collection = "notes"
	CollectionTemplates Collection = "templates"
	CollectionTags      Collection = "tags"
)

// RegisterKey addresses a single last-writer-wins register inside the
// document: one entity in one collection.
type RegisterKey struct {
	Collection Collection `json:"collection" cbor:"1,keyasint"`
	EntityID   string     `json:"entityId" cbor:"2,keyasint"`
}

// Register is one LWW cell of the document. Value is the CBOR-encoded entity
// content; Timestamp is a Lamport clock and NodeID the writer that produced
// this version. Deleted marks a tombstone (Value empty).
//
// Ordering: a register is newer than another when its Timestamp is greater,
// with NodeID as a deterministic tiebreak. This makes merge commutative,
// associative and idempotent regardless of delivery order.
type Register struct {
	Key       RegisterKey `json:"key" cbor:"1,keyasint"`
	Value     []byte      `json:"value,omitempty" cbor:"2,keyasint,omitempty"`
	Timestamp int64       `json:"timestamp" cbor:"3,keyasint"`
	NodeID    string      `json:"nodeId" cbor:"4,keyasint"`
	Deleted   bool        `json:"deleted,omitempty" cbor:"5,keyasint,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt" cbor:"6,keyasint"`
}

// NewerThan reports whether r should win a merge against other.
// Equal timestamps fall back to comparing node IDs so that every replica
// picks the same winner.
func (r Register) NewerThan(other Register) bool {
	if r.Timestamp != other.Timestamp {
		return r.Timestamp > other.Timestamp
	}
	return r.NodeID > other.NodeID
}

// DocumentDiff is the unit of exchange between replicas: the registers that
// changed plus the sender's Lamport clock at the time of the change.
type DocumentDiff struct {
	Registers []Register `json:"registers" cbor:"1,keyasint"`
	Clock     int64      `json:"clock" cbor:"2,keyasint"`
	NodeID    string     `json:"nodeId" cbor:"3,keyasint"`
}

// SyncPullResponse is returned by the sync endpoint when the client asks for
// changes it has not yet seen.
type SyncPullResponse struct {
	Diffs []DocumentDiff `json:"diffs"`
	Clock int64          `json:"clock"`
}
