// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package localdoc

import (
	"time"

	"github.com/ben-ryder/headbase/models"
)

// Snapshot is the immutable view of the document handed to listeners. The
// register map is a copy; holding on to a snapshot never observes later
// changes.
type Snapshot struct {
	// Version increases by one for every accepted local change or remote
	// merge. Listeners use it to order deliveries.
	Version int64
	// Clock is the document's Lamport clock after the change.
	Clock int64
	// Registers holds every live and tombstoned register.
	Registers map[models.RegisterKey]models.Register
}

// Keys returns the non-tombstoned entity ids of one collection.
func (s Snapshot) Keys(collection models.Collection) []string {
	ids := make([]string, 0, len(s.Registers))
	for key, r := range s.Registers {
		if key.Collection == collection && !r.Deleted {
			ids = append(ids, key.EntityID)
		}
	}
	return ids
}

// Draft records the mutations of one ApplyChange invocation. Values are
// encrypted the moment they are put; plaintext never reaches the register
// map or the database.
type Draft struct {
	dek      []byte
	envelope encrypter
	changed  map[models.RegisterKey]models.Register
	err      error
}

type encrypter interface {
	EncryptRecord(dek []byte, payload any) (models.CipherText, error)
}

// Put sets the content of one entity. The content is sealed under the DEK
// immediately; a failed encryption aborts the whole change.
func (d *Draft) Put(collection models.Collection, entityID string, content any) {
	if d.err != nil {
		return
	}

	ct, err := d.envelope.EncryptRecord(d.dek, content)
	if err != nil {
		d.err = err
		return
	}

	d.changed[models.RegisterKey{Collection: collection, EntityID: entityID}] = models.Register{
		Key:   models.RegisterKey{Collection: collection, EntityID: entityID},
		Value: []byte(ct),
	}
}

// Delete tombstones one entity. Deleting an entity that never existed still
// records the tombstone so the deletion propagates to replicas that do have
// it.
func (d *Draft) Delete(collection models.Collection, entityID string) {
	if d.err != nil {
		return
	}

	d.changed[models.RegisterKey{Collection: collection, EntityID: entityID}] = models.Register{
		Key:     models.RegisterKey{Collection: collection, EntityID: entityID},
		Deleted: true,
	}
}

// stamp finalizes the drafted registers with the document's identity and the
// clock tick assigned to this change.
func (d *Draft) stamp(clock int64, nodeID string, now time.Time) []models.Register {
	stamped := make([]models.Register, 0, len(d.changed))
	for key, r := range d.changed {
		r.Key = key
		r.Timestamp = clock
		r.NodeID = nodeID
		r.UpdatedAt = now
		stamped = append(stamped, r)
	}
	return stamped
}
