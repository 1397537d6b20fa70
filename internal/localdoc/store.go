// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package localdoc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ben-ryder/headbase/internal/adapter"
	"github.com/ben-ryder/headbase/internal/credstore"
	"github.com/ben-ryder/headbase/internal/crypto"
	"github.com/ben-ryder/headbase/internal/logger"
	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/internal/store"
	"github.com/ben-ryder/headbase/models"
)

// Caller is the slice of the session client the document store uses for
// remote diff exchange. *session.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, req session.Request) (*adapter.Response, error)
	CallJSON(ctx context.Context, req session.Request, target any) error
}

// Listener receives a snapshot after every accepted change or merge.
// Listeners are invoked synchronously while the store is locked and must not
// call back into mutating store methods.
type Listener func(Snapshot)

// Store owns the local document. Mutations are fully serialized: a change is
// persisted, queued and delivered to listeners before the next one is
// admitted.
type Store struct {
	repo     store.DocumentRepository
	remote   Caller
	creds    credstore.Store
	envelope crypto.Envelope
	log      *logger.Logger

	mu        sync.Mutex
	registers map[models.RegisterKey]models.Register
	clock     int64
	nodeID    string
	version   int64
	dek       []byte

	listenerMu   sync.Mutex
	listeners    map[int64]Listener
	nextListener int64
}

// Open loads the persisted document, assigning a fresh node id on first run,
// and replays any queued-but-unsent diffs so a crash between persist and
// push never loses a change.
func Open(ctx context.Context, repo store.DocumentRepository, remote Caller, creds credstore.Store, envelope crypto.Envelope, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	s := &Store{
		repo:      repo,
		remote:    remote,
		creds:     creds,
		envelope:  envelope,
		log:       log,
		registers: make(map[models.RegisterKey]models.Register),
		listeners: make(map[int64]Listener),
	}

	nodeID, err := repo.LoadMeta(ctx, store.MetaNodeID)
	if errors.Is(err, store.ErrMetaNotFound) {
		nodeID = uuid.NewString()
		if err = repo.SaveMeta(ctx, store.MetaNodeID, nodeID); err != nil {
			return nil, fmt.Errorf("save node id: %w", err)
		}
		log.Info().Str("node_id", nodeID).Msg("initialized new local document")
	} else if err != nil {
		return nil, fmt.Errorf("load node id: %w", err)
	}
	s.nodeID = nodeID

	clock, err := loadClock(ctx, repo, store.MetaClock)
	if err != nil {
		return nil, err
	}
	s.clock = clock

	registers, err := repo.AllRegisters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registers: %w", err)
	}
	for _, r := range registers {
		s.registers[r.Key] = r
	}

	if err = s.replayQueue(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// replayQueue merges queued-but-unsent diffs back into the in-memory state.
// Merge is idempotent, so replaying diffs whose registers already landed is
// harmless.
func (s *Store) replayQueue(ctx context.Context) error {
	pending, err := s.repo.PendingDiffs(ctx)
	if err != nil {
		return fmt.Errorf("load queued diffs: %w", err)
	}

	for _, q := range pending {
		diff, err := decodeDiff(q.Payload)
		if err != nil {
			s.log.Warn().Err(err).Int64("queue_id", q.ID).Msg("dropping undecodable queued diff")
			if err = s.repo.RemoveDiffs(ctx, q.ID); err != nil {
				return err
			}
			continue
		}

		for _, r := range diff.Registers {
			cur, ok := s.registers[r.Key]
			if !ok || r.NewerThan(cur) {
				s.registers[r.Key] = r
			}
		}
		if diff.Clock > s.clock {
			s.clock = diff.Clock
		}
	}

	return nil
}

func loadClock(ctx context.Context, repo store.DocumentRepository, key string) (int64, error) {
	raw, err := repo.LoadMeta(ctx, key)
	if errors.Is(err, store.ErrMetaNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", key, err)
	}

	clock, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return clock, nil
}

// NodeID returns the replica identity of this document.
func (s *Store) NodeID() string {
	return s.nodeID
}

// resolveDEKLocked returns the at-rest encryption key, loading it from the
// credential store on a memory miss. Callers hold s.mu.
func (s *Store) resolveDEKLocked(ctx context.Context) ([]byte, error) {
	if len(s.dek) > 0 {
		return s.dek, nil
	}

	dek, err := s.creds.LoadDEK(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return nil, ErrNoEncryptionKey
		}
		return nil, err
	}
	s.dek = dek
	return dek, nil
}

// ApplyChange runs mutate against a draft and commits the result: the
// changed registers are persisted, the diff queued for the sync endpoint,
// and every listener notified, all before ApplyChange returns. A mutator
// that changes nothing is a no-op.
func (s *Store) ApplyChange(ctx context.Context, mutate func(d *Draft)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dek, err := s.resolveDEKLocked(ctx)
	if err != nil {
		return err
	}

	draft := &Draft{
		dek:      dek,
		envelope: s.envelope,
		changed:  make(map[models.RegisterKey]models.Register),
	}
	mutate(draft)
	if draft.err != nil {
		return fmt.Errorf("apply change: %w", draft.err)
	}
	if len(draft.changed) == 0 {
		return nil
	}

	newClock := s.clock + 1
	stamped := draft.stamp(newClock, s.nodeID, time.Now().UTC())

	if err = s.repo.UpsertRegisters(ctx, stamped...); err != nil {
		return fmt.Errorf("persist change: %w", err)
	}
	if err = s.repo.SaveMeta(ctx, store.MetaClock, strconv.FormatInt(newClock, 10)); err != nil {
		return fmt.Errorf("persist clock: %w", err)
	}

	diff := models.DocumentDiff{Registers: stamped, Clock: newClock, NodeID: s.nodeID}
	payload, err := encodeDiff(diff)
	if err != nil {
		return err
	}
	if _, err = s.repo.EnqueueDiff(ctx, payload); err != nil {
		return fmt.Errorf("queue diff: %w", err)
	}

	for _, r := range stamped {
		s.registers[r.Key] = r
	}
	s.clock = newClock
	s.version++
	s.notifyLocked()

	return nil
}

// Merge applies a remote diff. Only registers that win the last-writer-wins
// comparison are taken, so merging the same diff twice, or two diffs in
// either order, converges to the same state.
func (s *Store) Merge(ctx context.Context, diff models.DocumentDiff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	winners := make([]models.Register, 0, len(diff.Registers))
	for _, incoming := range diff.Registers {
		cur, ok := s.registers[incoming.Key]
		if !ok || incoming.NewerThan(cur) {
			winners = append(winners, incoming)
		}
	}

	newClock := s.clock
	if diff.Clock > newClock {
		newClock = diff.Clock
	}

	if len(winners) == 0 {
		if newClock != s.clock {
			if err := s.repo.SaveMeta(ctx, store.MetaClock, strconv.FormatInt(newClock, 10)); err != nil {
				return fmt.Errorf("persist clock: %w", err)
			}
			s.clock = newClock
		}
		return nil
	}

	if err := s.repo.UpsertRegisters(ctx, winners...); err != nil {
		return fmt.Errorf("persist merge: %w", err)
	}
	if err := s.repo.SaveMeta(ctx, store.MetaClock, strconv.FormatInt(newClock, 10)); err != nil {
		return fmt.Errorf("persist clock: %w", err)
	}

	for _, r := range winners {
		s.registers[r.Key] = r
	}
	s.clock = newClock
	s.version++
	s.notifyLocked()

	return nil
}

// Get decrypts the content of one entity into target.
func (s *Store) Get(ctx context.Context, collection models.Collection, entityID string, target any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.registers[models.RegisterKey{Collection: collection, EntityID: entityID}]
	if !ok || r.Deleted {
		return ErrEntityNotFound
	}

	dek, err := s.resolveDEKLocked(ctx)
	if err != nil {
		return err
	}
	return s.envelope.DecryptRecord(dek, models.CipherText(r.Value), target)
}

// Snapshot returns a copy of the current document state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	registers := make(map[models.RegisterKey]models.Register, len(s.registers))
	for key, r := range s.registers {
		registers[key] = r
	}
	return Snapshot{Version: s.version, Clock: s.clock, Registers: registers}
}

// AddListener registers fn and returns a handle for removal. Registering the
// same function twice yields two independent subscriptions.
func (s *Store) AddListener(fn Listener) int64 {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	s.nextListener++
	id := s.nextListener
	s.listeners[id] = fn
	return id
}

// RemoveListener drops the subscription with the given handle. Removing an
// unknown or already removed handle is a no-op.
func (s *Store) RemoveListener(id int64) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	delete(s.listeners, id)
}

// notifyLocked delivers the current snapshot to every listener. s.mu is held
// by the caller, so each listener observes strictly increasing versions.
func (s *Store) notifyLocked() {
	snapshot := s.snapshotLocked()

	s.listenerMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
