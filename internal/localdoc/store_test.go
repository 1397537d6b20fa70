package localdoc

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ben-ryder/headbase/internal/credstore"
	"github.com/ben-ryder/headbase/internal/crypto"
	"github.com/ben-ryder/headbase/internal/store"
	"github.com/ben-ryder/headbase/models"
)

// memRepo is an in-memory DocumentRepository for tests.
type memRepo struct {
	mu        sync.Mutex
	registers map[models.RegisterKey]models.Register
	queue     []store.QueuedDiff
	nextID    int64
	meta      map[string]string
}

func newMemRepo() *memRepo {
	return &memRepo{
		registers: make(map[models.RegisterKey]models.Register),
		meta:      make(map[string]string),
	}
}

func (m *memRepo) UpsertRegisters(_ context.Context, registers ...models.Register) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range registers {
		m.registers[r.Key] = r
	}
	return nil
}

func (m *memRepo) AllRegisters(_ context.Context) ([]models.Register, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Register, 0, len(m.registers))
	for _, r := range m.registers {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) EnqueueDiff(_ context.Context, payload []byte) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.queue = append(m.queue, store.QueuedDiff{ID: m.nextID, Payload: payload})
	return m.nextID, nil
}

func (m *memRepo) PendingDiffs(_ context.Context) ([]store.QueuedDiff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.QueuedDiff, len(m.queue))
	copy(out, m.queue)
	return out, nil
}

func (m *memRepo) RemoveDiffs(_ context.Context, ids ...int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	keep := m.queue[:0]
	for _, q := range m.queue {
		removed := false
		for _, id := range ids {
			if q.ID == id {
				removed = true
				break
			}
		}
		if !removed {
			keep = append(keep, q)
		}
	}
	m.queue = keep
	return nil
}

func (m *memRepo) LoadMeta(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.meta[key]
	if !ok {
		return "", store.ErrMetaNotFound
	}
	return value, nil
}

func (m *memRepo) SaveMeta(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[key] = value
	return nil
}

type testDoc struct {
	store *Store
	repo  *memRepo
}

// newTestDoc builds a document store over an in-memory repository with the
// given DEK already in the credential store.
func newTestDoc(t *testing.T, dek []byte) *testDoc {
	t.Helper()
	ctx := context.Background()

	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.SaveDEK(ctx, dek))

	repo := newMemRepo()
	doc, err := Open(ctx, repo, nil, creds, crypto.NewEnvelope(), nil)
	require.NoError(t, err)

	return &testDoc{store: doc, repo: repo}
}

func testDEK(t *testing.T) []byte {
	t.Helper()
	dek, err := crypto.NewEnvelope().GenerateKey()
	require.NoError(t, err)
	return dek
}

// drainDiffs decodes and removes every queued diff, simulating a successful
// push, and returns them for delivery to another replica.
func (d *testDoc) drainDiffs(t *testing.T) []models.DocumentDiff {
	t.Helper()
	ctx := context.Background()

	pending, err := d.repo.PendingDiffs(ctx)
	require.NoError(t, err)

	diffs := make([]models.DocumentDiff, 0, len(pending))
	for _, q := range pending {
		diff, err := decodeDiff(q.Payload)
		require.NoError(t, err)
		diffs = append(diffs, diff)
		require.NoError(t, d.repo.RemoveDiffs(ctx, q.ID))
	}
	return diffs
}

func TestApplyChange_PersistsQueuesNotifies(t *testing.T) {
	ctx := context.Background()
	doc := newTestDoc(t, testDEK(t))

	var notified []Snapshot
	doc.store.AddListener(func(s Snapshot) { notified = append(notified, s) })

	err := doc.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "first"})
	})
	require.NoError(t, err)

	// Persisted.
	persisted, err := doc.repo.AllRegisters(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.NotContains(t, string(persisted[0].Value), "first", "register values must be encrypted at rest")

	// Queued.
	pending, err := doc.repo.PendingDiffs(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// Notified.
	require.Len(t, notified, 1)
	assert.Equal(t, int64(1), notified[0].Version)
	assert.Equal(t, []string{"n-1"}, notified[0].Keys(models.CollectionNotes))

	// Readable.
	var content models.NoteContent
	require.NoError(t, doc.store.Get(ctx, models.CollectionNotes, "n-1", &content))
	assert.Equal(t, "first", content.Title)
}

func TestApplyChange_EmptyMutatorIsNoop(t *testing.T) {
	ctx := context.Background()
	doc := newTestDoc(t, testDEK(t))

	calls := 0
	doc.store.AddListener(func(Snapshot) { calls++ })

	require.NoError(t, doc.store.ApplyChange(ctx, func(d *Draft) {}))

	assert.Zero(t, calls)
	pending, err := doc.repo.PendingDiffs(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApplyChange_NoEncryptionKey(t *testing.T) {
	ctx := context.Background()

	repo := newMemRepo()
	doc, err := Open(ctx, repo, nil, credstore.NewMemoryStore(), crypto.NewEnvelope(), nil)
	require.NoError(t, err)

	err = doc.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "x"})
	})
	require.ErrorIs(t, err, ErrNoEncryptionKey)
}

func TestGet_MissingAndDeleted(t *testing.T) {
	ctx := context.Background()
	doc := newTestDoc(t, testDEK(t))

	var content models.NoteContent
	require.ErrorIs(t, doc.store.Get(ctx, models.CollectionNotes, "nope", &content), ErrEntityNotFound)

	require.NoError(t, doc.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "soon gone"})
	}))
	require.NoError(t, doc.store.ApplyChange(ctx, func(d *Draft) {
		d.Delete(models.CollectionNotes, "n-1")
	}))

	require.ErrorIs(t, doc.store.Get(ctx, models.CollectionNotes, "n-1", &content), ErrEntityNotFound)
}

func TestMerge_ConvergesRegardlessOfOrder(t *testing.T) {
	ctx := context.Background()
	dek := testDEK(t)
	docA := newTestDoc(t, dek)
	docB := newTestDoc(t, dek)

	require.NoError(t, docA.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "from A"})
	}))
	require.NoError(t, docB.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionTags, "t-1", models.TagContent{Name: "from B"})
	}))

	diffsA := docA.drainDiffs(t)
	diffsB := docB.drainDiffs(t)

	// A receives B's diffs, B receives A's, in opposite orders.
	for _, diff := range diffsB {
		require.NoError(t, docA.store.Merge(ctx, diff))
	}
	for i := len(diffsA) - 1; i >= 0; i-- {
		require.NoError(t, docB.store.Merge(ctx, diffsA[i]))
	}

	snapA := docA.store.Snapshot()
	snapB := docB.store.Snapshot()
	assert.Equal(t, snapA.Registers, snapB.Registers, "replicas must converge")
	assert.Equal(t, snapA.Clock, snapB.Clock)
}

func TestMerge_Idempotent(t *testing.T) {
	ctx := context.Background()
	dek := testDEK(t)
	docA := newTestDoc(t, dek)
	docB := newTestDoc(t, dek)

	require.NoError(t, docA.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "once"})
	}))
	diff := docA.drainDiffs(t)[0]

	require.NoError(t, docB.store.Merge(ctx, diff))
	after := docB.store.Snapshot()

	require.NoError(t, docB.store.Merge(ctx, diff))
	again := docB.store.Snapshot()

	assert.Equal(t, after.Registers, again.Registers)
	assert.Equal(t, after.Version, again.Version, "re-merging an absorbed diff must not notify again")
}

func TestMerge_ConcurrentEditsToSameEntity(t *testing.T) {
	ctx := context.Background()
	dek := testDEK(t)
	docA := newTestDoc(t, dek)
	docB := newTestDoc(t, dek)

	// Same entity edited on both replicas while offline.
	require.NoError(t, docA.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "A's version"})
	}))
	require.NoError(t, docB.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "B's version"})
	}))

	diffA := docA.drainDiffs(t)[0]
	diffB := docB.drainDiffs(t)[0]

	require.NoError(t, docA.store.Merge(ctx, diffB))
	require.NoError(t, docB.store.Merge(ctx, diffA))

	// Same timestamp on both edits, so the node-id tiebreak decides; both
	// replicas must pick the same winner.
	var contentA, contentB models.NoteContent
	require.NoError(t, docA.store.Get(ctx, models.CollectionNotes, "n-1", &contentA))
	require.NoError(t, docB.store.Get(ctx, models.CollectionNotes, "n-1", &contentB))
	assert.Equal(t, contentA.Title, contentB.Title)
}

func TestMerge_TombstonePropagates(t *testing.T) {
	ctx := context.Background()
	dek := testDEK(t)
	docA := newTestDoc(t, dek)
	docB := newTestDoc(t, dek)

	require.NoError(t, docA.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "to delete"})
	}))
	for _, diff := range docA.drainDiffs(t) {
		require.NoError(t, docB.store.Merge(ctx, diff))
	}

	require.NoError(t, docA.store.ApplyChange(ctx, func(d *Draft) {
		d.Delete(models.CollectionNotes, "n-1")
	}))
	for _, diff := range docA.drainDiffs(t) {
		require.NoError(t, docB.store.Merge(ctx, diff))
	}

	var content models.NoteContent
	require.ErrorIs(t, docB.store.Get(ctx, models.CollectionNotes, "n-1", &content), ErrEntityNotFound)
}

func TestListeners_MonotonicVersions(t *testing.T) {
	ctx := context.Background()
	doc := newTestDoc(t, testDEK(t))

	var versions []int64
	doc.store.AddListener(func(s Snapshot) { versions = append(versions, s.Version) })

	for i := 0; i < 3; i++ {
		entity := string(rune('a' + i))
		require.NoError(t, doc.store.ApplyChange(ctx, func(d *Draft) {
			d.Put(models.CollectionNotes, entity, models.NoteContent{Title: entity})
		}))
	}

	require.Len(t, versions, 3)
	for i := 1; i < len(versions); i++ {
		assert.Greater(t, versions[i], versions[i-1])
	}
}

func TestRemoveListener_Idempotent(t *testing.T) {
	ctx := context.Background()
	doc := newTestDoc(t, testDEK(t))

	calls := 0
	id := doc.store.AddListener(func(Snapshot) { calls++ })
	doc.store.RemoveListener(id)
	doc.store.RemoveListener(id)
	doc.store.RemoveListener(999)

	require.NoError(t, doc.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionNotes, "n-1", models.NoteContent{Title: "x"})
	}))
	assert.Zero(t, calls)
}

func TestOpen_LoadsPersistedStateAndReplaysQueue(t *testing.T) {
	ctx := context.Background()
	dek := testDEK(t)
	doc := newTestDoc(t, dek)

	require.NoError(t, doc.store.ApplyChange(ctx, func(d *Draft) {
		d.Put(models.CollectionVaults, "v-1", models.VaultContent{Name: "personal"})
	}))
	nodeID := doc.store.NodeID()

	// Reopen over the same repository, queue still unsent.
	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.SaveDEK(ctx, dek))
	reopened, err := Open(ctx, doc.repo, nil, creds, crypto.NewEnvelope(), nil)
	require.NoError(t, err)

	assert.Equal(t, nodeID, reopened.NodeID(), "node identity must survive reopen")

	var content models.VaultContent
	require.NoError(t, reopened.Get(ctx, models.CollectionVaults, "v-1", &content))
	assert.Equal(t, "personal", content.Name)

	snap := reopened.Snapshot()
	assert.Equal(t, int64(1), snap.Clock)
}
