// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package localdoc

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/internal/store"
	"github.com/ben-ryder/headbase/models"
)

const syncPath = "/v1/sync/diffs"

// Push sends every queued diff to the sync endpoint in insertion order. A
// diff is removed from the queue only after the server accepted it; on the
// first failure the remaining diffs stay queued for the next attempt.
func (s *Store) Push(ctx context.Context) error {
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

		_, err = s.remote.Call(ctx, session.Request{
			Method: "POST",
			Path:   syncPath,
			Body:   diff,
		})
		if err != nil {
			return fmt.Errorf("push diff: %w", err)
		}

		if err = s.repo.RemoveDiffs(ctx, q.ID); err != nil {
			return err
		}
	}

	return nil
}

// Pull fetches the diffs the server has accumulated since the last pull and
// merges them. Diffs this replica produced are skipped by node id.
func (s *Store) Pull(ctx context.Context) error {
	since, err := loadClock(ctx, s.repo, store.MetaLastServerClock)
	if err != nil {
		return err
	}

	var resp models.SyncPullResponse
	err = s.remote.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   syncPath,
		Query:  map[string]string{"since": strconv.FormatInt(since, 10)},
	}, &resp)
	if err != nil {
		return fmt.Errorf("pull diffs: %w", err)
	}

	for _, diff := range resp.Diffs {
		if diff.NodeID == s.nodeID {
			continue
		}
		if err = s.Merge(ctx, diff); err != nil {
			return err
		}
	}

	if err = s.repo.SaveMeta(ctx, store.MetaLastServerClock, strconv.FormatInt(resp.Clock, 10)); err != nil {
		return fmt.Errorf("persist server clock: %w", err)
	}

	return nil
}

// Sync pushes queued local changes, then pulls and merges remote ones.
func (s *Store) Sync(ctx context.Context) error {
	if err := s.Push(ctx); err != nil {
		return err
	}
	return s.Pull(ctx)
}
