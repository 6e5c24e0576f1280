package matchsync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/riot"
)

const testPuuid = "puuid-worker-test"

// memoryStore keeps inserted match ids per user and can fail on demand.
type memoryStore struct {
	rows map[string]bool
	fail map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[string]bool{}, fail: map[string]bool{}}
}

func (m *memoryStore) InsertIfAbsent(userID uuid.UUID, match *riot.Match) (bool, error) {
	key := userID.String() + "/" + match.MatchID
	if m.fail[match.MatchID] {
		return false, errors.New("insert failed")
	}
	if m.rows[key] {
		return false, nil
	}
	m.rows[key] = true
	return true, nil
}

// stubClient serves a fixed set of match payloads for one player.
type stubClient struct {
	ids       []string
	payloads  map[string]*riot.MatchPayload
	failFetch map[string]bool
}

func newStubClient(matchCount int) *stubClient {
	c := &stubClient{
		payloads:  map[string]*riot.MatchPayload{},
		failFetch: map[string]bool{},
	}
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	for i := 0; i < matchCount; i++ {
		id := fmt.Sprintf("match-%d", i)
		c.ids = append(c.ids, id)
		c.payloads[id] = &riot.MatchPayload{
			MatchInfo: riot.MatchInfo{
				MatchID:          id,
				MapID:            "Ascent",
				GameStartMillis:  base.Add(time.Duration(i) * 2 * time.Hour).UnixMilli(),
				GameLengthMillis: 35 * 60 * 1000,
				QueueID:          "competitive",
			},
			Players: []riot.Player{{
				Puuid:       testPuuid,
				TeamID:      "Blue",
				CharacterID: "Jett",
				Stats: riot.PlayerStats{
					Score: 250, Kills: 18, Deaths: 12, Assists: 5,
					TotalDamage: 3200, Headshots: 10, Bodyshots: 28, Legshots: 4,
				},
			}},
			Teams:        []riot.TeamResult{{TeamID: "Blue", Won: true}},
			RoundResults: make([]riot.RoundResult, 22),
		}
	}
	return c
}

func (c *stubClient) AccountByRiotID(context.Context, string, string) (*riot.Account, error) {
	return nil, riot.ErrNotFound
}

func (c *stubClient) MatchIDs(_ context.Context, _ string, _, count int) ([]string, error) {
	if count > len(c.ids) {
		count = len(c.ids)
	}
	return c.ids[:count], nil
}

func (c *stubClient) MatchDetails(_ context.Context, matchID string) (*riot.MatchPayload, error) {
	if c.failFetch[matchID] {
		return nil, errors.New("upstream unavailable")
	}
	payload, ok := c.payloads[matchID]
	if !ok {
		return nil, riot.ErrNotFound
	}
	return payload, nil
}

func TestPullMatchesIdempotent(t *testing.T) {
	client := newStubClient(5)
	store := newMemoryStore()
	w := NewWorker(nil, client, store, time.Minute, 4)
	userID := uuid.New()

	synced, skipped, failed, err := w.pullMatches(context.Background(), userID, testPuuid, 5)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if synced != 5 || skipped != 0 || failed != 0 {
		t.Fatalf("first run: got synced=%d skipped=%d failed=%d, want 5/0/0", synced, skipped, failed)
	}
	if len(store.rows) != 5 {
		t.Fatalf("expected 5 stored rows, got %d", len(store.rows))
	}

	synced, skipped, failed, err = w.pullMatches(context.Background(), userID, testPuuid, 5)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if synced != 0 || skipped != 5 || failed != 0 {
		t.Errorf("second run: got synced=%d skipped=%d failed=%d, want 0/5/0", synced, skipped, failed)
	}
	if len(store.rows) != 5 {
		t.Errorf("second run created rows: got %d, want 5", len(store.rows))
	}
}

func TestPullMatchesCountsFailures(t *testing.T) {
	client := newStubClient(4)
	client.failFetch["match-1"] = true
	store := newMemoryStore()
	store.fail["match-2"] = true
	w := NewWorker(nil, client, store, time.Minute, 4)

	synced, skipped, failed, err := w.pullMatches(context.Background(), uuid.New(), testPuuid, 4)
	if err != nil {
		t.Fatalf("per-match failures must not abort the run: %v", err)
	}
	if synced != 2 || skipped != 0 || failed != 2 {
		t.Errorf("got synced=%d skipped=%d failed=%d, want 2/0/2", synced, skipped, failed)
	}
	if len(store.rows) != 2 {
		t.Errorf("expected 2 stored rows, got %d", len(store.rows))
	}
}

func TestPullMatchesSkipsOtherPlayers(t *testing.T) {
	client := newStubClient(3)
	store := newMemoryStore()
	w := NewWorker(nil, client, store, time.Minute, 4)

	synced, skipped, failed, err := w.pullMatches(context.Background(), uuid.New(), "someone-else", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synced != 0 || skipped != 0 || failed != 3 {
		t.Errorf("got synced=%d skipped=%d failed=%d, want 0/0/3", synced, skipped, failed)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("inside the window", func(t *testing.T) {
		last := now.Add(-90 * time.Second)
		retry, active := retryAfterSeconds(last, now, 5*time.Minute)
		if !active {
			t.Fatal("expected cooldown to be active")
		}
		if retry != 211 {
			t.Errorf("got retryAfter %d, want 211", retry)
		}
	})

	t.Run("window elapsed", func(t *testing.T) {
		last := now.Add(-5 * time.Minute)
		if retry, active := retryAfterSeconds(last, now, 5*time.Minute); active || retry != 0 {
			t.Errorf("got retry=%d active=%v, want 0 false", retry, active)
		}
	})
}

func TestStopWithoutStart(t *testing.T) {
	w := NewWorker(nil, newStubClient(0), newMemoryStore(), time.Minute, 4)
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked when Start was never called")
	}
}
