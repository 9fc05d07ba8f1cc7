// Package tracker is the composition root of the habit tracker: an
// explicitly constructed, dependency-injected store object that wires
// the definition catalog, the completion store, local persistence, and
// the remote log client together.
//
// # Data flow
//
// User action → in-memory mutation (optimistic, synchronous) → local
// snapshot write (synchronous) → fire-and-forget remote append.
// Independently, once per session: reconciliation fetches the full
// remote log, replays it, and replaces the completion map wholesale.
//
// # Concurrency
//
// All state is mutated under a single mutex (single-writer
// discipline). The only suspension points are the remote calls: the
// reconciliation fetch, which runs with the lock released, and each
// append goroutine. Appends may complete out of order; that is
// harmless because rows are ordered by server arrival, not response
// arrival. A ReplaceAll landing after concurrent local toggles
// clobbers them — accepted, remote is authoritative once fetched.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/polymath/internal/completion"
	"github.com/roach88/polymath/internal/habit"
	"github.com/roach88/polymath/internal/reconcile"
	"github.com/roach88/polymath/internal/remotelog"
	"github.com/roach88/polymath/internal/storage"
)

// appendTimeout bounds a single fire-and-forget append. Generous: the
// goroutine holds no locks and nothing waits on it.
const appendTimeout = 30 * time.Second

// eventBuffer sizes the sync event channel. When no one is reading,
// events are dropped rather than ever blocking a toggle.
const eventBuffer = 64

// Config holds the dependencies for New. Store is required; the rest
// default to production implementations.
type Config struct {
	Store  *storage.Store
	Remote *remotelog.Client
	IDs    habit.IDGenerator
	Clock  Clock
	Logger *slog.Logger
}

// Tracker owns all mutable tracker state for one user on one device.
type Tracker struct {
	mu          sync.Mutex
	catalog     *habit.Catalog
	completions *completion.Store
	token       string
	logID       string

	store  *storage.Store
	remote *remotelog.Client
	clock  Clock
	logger *slog.Logger
	events chan SyncEvent
}

// New constructs a tracker and performs its explicit init: loading the
// catalog and completion snapshots from local storage.
//
// Malformed snapshot content never fails construction. Catalogs fall
// back to the built-in defaults, the completion map to empty, and the
// parse failure is logged — a corrupt local cache must not brick the
// tracker, the remote log still holds the history.
func New(ctx context.Context, cfg Config) (*Tracker, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("tracker: Config.Store is required")
	}
	if cfg.IDs == nil {
		cfg.IDs = habit.NewTimestampGenerator()
	}
	if cfg.Clock == nil {
		cfg.Clock = WallClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Remote == nil {
		cfg.Remote = remotelog.NewClient(remotelog.ClientConfig{Logger: cfg.Logger})
	}

	t := &Tracker{
		store:  cfg.Store,
		remote: cfg.Remote,
		clock:  cfg.Clock,
		logger: cfg.Logger,
		events: make(chan SyncEvent, eventBuffer),
	}

	habits, err := loadSnapshot(ctx, cfg.Store, storage.KeyHabits, habit.DefaultHabits, cfg.Logger)
	if err != nil {
		return nil, err
	}
	tracks, err := loadSnapshot(ctx, cfg.Store, storage.KeyTracks, habit.DefaultTracks, cfg.Logger)
	if err != nil {
		return nil, err
	}
	completions, err := loadSnapshot(ctx, cfg.Store, storage.KeyCompletions,
		func() completion.Map { return make(completion.Map) }, cfg.Logger)
	if err != nil {
		return nil, err
	}

	t.catalog = habit.NewSeededCatalog(cfg.IDs, habits, tracks)
	t.completions = completion.NewStore(completions)

	if logID, ok, err := cfg.Store.Load(ctx, storage.KeyRemoteLogID); err != nil {
		return nil, err
	} else if ok {
		t.logID = logID
	}

	return t, nil
}

// Events exposes dispatcher outcomes. The channel is never closed;
// readers select on it for as long as they care.
func (t *Tracker) Events() <-chan SyncEvent { return t.events }

// Today returns the current local calendar date key.
func (t *Tracker) Today() string { return DateOf(t.clock.Now()) }

// SetSession installs the bearer token used for remote appends.
func (t *Tracker) SetSession(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
}

// ClearSession stops new remote operations. In-flight appends are not
// aborted.
func (t *Tracker) ClearSession() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = ""
}

// AddHabit creates a habit and snapshots the catalog.
func (t *Tracker) AddHabit(ctx context.Context, title, duration, trackID, description string) (habit.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.catalog.AddHabit(title, duration, trackID, description)
	if err := t.persistCatalog(ctx); err != nil {
		return habit.Habit{}, err
	}
	return h, nil
}

// RemoveHabit deletes a habit. Idempotent. Confirmation gating belongs
// to the calling layer; this is only the mutation.
func (t *Tracker) RemoveHabit(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.catalog.RemoveHabit(id)
	return t.persistCatalog(ctx)
}

// AddTrack creates a track and snapshots the catalog.
func (t *Tracker) AddTrack(ctx context.Context, title, color string) (habit.Track, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tr := t.catalog.AddTrack(title, color)
	if err := t.persistCatalog(ctx); err != nil {
		return habit.Track{}, err
	}
	return tr, nil
}

// RemoveTrack deletes a track and, cascading, every habit in it.
// Completion entries for the cascaded habits remain as soft orphans.
func (t *Tracker) RemoveTrack(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.catalog.RemoveTrack(id)
	return t.persistCatalog(ctx)
}

// ImportSeed merges a seed catalog (definitions carrying their own
// ids) and snapshots. Re-importing the same seed adds nothing.
func (t *Tracker) ImportSeed(ctx context.Context, tracks []habit.Track, habits []habit.Habit) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	added := t.catalog.Import(tracks, habits)
	if added == 0 {
		return 0, nil
	}
	return added, t.persistCatalog(ctx)
}

// Toggle flips the completion flag at (date, habitID) and returns the
// new value. An empty date means today.
//
// The mutation is optimistic: it applies and is visible immediately,
// before any remote confirmation. It synchronously snapshots the
// completion map, then schedules exactly one asynchronous remote
// append. Append failures are logged and published as events, never
// retried, and never roll the local value back.
func (t *Tracker) Toggle(ctx context.Context, habitID, date string) (bool, error) {
	if date == "" {
		date = t.Today()
	}

	t.mu.Lock()
	value := t.completions.Toggle(habitID, date)
	err := t.persistCompletions(ctx)
	token, logID := t.token, t.logID
	t.mu.Unlock()
	if err != nil {
		return value, err
	}

	go t.dispatchAppend(token, logID, date, habitID, value)

	return value, nil
}

// IsCompleted reports the flag at (date, habitID). Empty date means
// today.
func (t *Tracker) IsCompleted(habitID, date string) bool {
	if date == "" {
		date = t.Today()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completions.IsCompleted(habitID, date)
}

// CompletedCount counts completions at date for currently-live habits.
// Empty date means today.
func (t *Tracker) CompletedCount(date string) int {
	if date == "" {
		date = t.Today()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completions.CompletedCount(date, t.catalog.LiveHabitIDs())
}

// Progress returns (done, total) for date over live habits.
func (t *Tracker) Progress(date string) (int, int) {
	if date == "" {
		date = t.Today()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completions.CompletedCount(date, t.catalog.LiveHabitIDs()), t.catalog.Len()
}

// Habits returns the live habit definitions.
func (t *Tracker) Habits() []habit.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.Habits()
}

// Tracks returns the live track definitions.
func (t *Tracker) Tracks() []habit.Track {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.Tracks()
}

// LiveHabitIDs returns the live habit id set for aggregate filtering.
func (t *Tracker) LiveHabitIDs() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.LiveHabitIDs()
}

// Completions returns a read-only deep copy of the completion map.
func (t *Tracker) Completions() completion.Map {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completions.Snapshot()
}

// Reconcile rebuilds local completion state from the remote log.
//
// It re-runs locate-or-create (the only way the cached log id is ever
// refreshed), fetches every row, replays them last-writer-wins, and
// replaces the local map wholesale. Provider errors are hard failures
// for this attempt: the local snapshot stays in place and the session
// proceeds in degraded, local-only mode.
func (t *Tracker) Reconcile(ctx context.Context) error {
	t.mu.Lock()
	token := t.token
	t.mu.Unlock()
	if token == "" {
		return fmt.Errorf("reconcile: no session established")
	}

	logID, err := t.remote.LocateOrCreateLog(ctx, token)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	if err := t.store.Save(ctx, storage.KeyRemoteLogID, logID); err != nil {
		return fmt.Errorf("reconcile: cache log id: %w", err)
	}

	rows, err := t.remote.LoadAll(ctx, token, logID)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	replayed := reconcile.Replay(rows)

	t.mu.Lock()
	t.logID = logID
	t.completions.ReplaceAll(replayed)
	err = t.persistCompletions(ctx)
	t.mu.Unlock()
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	t.logger.Info("reconciled from remote log", "rows", len(rows), "days", len(replayed))
	return nil
}

// dispatchAppend is the sync dispatcher: one best-effort append per
// toggle, fire-and-forget. No queue, no retry, no rollback. Runs on
// its own goroutine with its own deadline so a logout or a finished
// CLI command context cannot abort it.
func (t *Tracker) dispatchAppend(token, logID, date, habitID string, value bool) {
	now := t.clock.Now()

	if token == "" {
		t.logger.Debug("sync skipped: no session", "date", date, "habit", habitID)
		t.publish(newSyncEvent(SyncSkipped, date, habitID, value, nil, now))
		return
	}

	cell := "FALSE"
	if value {
		cell = "TRUE"
	}

	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	err := t.remote.AppendRow(ctx, token, logID,
		[]string{date, habitID, cell, now.UTC().Format(time.RFC3339)})
	if err != nil {
		t.logger.Warn("remote append failed", "date", date, "habit", habitID, "error", err)
		t.publish(newSyncEvent(SyncFailed, date, habitID, value, err, now))
		return
	}
	t.publish(newSyncEvent(SyncAppended, date, habitID, value, nil, now))
}

// publish never blocks: with no reader and a full buffer the event is
// dropped, because observability must not back-pressure a toggle.
func (t *Tracker) publish(ev SyncEvent) {
	select {
	case t.events <- ev:
	default:
		t.logger.Debug("sync event dropped", "kind", ev.Kind, "habit", ev.HabitID)
	}
}

// persistCatalog snapshots both catalogs. Callers hold the lock.
func (t *Tracker) persistCatalog(ctx context.Context) error {
	if err := saveSnapshot(ctx, t.store, storage.KeyHabits, t.catalog.Habits()); err != nil {
		return err
	}
	return saveSnapshot(ctx, t.store, storage.KeyTracks, t.catalog.Tracks())
}

// persistCompletions snapshots the completion map. Callers hold the
// lock.
func (t *Tracker) persistCompletions(ctx context.Context) error {
	return saveSnapshot(ctx, t.store, storage.KeyCompletions, t.completions.Snapshot())
}

// saveSnapshot serializes a value as JSON under key.
func saveSnapshot[T any](ctx context.Context, store *storage.Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return store.Save(ctx, key, string(data))
}

// loadSnapshot reads and parses the value under key. An absent key
// returns the fallback; malformed content logs a warning and returns
// the fallback. Only storage-level failures surface as errors.
func loadSnapshot[T any](ctx context.Context, store *storage.Store, key string, fallback func() T, logger *slog.Logger) (T, error) {
	var zero T
	raw, ok, err := store.Load(ctx, key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return fallback(), nil
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Warn("malformed local snapshot, falling back to defaults", "key", key, "error", err)
		return fallback(), nil
	}
	return value, nil
}
