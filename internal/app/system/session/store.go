// Package session owns the Session Snapshot: who is logged in and what
// their residency profile looks like right now.
//
// The Store is the only writer of snapshots. Everything else (the route
// policy, the navigation menu, page handlers) reads an immutable
// Snapshot value and calls the Store's operations to change it:
// Fetch, Login, Logout, ForceRefresh. Upstream failures are resolved
// inside the Store; callers always receive a well-defined snapshot and
// never need a try/catch around these operations.
//
// Snapshots are cached per credential with a freshness window (default
// 8s, matching the re-check cadence the UI used). Concurrent refreshes
// of the same session collapse into a single upstream call via
// singleflight, so overlapping re-evaluations converge on "latest
// result wins" instead of piling up.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultFreshness is how long a snapshot is served without re-checking
// the upstream.
const DefaultFreshness = 8 * time.Second

// DefaultIdleEviction is how long an untouched snapshot stays cached.
const DefaultIdleEviction = 30 * time.Minute

// Snapshot is the session state at an instant: the authenticated user
// (nil when signed out) and whether a first fetch is still outstanding.
// Loading=true is the only state in which no access decision may be
// rendered.
type Snapshot struct {
	User    *models.User
	Loading bool
}

// Subscriber is notified after a refresh changes a session's snapshot.
// The key identifies the session (credential key); the snapshot is the
// new state. Replaces the ad-hoc polling and "profile updated" events
// the UI relied on.
type Subscriber func(key string, snap Snapshot)

type entry struct {
	snap      Snapshot
	fetchedAt time.Time
	lastSeen  time.Time
}

// Store caches and refreshes session snapshots.
type Store struct {
	client    *civic.Client
	log       *zap.Logger
	freshness time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	subMu sync.Mutex
	subs  []Subscriber

	stopOnce sync.Once
	stop     chan struct{}
}

// New constructs a Store around the civic client. freshness <= 0 uses
// DefaultFreshness.
func New(client *civic.Client, freshness time.Duration, logger *zap.Logger) *Store {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &Store{
		client:    client,
		log:       logger,
		freshness: freshness,
		entries:   make(map[string]*entry),
		stop:      make(chan struct{}),
	}
}

// Subscribe registers a callback invoked after any refresh that changes
// a snapshot. Callbacks run synchronously on the refreshing goroutine
// and must be quick.
func (s *Store) Subscribe(fn Subscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns the current snapshot for creds, refreshing from the
// upstream when the cached copy is stale or absent. It never returns an
// error: auth failures and outages resolve to a signed-out snapshot.
func (s *Store) Snapshot(ctx context.Context, creds civic.Credentials) Snapshot {
	if creds.IsZero() {
		return Snapshot{}
	}

	key := credKey(creds)

	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		e.lastSeen = time.Now()
		if time.Since(e.fetchedAt) < s.freshness {
			snap := e.snap
			s.mu.Unlock()
			return snap
		}
	}
	s.mu.Unlock()

	return s.refresh(ctx, key, creds)
}

// Cached returns the snapshot without touching the upstream. When
// nothing is cached yet it reports Loading=true, which callers must
// render as a neutral state (or fail open, for menu rendering).
func (s *Store) Cached(creds civic.Credentials) Snapshot {
	if creds.IsZero() {
		return Snapshot{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[credKey(creds)]; ok {
		e.lastSeen = time.Now()
		return e.snap
	}
	return Snapshot{Loading: true}
}

// ForceRefresh bypasses the freshness window. Used after any mutation
// that changes profile or verification state (profile edit, residency
// upload, admin review) so dependent pages see the new state
// immediately.
func (s *Store) ForceRefresh(ctx context.Context, creds civic.Credentials) Snapshot {
	if creds.IsZero() {
		return Snapshot{}
	}
	return s.refresh(ctx, credKey(creds), creds)
}

// Login runs the full sign-in flow: CSRF-primed credential post, then a
// snapshot fetch to hydrate the session. The fetch happens regardless
// of whether a bearer token came back (cookie sessions carry no token).
// The returned error is non-nil only when the credential post itself
// failed; fetch problems resolve into the snapshot as usual.
func (s *Store) Login(ctx context.Context, email, password string) (civic.Credentials, Snapshot, error) {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return civic.Credentials{}, Snapshot{}, err
	}
	snap := s.ForceRefresh(ctx, res.Credentials)
	return res.Credentials, snap, nil
}

// Logout invalidates the upstream session on a best-effort basis and
// always drops the local snapshot. It never fails: a dead upstream must
// not keep anyone signed in.
func (s *Store) Logout(ctx context.Context, creds civic.Credentials) {
	if creds.IsZero() {
		return
	}
	if err := s.client.Logout(ctx, creds); err != nil {
		s.log.Debug("upstream logout failed (ignored)", zap.Error(err))
	}
	s.Invalidate(creds)
}

// Invalidate drops the cached snapshot for creds.
func (s *Store) Invalidate(creds civic.Credentials) {
	s.mu.Lock()
	delete(s.entries, credKey(creds))
	s.mu.Unlock()
}

/*─────────────────────────────────────────────────────────────────────────────*
| Refresh                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Store) refresh(ctx context.Context, key string, creds civic.Credentials) Snapshot {
	v, _, _ := s.group.Do(key, func() (any, error) {
		snap := s.fetch(ctx, creds)

		s.mu.Lock()
		prev, had := s.entries[key]
		changed := !had || !snapshotsEqual(prev.snap, snap)
		s.entries[key] = &entry{snap: snap, fetchedAt: time.Now(), lastSeen: time.Now()}
		s.mu.Unlock()

		if changed {
			s.notify(key, snap)
		}
		return snap, nil
	})
	return v.(Snapshot)
}

// fetch resolves every upstream outcome into a snapshot:
//   - success: the normalized user
//   - 404: authenticated but no profile yet; fall back to the bare
//     identity, and if that also fails, signed out
//   - 401: signed out (credential no longer valid)
//   - anything else: signed out, logged, never propagated
func (s *Store) fetch(ctx context.Context, creds civic.Credentials) Snapshot {
	u, err := s.client.FetchUser(ctx, creds)
	switch {
	case err == nil:
		return Snapshot{User: u}
	case errors.Is(err, civic.ErrNotFound):
		ident, err2 := s.client.FetchIdentity(ctx, creds)
		if err2 != nil {
			s.log.Info("identity fallback failed; clearing session",
				zap.Error(err2))
			return Snapshot{}
		}
		return Snapshot{User: ident}
	case errors.Is(err, civic.ErrUnauthenticated):
		return Snapshot{}
	default:
		s.log.Error("profile fetch failed; clearing session", zap.Error(err))
		return Snapshot{}
	}
}

func (s *Store) notify(key string, snap Snapshot) {
	s.subMu.Lock()
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(key, snap)
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Janitor                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// StartJanitor evicts snapshots that have not been read for maxIdle.
// Call Stop during shutdown.
func (s *Store) StartJanitor(interval, maxIdle time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxIdle <= 0 {
		maxIdle = DefaultIdleEviction
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-t.C:
				s.evictIdle(maxIdle)
			}
		}
	}()
}

// Stop halts the janitor. Safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) evictIdle(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	for key, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func credKey(creds civic.Credentials) string {
	if creds.Token != "" {
		return "t:" + creds.Token
	}
	return "c:" + creds.Cookie
}

// snapshotsEqual compares the fields that drive access decisions. Two
// fetches of an unchanged backend state compare equal even if the
// upstream reordered incidental fields.
func snapshotsEqual(a, b Snapshot) bool {
	if a.Loading != b.Loading {
		return false
	}
	if (a.User == nil) != (b.User == nil) {
		return false
	}
	if a.User == nil {
		return true
	}
	if a.User.ID != b.User.ID || a.User.Role != b.User.Role {
		return false
	}
	ap, bp := a.User.Profile, b.User.Profile
	if (ap == nil) != (bp == nil) {
		return false
	}
	if ap == nil {
		return true
	}
	return ap.Status() == bp.Status() &&
		ap.VerificationImage == bp.VerificationImage &&
		ap.AllFieldsPresent() == bp.AllFieldsPresent() &&
		string(ap.ProfileCompleted) == string(bp.ProfileCompleted)
}
