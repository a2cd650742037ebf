package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"go.uber.org/zap"
)

func newStoreWith(t *testing.T, handler http.Handler, freshness time.Duration) (*Store, *int64) {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	client := civic.New(srv.URL, "", srv.Client(), zap.NewNop())
	return New(client, freshness, zap.NewNop()), &hits
}

func profileHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	})
}

const approvedResident = `{"user":{"id":"1","role":"residents","profile":{"residents_id":"R-1","first_name":"Ana","last_name":"Reyes","birth_date":"1990-01-01","email":"a@b.ph","contact_number":"0917","sex":"F","civil_status":"single","religion":"none","full_address":"Purok 1","years_in_barangay":"5","voter_status":"registered","profile_completed":1,"verification_status":"approved"}}}`

func TestSnapshot_FreshnessWindowSkipsUpstream(t *testing.T) {
	store, hits := newStoreWith(t, profileHandler(approvedResident), time.Minute)
	creds := civic.Credentials{Token: "tok"}

	ctx := context.Background()
	first := store.Snapshot(ctx, creds)
	second := store.Snapshot(ctx, creds)

	if first.User == nil || second.User == nil {
		t.Fatal("expected a signed-in snapshot")
	}
	if got := atomic.LoadInt64(hits); got != 1 {
		t.Errorf("upstream hits = %d, want 1 (second read served from cache)", got)
	}
}

func TestSnapshot_StaleEntryRefetches(t *testing.T) {
	store, hits := newStoreWith(t, profileHandler(approvedResident), time.Millisecond)
	creds := civic.Credentials{Token: "tok"}

	ctx := context.Background()
	store.Snapshot(ctx, creds)
	time.Sleep(5 * time.Millisecond)
	store.Snapshot(ctx, creds)

	if got := atomic.LoadInt64(hits); got != 2 {
		t.Errorf("upstream hits = %d, want 2 after the freshness window lapses", got)
	}
}

// ForceRefresh twice against an unchanged backend must yield the same
// snapshot.
func TestForceRefresh_Idempotent(t *testing.T) {
	store, _ := newStoreWith(t, profileHandler(approvedResident), time.Minute)
	creds := civic.Credentials{Token: "tok"}

	ctx := context.Background()
	a := store.ForceRefresh(ctx, creds)
	b := store.ForceRefresh(ctx, creds)

	if !snapshotsEqual(a, b) {
		t.Errorf("snapshots differ across identical refreshes: %+v vs %+v", a, b)
	}
}

func TestFetch_401ClearsSession(t *testing.T) {
	store, _ := newStoreWith(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), time.Minute)

	snap := store.Snapshot(context.Background(), civic.Credentials{Token: "dead"})
	if snap.User != nil {
		t.Errorf("snapshot user = %+v, want nil after 401", snap.User)
	}
	if snap.Loading {
		t.Error("snapshot must not be loading after a resolved fetch")
	}
}

func TestFetch_404FallsBackToIdentity(t *testing.T) {
	store, _ := newStoreWith(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profile":
			w.WriteHeader(http.StatusNotFound)
		case "/user":
			w.Write([]byte(`{"user":{"id":"5","role":"residents"}}`))
		}
	}), time.Minute)

	snap := store.Snapshot(context.Background(), civic.Credentials{Token: "new"})
	if snap.User == nil || snap.User.ID != "5" {
		t.Fatalf("snapshot = %+v, want identity-only user id=5", snap)
	}
	if snap.User.Profile != nil {
		t.Error("identity fallback must not invent a profile")
	}
}

func TestFetch_404ThenIdentityFailureClearsSession(t *testing.T) {
	store, _ := newStoreWith(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}), time.Minute)

	snap := store.Snapshot(context.Background(), civic.Credentials{Token: "new"})
	if snap.User != nil {
		t.Errorf("snapshot user = %+v, want nil when both fetches fail", snap.User)
	}
}

func TestFetch_ServerErrorClearsSessionWithoutPanic(t *testing.T) {
	store, _ := newStoreWith(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), time.Minute)

	snap := store.Snapshot(context.Background(), civic.Credentials{Token: "tok"})
	if snap.User != nil {
		t.Error("snapshot must be signed out after an upstream error")
	}
}

func TestCached_MissingEntryReportsLoading(t *testing.T) {
	store, hits := newStoreWith(t, profileHandler(approvedResident), time.Minute)

	snap := store.Cached(civic.Credentials{Token: "tok"})
	if !snap.Loading {
		t.Error("expected Loading=true before the first fetch")
	}
	if got := atomic.LoadInt64(hits); got != 0 {
		t.Errorf("Cached must not call upstream, saw %d hits", got)
	}
}

// Overlapping refreshes of the same session must collapse into one
// upstream call.
func TestRefresh_ConcurrentCallsCollapse(t *testing.T) {
	release := make(chan struct{})
	store, hits := newStoreWith(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(approvedResident)) // only /profile is hit
	}), time.Minute)
	creds := civic.Credentials{Token: "tok"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.ForceRefresh(context.Background(), creds)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt64(hits); got != 1 {
		t.Errorf("upstream hits = %d, want 1 for collapsed concurrent refreshes", got)
	}
}

func TestSubscribe_NotifiedOnChangeOnly(t *testing.T) {
	var mu sync.Mutex
	var notifications int
	store, _ := newStoreWith(t, profileHandler(approvedResident), time.Minute)
	store.Subscribe(func(key string, snap Snapshot) {
		mu.Lock()
		notifications++
		mu.Unlock()
	})

	ctx := context.Background()
	creds := civic.Credentials{Token: "tok"}
	store.ForceRefresh(ctx, creds) // first fetch: change
	store.ForceRefresh(ctx, creds) // same state: no notification

	mu.Lock()
	defer mu.Unlock()
	if notifications != 1 {
		t.Errorf("notifications = %d, want 1", notifications)
	}
}

func TestLogout_AlwaysClearsLocally(t *testing.T) {
	store, _ := newStoreWith(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logout" {
			w.WriteHeader(http.StatusBadGateway) // upstream broken
			return
		}
		w.Write([]byte(approvedResident))
	}), time.Minute)

	ctx := context.Background()
	creds := civic.Credentials{Token: "tok"}
	store.Snapshot(ctx, creds)
	store.Logout(ctx, creds)

	if snap := store.Cached(creds); !snap.Loading {
		t.Error("expected the local snapshot to be dropped even when upstream logout fails")
	}
}

func TestJanitor_EvictsIdleEntries(t *testing.T) {
	store, _ := newStoreWith(t, profileHandler(approvedResident), time.Minute)
	creds := civic.Credentials{Token: "tok"}

	store.Snapshot(context.Background(), creds)
	store.evictIdle(0) // everything is idle relative to a zero allowance

	if snap := store.Cached(creds); !snap.Loading {
		t.Error("expected idle entry to be evicted")
	}
}
