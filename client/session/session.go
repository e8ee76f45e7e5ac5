package session

import (
	"context"
	"errors"
	"sync"
)

// State is the lifecycle phase of the session.
type State int

const (
	// StateInitializing means the persisted credential has not been loaded
	// yet. Consumers must render a loading affordance, not redirect.
	StateInitializing State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Storage keys owned exclusively by the session store. No other component
// writes to these.
const (
	storageKeyToken = "token"
	storageKeyUser  = "user"
)

var (
	ErrNotAuthenticated = errors.New("session: not authenticated")
	// ErrSuperseded is returned to a session-mutating call whose completion
	// arrived after a later mutation already won. The result was discarded.
	ErrSuperseded = errors.New("session: operation superseded")
	ErrNoGateway  = errors.New("session: no auth gateway attached")
)

// AuthError is a login failure that should be shown inline on the login
// form. The session stays anonymous and the call may simply be retried.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Storage is the durable client-side key/value store. Implementations never
// fail hard; an unavailable backend degrades to in-memory values.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Gateway verifies credentials against the remote auth authority and issues
// a bearer token plus the identity payload.
type Gateway interface {
	Authenticate(ctx context.Context, email, password string) (Identity, string, error)
}

// Snapshot is a torn-read-free view of the session handed to subscribers.
type Snapshot struct {
	State    State
	Identity *Identity
	Loading  bool
}

// Store is the single source of truth for the authenticated identity and its
// bearer credential. It is an explicit, constructed object: create one, call
// Bootstrap once, and hand the reference to every consumer.
//
// Session-mutating operations are serialized by a generation counter: each
// mutation claims a new generation, and an async completion whose generation
// no longer matches the store's is discarded. A stale login success arriving
// after a logout can therefore never resurrect the session.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	gateway  Gateway
	state    State
	identity *Identity
	token    string
	gen      uint64

	bootstrapOnce sync.Once

	nextSubID int
	subs      map[int]func(Snapshot)
}

// New returns a store in the initializing state. The gateway may be attached
// later (it usually authenticates through the shared API client, which in
// turn reads this store's token).
func New(storage Storage) *Store {
	return &Store{
		storage: storage,
		state:   StateInitializing,
		subs:    map[int]func(Snapshot){},
	}
}

// AttachGateway binds the remote auth gateway used by Login.
func (s *Store) AttachGateway(gw Gateway) {
	s.mu.Lock()
	s.gateway = gw
	s.mu.Unlock()
}

// Bootstrap resolves the initializing state from persisted credentials. It
// runs exactly once per process; later calls are no-ops. The persisted
// identity is trusted without a verification round-trip: a stale token is
// caught by the first authenticated call, which funnels into Invalidate.
func (s *Store) Bootstrap() {
	s.bootstrapOnce.Do(func() {
		s.mu.Lock()
		token, hasToken := s.storage.Get(storageKeyToken)
		rawUser, hasUser := s.storage.Get(storageKeyUser)

		identity, ok := Identity{}, false
		if hasToken && token != "" && hasUser {
			identity, ok = decodeIdentity(rawUser)
		}

		if ok {
			s.state = StateAuthenticated
			s.identity = &identity
			s.token = token
		} else {
			// Missing or corrupt credential: clear any partial leftovers.
			s.storage.Delete(storageKeyToken)
			s.storage.Delete(storageKeyUser)
			s.state = StateAnonymous
			s.identity = nil
			s.token = ""
		}
		snap, subs := s.snapshotLocked()
		s.mu.Unlock()
		notify(subs, snap)
	})
}

// Login exchanges credentials with the gateway. On success the identity and
// token are set atomically and persisted. On failure the session stays
// anonymous and the returned error carries a user-facing message; the call
// can be retried with no side effects.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	gw := s.gateway
	if gw == nil {
		s.mu.Unlock()
		return ErrNoGateway
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	identity, token, err := gw.Authenticate(ctx, email, password)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		// Stay anonymous. Intermediate failures do not disturb state.
		s.mu.Unlock()
		return err
	}
	if !identity.Role.Valid() {
		s.mu.Unlock()
		return &AuthError{Message: "login response carried an unknown role"}
	}

	s.state = StateAuthenticated
	s.identity = &identity
	s.token = token
	s.storage.Set(storageKeyToken, token)
	s.storage.Set(storageKeyUser, encodeIdentity(identity))
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()
	notify(subs, snap)
	return nil
}

// Logout clears the identity and credential from memory and storage.
// Calling it while already anonymous leaves the same end state, but it still
// bumps the generation so any in-flight login completion is discarded.
func (s *Store) Logout() {
	s.mu.Lock()
	s.gen++
	changed := s.state != StateAnonymous
	s.clearLocked()
	var snap Snapshot
	var subs []func(Snapshot)
	if changed {
		snap, subs = s.snapshotLocked()
	}
	s.mu.Unlock()
	notify(subs, snap)
}

// Invalidate is the cross-cutting 401 path: any authentication-rejected
// response, wherever detected, calls this. It reports true only for the call
// that actually tore the session down, so concurrent 401s from overlapping
// requests produce exactly one redirect.
func (s *Store) Invalidate() bool {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return false
	}
	s.gen++
	s.clearLocked()
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()
	notify(subs, snap)
	return true
}

// UpdateIdentity merges a partial identity update, e.g. after a profile
// edit. While anonymous it is a no-op signalled by ErrNotAuthenticated.
func (s *Store) UpdateIdentity(patch Patch) error {
	s.mu.Lock()
	if s.state != StateAuthenticated || s.identity == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	updated := *s.identity
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.FullName != nil {
		updated.FullName = *patch.FullName
	}
	if patch.EmployeeID != nil {
		updated.EmployeeID = patch.EmployeeID
	}
	s.identity = &updated
	s.storage.Set(storageKeyUser, encodeIdentity(updated))
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()
	notify(subs, snap)
	return nil
}

// Snapshot returns a consistent view of the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _ := s.snapshotLocked()
	return snap
}

// State returns the current lifecycle phase.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether bootstrap has not resolved yet.
func (s *Store) Loading() bool {
	return s.State() == StateInitializing
}

// Identity returns a copy of the current identity, if authenticated.
func (s *Store) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Token returns the bearer credential for outbound requests, or "" when
// anonymous. The token is never logged or rendered.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsRole reports whether the session is authenticated as exactly the given
// role. Always false while anonymous or initializing.
func (s *Store) IsRole(role Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated && s.identity != nil && s.identity.Role == role
}

// IsAdmin is shorthand for IsRole(RoleAdmin).
func (s *Store) IsAdmin() bool { return s.IsRole(RoleAdmin) }

// Subscribe registers a callback invoked with a fresh snapshot after every
// state change. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) clearLocked() {
	s.state = StateAnonymous
	s.identity = nil
	s.token = ""
	s.storage.Delete(storageKeyToken)
	s.storage.Delete(storageKeyUser)
}

func (s *Store) snapshotLocked() (Snapshot, []func(Snapshot)) {
	snap := Snapshot{State: s.state, Loading: s.state == StateInitializing}
	if s.identity != nil {
		copied := *s.identity
		snap.Identity = &copied
	}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

// notify runs outside the store lock so subscribers can read the store.
func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
