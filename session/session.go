// Package session implements the observable session state machine driving
// the application shell: bootstrap on start, login/logout, and the expired
// state the UI must acknowledge before re-authentication.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	sdk "github.com/curaflow/curaflow-go"
)

// Phase enumerates the session lifecycle states.
type Phase string

const (
	// PhaseLoading is the initial state before Bootstrap completes.
	PhaseLoading Phase = "loading"
	// PhaseUnauthenticated means no session exists; show the login form.
	PhaseUnauthenticated Phase = "unauthenticated"
	// PhaseAuthenticated means a user is signed in.
	PhaseAuthenticated Phase = "authenticated"
	// PhaseExpired means a session existed but was lost to a fatal error.
	// Distinct from unauthenticated so the UI can explain why access ended.
	PhaseExpired Phase = "session_expired"
)

// State is an immutable snapshot of the session. User is set only while
// authenticated. Snapshots go stale the moment they are read; subscribers
// receive a new one per transition.
type State struct {
	Phase Phase
	User  *sdk.User
}

// Manager is the single writer of session state. Any number of goroutines
// may read Current or subscribe; only Manager methods mutate the state.
type Manager struct {
	client *sdk.Client
	log    zerolog.Logger

	mu      sync.RWMutex
	state   State
	subs    map[int]chan State
	nextSub int
}

// NewManager starts in the loading state. Call Bootstrap before reading
// state for real decisions.
func NewManager(client *sdk.Client, log zerolog.Logger) *Manager {
	return &Manager{
		client: client,
		log:    log,
		state:  State{Phase: PhaseLoading},
		subs:   make(map[int]chan State),
	}
}

// Current returns the latest state snapshot.
func (m *Manager) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers an observer. The channel receives a snapshot per
// transition; a slow consumer misses intermediate snapshots rather than
// blocking the writer. The returned func cancels the subscription.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan State, 8)
	m.subs[id] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
}

func (m *Manager) set(state State) {
	m.mu.Lock()
	m.state = state
	// Sends happen under the lock so a concurrent cancel cannot close a
	// channel between snapshot and send; they never block, so holding the
	// lock here is safe.
	for _, ch := range m.subs {
		select {
		case ch <- state:
		default:
		}
	}
	m.mu.Unlock()
	m.log.Debug().Str("phase", string(state.Phase)).Msg("session transition")
}

// Bootstrap recomputes the session from stored credentials at process start.
// With no stored refresh token it settles on unauthenticated without any
// network call. Otherwise it refreshes, fetches the user snapshot, and
// settles on authenticated; any failure clears local credentials and settles
// on expired.
func (m *Manager) Bootstrap(ctx context.Context) State {
	has, err := m.client.Tokens().HasRefreshToken()
	if err != nil || !has {
		if err != nil {
			m.log.Error().Err(err).Msg("keystore read failed during bootstrap")
		}
		m.set(State{Phase: PhaseUnauthenticated})
		return m.Current()
	}
	if _, err := m.client.Tokens().ForceRefresh(ctx); err != nil {
		m.log.Info().Err(err).Msg("stored session could not be refreshed")
		_ = m.client.Tokens().ClearSession()
		m.set(State{Phase: PhaseExpired})
		return m.Current()
	}
	user, err := m.client.Me(ctx)
	if err != nil {
		m.log.Info().Err(err).Msg("user snapshot fetch failed during bootstrap")
		_ = m.client.Tokens().ClearSession()
		m.set(State{Phase: PhaseExpired})
		return m.Current()
	}
	m.set(State{Phase: PhaseAuthenticated, User: &user})
	return m.Current()
}

// Login authenticates with the backend and transitions to authenticated.
// On failure the state stays where it was and the classified error is
// returned for display.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.client.Login(ctx, email, password); err != nil {
		return err
	}
	user, err := m.client.Me(ctx)
	if err != nil {
		return err
	}
	m.set(State{Phase: PhaseAuthenticated, User: &user})
	return nil
}

// Logout clears credentials and the user snapshot. It never needs the
// network and always succeeds locally.
func (m *Manager) Logout() {
	_ = m.client.Tokens().ClearSession()
	m.set(State{Phase: PhaseUnauthenticated})
}

// AcknowledgeExpired moves from expired to unauthenticated once the UI has
// shown the explanation. Idempotent: acknowledging twice leaves the session
// unauthenticated with no error.
func (m *Manager) AcknowledgeExpired() {
	m.mu.RLock()
	expired := m.state.Phase == PhaseExpired
	m.mu.RUnlock()
	if expired {
		m.set(State{Phase: PhaseUnauthenticated})
	}
}

// ReportFatal forwards a failed operation's error after its result has been
// returned to the caller. Fatal kinds end the session: credentials are
// cleared and the state becomes expired. Non-fatal errors leave the state
// untouched.
func (m *Manager) ReportFatal(err error) {
	if err == nil || !sdk.KindOf(err).Fatal() {
		return
	}
	m.mu.RLock()
	authenticated := m.state.Phase == PhaseAuthenticated
	m.mu.RUnlock()
	if !authenticated {
		return
	}
	m.log.Info().Str("kind", string(sdk.KindOf(err))).Msg("fatal session error reported")
	_ = m.client.Tokens().ClearSession()
	m.set(State{Phase: PhaseExpired})
}
