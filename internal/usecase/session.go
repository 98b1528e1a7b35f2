package usecase

import (
	"sync"

	"foodapp/internal/domain/entity"
)

// SessionState is either logged out (Account == nil) or logged in with the
// authenticated account. Store is set when the account owns one. States are
// immutable once published.
type SessionState struct {
	Account *entity.Account
	Store   *entity.Store
	Token   string
}

func LoggedOut() SessionState {
	return SessionState{}
}

func LoggedIn(account *entity.Account, token string) SessionState {
	return SessionState{Account: account, Token: token}
}

// WithStore attaches the owned store to a logged-in state.
func (s SessionState) WithStore(store *entity.Store) SessionState {
	s.Store = store
	return s
}

func (s SessionState) IsLoggedIn() bool {
	return s.Account != nil
}

// UserID returns the account ID, or "" when logged out. Callers that need a
// real identity must check IsLoggedIn first.
func (s SessionState) UserID() string {
	if s.Account == nil {
		return ""
	}
	return s.Account.ID
}

// SessionHub holds the current session state and notifies subscribers on
// every change. Components receive the hub explicitly instead of reading
// identity out of ambient request state.
type SessionHub struct {
	mu    sync.RWMutex
	state SessionState
	subs  map[chan SessionState]bool
}

func NewSessionHub() *SessionHub {
	return &SessionHub{
		state: LoggedOut(),
		subs:  make(map[chan SessionState]bool),
	}
}

func (h *SessionHub) Current() SessionState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Set publishes a new state to all subscribers. Slow subscribers miss
// intermediate states but always observe the latest one eventually.
// Delivery happens under the lock so a concurrent unsubscribe cannot
// close a channel mid-send.
func (h *SessionHub) Set(state SessionState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.state = state
	for ch := range h.subs {
		select {
		case ch <- state:
		default:
			// Drain the stale value, then push the fresh one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
}

// Subscribe returns a channel that receives the current state immediately
// and every subsequent state. Call the returned cancel func when done.
func (h *SessionHub) Subscribe() (<-chan SessionState, func()) {
	ch := make(chan SessionState, 1)

	h.mu.Lock()
	h.subs[ch] = true
	ch <- h.state
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if h.subs[ch] {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}
