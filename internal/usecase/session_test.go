package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodapp/internal/domain/entity"
)

func TestSessionHubStartsLoggedOut(t *testing.T) {
	hub := NewSessionHub()

	state := hub.Current()
	assert.False(t, state.IsLoggedIn())
	assert.Equal(t, "", state.UserID())
}

func TestSessionHubPublishesChanges(t *testing.T) {
	hub := NewSessionHub()
	states, cancel := hub.Subscribe()
	defer cancel()

	// Subscribers immediately receive the current state.
	first := <-states
	assert.False(t, first.IsLoggedIn())

	account := &entity.Account{ID: "u1", Role: entity.RoleCustomer}
	hub.Set(LoggedIn(account, "token-1"))

	select {
	case state := <-states:
		assert.True(t, state.IsLoggedIn())
		assert.Equal(t, "u1", state.UserID())
		assert.Equal(t, "token-1", state.Token)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for state change")
	}

	hub.Set(LoggedOut())
	select {
	case state := <-states:
		assert.False(t, state.IsLoggedIn())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for logout")
	}
}

func TestSessionStateWithStore(t *testing.T) {
	owner := &entity.Account{ID: "own1", Role: entity.RoleStore}
	store := &entity.Store{ID: "s1", AccountID: "own1"}

	state := LoggedIn(owner, "t").WithStore(store)
	assert.True(t, state.IsLoggedIn())
	assert.Equal(t, "s1", state.Store.ID)

	// The original state is untouched.
	assert.Nil(t, LoggedIn(owner, "t").Store)
}

func TestSessionHubSlowSubscriberSeesLatest(t *testing.T) {
	hub := NewSessionHub()
	states, cancel := hub.Subscribe()
	defer cancel()

	// Do not drain; publish several states on top of the buffered one.
	for i := 0; i < 5; i++ {
		hub.Set(LoggedIn(&entity.Account{ID: "u1"}, "token"))
	}
	hub.Set(LoggedOut())

	// Whatever was missed, the last received state is the current one.
	var last SessionState
	for {
		select {
		case state := <-states:
			last = state
			continue
		default:
		}
		break
	}
	assert.False(t, last.IsLoggedIn())
}

func TestSessionHubUnsubscribe(t *testing.T) {
	hub := NewSessionHub()
	states, cancel := hub.Subscribe()

	<-states
	cancel()

	// The channel is closed and further publishes do not panic.
	_, open := <-states
	assert.False(t, open)
	require.NotPanics(t, func() {
		hub.Set(LoggedIn(&entity.Account{ID: "u1"}, "t"))
	})

	// Double cancel is safe.
	require.NotPanics(t, cancel)
}
