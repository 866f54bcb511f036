// Package store owns every piece of mutable application state: users,
// channels (with their message logs and standup sessions), the live
// credential set, password-reset codes, and the id counters.
//
// All access goes through Update or View, which hold a single mutex for the
// duration of the callback. Request handlers and deferred tasks (scheduled
// sends, standup flushes) enter through the same lock, so each operation runs
// to completion without interleaving — the single-writer discipline the data
// model relies on.
package store

import (
	"sort"
	"sync"

	"github.com/flockr/messaging-system/internal/core/domain"
)

// State is the entire datastore. Callbacks passed to Update may mutate it
// freely; callbacks passed to View must not.
type State struct {
	Users    map[int]*domain.User
	Channels map[int]*domain.Channel

	// Tokens is the live credential set: credential -> bound user id.
	// A credential absent from this map is access-denied regardless of
	// whether it would decode.
	Tokens map[string]int

	// ResetCodes maps a live password-reset code to the email it was
	// issued for. At most one live code exists per email.
	ResetCodes map[string]string

	// NextChannelID is a monotonic counter; channel ids are never reused
	// even after a channel is deleted.
	NextChannelID int

	// MaxMessageID is the last message id handed out, shared across all
	// channels. Ids are strictly increasing and never reused.
	MaxMessageID int
}

// Store serializes all reads and writes of the application state.
type Store struct {
	mu    sync.Mutex
	state *State
}

// New returns a Store with empty initial state.
func New() *Store {
	return &Store{state: newState()}
}

func newState() *State {
	return &State{
		Users:         make(map[int]*domain.User),
		Channels:      make(map[int]*domain.Channel),
		Tokens:        make(map[string]int),
		ResetCodes:    make(map[string]string),
		NextChannelID: 1,
	}
}

// Update runs fn with exclusive access to the state.
func (s *Store) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View runs fn with access to the state. Reads take the same lock as writes;
// with small in-memory collections the serialization cost is irrelevant and
// readers always observe settled state.
func (s *Store) View(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Reset wipes every registry back to its initial empty state. Used by the
// explicit reset operation for test isolation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newState()
}

// Stats is a point-in-time summary of the store's contents.
type Stats struct {
	Users    int
	Channels int
	Tokens   int
}

// Stats reports current registry sizes.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Users:    len(s.state.Users),
		Channels: len(s.state.Channels),
		Tokens:   len(s.state.Tokens),
	}
}

// NextMessageID reserves and returns the next process-wide message id.
func (st *State) NextMessageID() int {
	st.MaxMessageID++
	return st.MaxMessageID
}

// UserByID returns the user with the given id.
func (st *State) UserByID(id int) (*domain.User, bool) {
	u, ok := st.Users[id]
	return u, ok
}

// UserByEmail returns the user registered under the given email.
func (st *State) UserByEmail(email string) (*domain.User, bool) {
	for _, id := range st.UserIDs() {
		if st.Users[id].Email == email {
			return st.Users[id], true
		}
	}
	return nil, false
}

// HandleTaken reports whether any user currently holds the given handle.
func (st *State) HandleTaken(handle string) bool {
	for _, u := range st.Users {
		if u.Handle == handle {
			return true
		}
	}
	return false
}

// ChannelByID returns the channel with the given id.
func (st *State) ChannelByID(id int) (*domain.Channel, bool) {
	c, ok := st.Channels[id]
	return c, ok
}

// UserIDs returns all user ids in ascending (registration) order.
func (st *State) UserIDs() []int {
	return sortedKeys(st.Users)
}

// ChannelIDs returns all channel ids in ascending (creation) order.
func (st *State) ChannelIDs() []int {
	return sortedKeys(st.Channels)
}

// FindMessage locates a message by id across every channel.
func (st *State) FindMessage(messageID int) (*domain.Channel, *domain.Message, bool) {
	for _, id := range st.ChannelIDs() {
		ch := st.Channels[id]
		if m, ok := ch.FindMessage(messageID); ok {
			return ch, m, true
		}
	}
	return nil, nil, false
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
