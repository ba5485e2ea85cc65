package service

import (
	"sync"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

// SessionState is the authentication state observed by the pages.
type SessionState struct {
	User            *domain.User
	IsAuthenticated bool
	IsLoading       bool
}

// Session holds the authentication state of one visitor. AuthService is the
// only writer; everything else reads it or subscribes to changes.
type Session struct {
	mu            sync.Mutex
	state         SessionState
	providerToken string
	subscribers   map[int]func(SessionState)
	nextID        int
}

// NewSession returns a session that is still loading.
func NewSession() *Session {
	return &Session{
		state:       SessionState{IsLoading: true},
		subscribers: map[int]func(SessionState){},
	}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

func (s *Session) User() *domain.User {
	return s.State().User
}

func (s *Session) IsAuthenticated() bool {
	return s.State().IsAuthenticated
}

// Subscribe registers fn and calls it once with the current state. The
// returned func removes the subscription; calling it twice is a no-op.
func (s *Session) Subscribe(fn func(SessionState)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	current := copyState(s.state)
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) principal() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return "", s.providerToken
	}
	return s.state.User.ID, s.providerToken
}

func (s *Session) signIn(user *domain.User, providerToken string) {
	s.set(SessionState{User: user, IsAuthenticated: user != nil}, providerToken)
}

func (s *Session) signOut() {
	s.set(SessionState{}, "")
}

func (s *Session) set(state SessionState, providerToken string) {
	s.mu.Lock()
	s.state = copyState(state)
	s.providerToken = providerToken
	subscribers := make([]func(SessionState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	snapshot := copyState(s.state)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func copyState(state SessionState) SessionState {
	if state.User != nil {
		user := *state.User
		if user.Avatar != nil {
			avatar := *user.Avatar
			user.Avatar = &avatar
		}
		state.User = &user
	}
	return state
}
