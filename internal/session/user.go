package session

import (
	"sync"

	"github.com/karanch577/sneakerx-admin/internal/model"
)

// UserContext holds the signed-in operator. It is injected into the guard
// rather than living in a global.
type UserContext interface {
	User() (model.User, bool)
	SetUser(u model.User)
	ClearUser()
}

// UserState is the in-memory UserContext
type UserState struct {
	mu   sync.RWMutex
	user *model.User
}

// NewUserState returns an empty user context
func NewUserState() *UserState {
	return &UserState{}
}

func (s *UserState) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *UserState) SetUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *UserState) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}
