package onboarding

import "sync"

// Store keeps one live onboarding session per user. Sessions are created on
// first access and dropped when the flow completes or is abandoned.
type Store struct {
	mu       sync.RWMutex
	sessions map[uint]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uint]*Session)}
}

// Get returns the user's session, creating a fresh one if none exists.
func (st *Store) Get(userID uint) *Session {
	st.mu.RLock()
	s, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[userID]; ok {
		return s
	}
	s = NewSession()
	st.sessions[userID] = s
	return s
}

// Drop destroys the user's session.
func (st *Store) Drop(userID uint) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}
