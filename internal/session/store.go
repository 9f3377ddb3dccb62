package session

import "sync"

// Store holds sessions keyed by Telegram user ID. All methods are safe
// for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns a snapshot of the user's session. Unknown users get a
// zero session, never nil state.
func (s *Store) Get(userID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cur, ok := s.sessions[userID]
	if !ok {
		return Session{}
	}
	out := *cur
	if cur.Pending != nil {
		pending := *cur.Pending
		out.Pending = &pending
	}
	return out
}

// Update applies fn to the user's session under the write lock,
// creating the session on first touch.
func (s *Store) Update(userID int64, fn func(*Session)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.sessions[userID]
	if !ok {
		cur = &Session{}
		s.sessions[userID] = cur
	}
	fn(cur)
}

// ClearMode resets only the conversation mode, keeping pending uploads
// and the default category intact.
func (s *Store) ClearMode(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.sessions[userID]; ok {
		cur.Mode = ModeNone
	}
}

// Mode reports the active conversation mode for the user.
func (s *Store) Mode(userID int64) Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cur, ok := s.sessions[userID]; ok {
		return cur.Mode
	}
	return ModeNone
}
