package store

import "sync"

// MemorySessionStore keeps session tokens in-process. Used in tests and
// local development.
type MemorySessionStore struct {
	mu   sync.RWMutex
	sess map[string]string // token -> username
}

// NewMemorySessionStore initializes an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sess: make(map[string]string)}
}

// NewSession creates a session token for a username.
func (m *MemorySessionStore) NewSession(username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := newToken()
	m.sess[token] = username
	return token, nil
}

// GetUsernameByToken resolves a token to the username it was issued for.
func (m *MemorySessionStore) GetUsernameByToken(token string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	username, ok := m.sess[token]
	return username, ok, nil
}

// DeleteSession removes a token mapping.
func (m *MemorySessionStore) DeleteSession(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sess, token)
	return nil
}
