package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/VaishnevSreejeev/canteen-ordering-app/services"
)

const sessionCookie = "canteen_session"

// session is one browser's state: who is logged in and their cart. The
// cart lives here, in the web layer, and is handed to the placement
// engine as an explicit snapshot; no service reaches into session state.
// mu serializes concurrent requests from the same browser.
type session struct {
	mu        sync.Mutex
	StudentID string
	Cart      *services.Cart
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

func (s *sessionStore) get(token string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

func (s *sessionStore) create() (string, *session, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, err
	}
	token := hex.EncodeToString(buf)
	sess := &session{Cart: services.NewCart()}
	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()
	return token, sess, nil
}

func (s *sessionStore) remove(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
