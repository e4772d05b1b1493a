package server

import (
	"sync"

	"github.com/google/uuid"
)

// Session tracks per-client handshake state: the phase and the negotiated
// protocol version. It holds no per-call state; in strict mode one Session
// is shared by every concurrent call carrying the same session id, so
// anything call-scoped (transport headers, identity) travels on the call's
// context instead.
type Session struct {
	id string

	mu          sync.Mutex
	initialized bool
	version     string
}

func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

func (s *Session) ID() string { return s.id }

// Initialize records a completed handshake and the negotiated protocol
// version.
func (s *Session) Initialize(version string) {
	s.mu.Lock()
	s.initialized = true
	s.version = version
	s.mu.Unlock()
}

func (s *Session) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// NegotiatedVersion returns the protocol version agreed at initialize,
// or "" before the handshake.
func (s *Session) NegotiatedVersion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
