package drafts

import (
	"context"
	"sync"
)

// Session tracks the one booking whose draft is currently wanted. Starting a
// request cancels the previous one, and a result that arrives after its
// request was superseded or the session was closed is dropped.
type Session struct {
	drafter Drafter

	mu     sync.Mutex
	active string
	seq    uint64
	cancel context.CancelFunc
}

func NewSession(drafter Drafter) *Session {
	return &Session{drafter: drafter}
}

// Request drafts a message for req.Booking and waits for it. ok is false
// when the result was discarded.
func (s *Session) Request(ctx context.Context, req Request) (text string, ok bool) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.active = req.Booking.ID
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	text = s.drafter.Draft(reqCtx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != seq || s.active != req.Booking.ID {
		return "", false
	}
	s.cancel = nil
	return text, true
}

// Active returns the booking id of the current request, if any.
func (s *Session) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Close abandons whatever is in flight.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.active = ""
}
