// internal/snippet/session.go
package snippet

// Session is the per-document engine state: the pending request queue and
// the active tabstop groups. The owner passes it explicitly to every engine
// entry point; there is no package-level state.
type Session struct {
	Queue Queue
	Stops Store
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Active reports whether any tabstop groups are live.
func (s *Session) Active() bool {
	return !s.Stops.Empty()
}

// Cancel drops all pending requests and active groups.
func (s *Session) Cancel() {
	s.Queue.clear()
	s.Stops.ClearAll()
}
