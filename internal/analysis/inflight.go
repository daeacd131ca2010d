package analysis

import "sync"

// inflight tracks users with a submission currently in progress so a
// double-click cannot race two parallel analyses of the same idea.
type inflight struct {
	mu    sync.Mutex
	users map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{users: make(map[string]struct{})}
}

// Begin reserves the user's slot. It returns false if a request is
// already running for that user.
func (l *inflight) Begin(userID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.users[userID]; busy {
		return false
	}
	l.users[userID] = struct{}{}
	return true
}

// End releases the user's slot.
func (l *inflight) End(userID string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	delete(l.users, userID)
	l.mu.Unlock()
}
