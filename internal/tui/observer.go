package tui

// queryNotifier turns query notifications into a channel the program
// reads one message at a time. Notifications that arrive while one is
// pending are coalesced; screens re-read their state on every update.
type queryNotifier struct {
	ch chan struct{}
}

func newQueryNotifier() *queryNotifier {
	return &queryNotifier{ch: make(chan struct{}, 1)}
}

// Notify signals an update (non-blocking if one is already pending)
func (n *queryNotifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default: // Non-blocking if channel full
	}
}
