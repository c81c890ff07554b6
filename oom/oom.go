// Package oom implements the memory-pressure notification object used by
// the retry-under-pressure pattern: several operations attempt an
// allocation, ask the reclaimer to make room, and retry. It is an
// explicit, per-Subsystem_t object rather than an ambient global so it can
// be constructed fresh in each test instead of racing a package-level
// singleton.
package oom

/// Msg_t is a request to free Need pages, with a channel the requester can
/// block on until the reclaim pass finishes.
type Msg_t struct {
	Need   int
	Resume chan bool
}

/// Notifier_t fans pressure notifications out to a single registered
/// handler — the controller's MaybeSwap. The handler runs synchronously on
/// the notifying goroutine: there is no separate background reclaimer to
/// hand the message to, so "request reclaim and wait" collapses into a
/// direct call.
type Notifier_t struct {
	handler func(need int)
}

/// NewNotifier creates a Notifier_t with no handler registered; Notify is a
/// silent no-op until Subscribe is called.
func NewNotifier() *Notifier_t {
	return &Notifier_t{}
}

/// Subscribe registers the pressure handler, normally
/// (*swap.Controller_t).MaybeSwap.
func (n *Notifier_t) Subscribe(handler func(need int)) {
	n.handler = handler
}

/// Notify invokes the registered handler, if any, asking it to try to free
/// at least need pages.
func (n *Notifier_t) Notify(need int) {
	if n.handler != nil {
		n.handler(need)
	}
}
