// Package refresh provides the change-notification counter shared by the
// dashboard panels.
package refresh

import "sync"

// Signal is a monotonically increasing counter used purely as a
// change-notification trigger. Its value carries no meaning beyond "changed".
//
// The zero value is ready to use and starts at 0. Only the owner calls
// Notify; everyone else receives the value.
type Signal struct {
	subscribers []func(uint64)
	value       uint64
	mu          sync.Mutex
}

// Value returns the current counter.
func (s *Signal) Value() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Notify increments the counter by exactly one and hands the new value to
// every subscriber, in registration order.
func (s *Signal) Notify() uint64 {
	s.mu.Lock()
	s.value++
	v := s.value
	subs := make([]func(uint64), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
	return v
}

// Subscribe registers fn to be called after each Notify.
func (s *Signal) Subscribe(fn func(uint64)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
