// Package signal bridges a pair of mutually exclusive host callbacks
// (success / failure) into a single awaitable result.
//
// Host APIs such as image decoding or promise settlement report completion
// by invoking one of two registered handlers, on their own schedule and
// without a single-fire guarantee. A Signal accepts the first report and
// drops the rest, so a waiter observes exactly one outcome.
package signal

import (
	"context"
	"sync"
)

type outcome[T any] struct {
	value T
	err   error
}

// slot is the completion slot shared by both callbacks. Whichever callback
// fires first takes the sender; the other finds it empty.
type slot[T any] struct {
	mu     sync.Mutex
	sender chan<- outcome[T]
}

// takeAndSend delivers o if the slot still holds its sender. The guard
// covers only the take and the buffered send.
func (s *slot[T]) takeAndSend(o outcome[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.sender
	if c == nil {
		return false
	}
	s.sender = nil
	c <- o
	close(c)
	return true
}

// Signal is a one-shot completion resolved by either Succeed or Fail.
type Signal[T any] struct {
	slot *slot[T]

	recv <-chan outcome[T]
	done chan struct{}

	once   sync.Once
	result outcome[T]
}

// New returns a pending Signal.
func New[T any]() *Signal[T] {
	// The channel is buffered so a fire that happens before anyone waits,
	// including one made synchronously by the triggering call, never blocks.
	c := make(chan outcome[T], 1)
	return &Signal[T]{
		slot: &slot[T]{sender: c},
		recv: c,
		done: make(chan struct{}),
	}
}

// Succeed resolves the signal with v. It reports whether this call was the
// one that resolved it.
func (s *Signal[T]) Succeed(v T) bool {
	return s.complete(outcome[T]{value: v})
}

// Fail resolves the signal with err. It reports whether this call was the
// one that resolved it. A nil err is recorded as ErrUnspecified.
func (s *Signal[T]) Fail(err error) bool {
	if err == nil {
		err = ErrUnspecified
	}
	return s.complete(outcome[T]{err: err})
}

func (s *Signal[T]) complete(o outcome[T]) bool {
	if !s.slot.takeAndSend(o) {
		return false
	}
	close(s.done)
	return true
}

// Callbacks returns the success and failure handlers to register with the
// host. Both close over the same completion slot.
func (s *Signal[T]) Callbacks() (onSuccess func(T), onFailure func(error)) {
	return func(v T) { s.Succeed(v) }, func(err error) { s.Fail(err) }
}

// Done is closed once the signal has been resolved.
func (s *Signal[T]) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the signal is resolved or ctx is done. Once resolved,
// every call returns the same outcome. Abandoning a wait does not detach
// the callbacks registered with the host.
func (s *Signal[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-s.done:
	default:
		select {
		case <-s.done:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
	s.once.Do(func() {
		s.result = <-s.recv
	})
	return s.result.value, s.result.err
}
