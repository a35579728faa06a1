package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform"
)

// ErrLoopStopped is reported by FrameLoop.Err when the loop ended because
// its context was done.
var ErrLoopStopped = errors.New("frame loop stopped")

// Tick is called once per animation frame with the host timestamp in
// milliseconds. Computing deltas between ticks is up to the callee.
type Tick func(timestampMs float64)

// FrameLoop drives a Tick from the host's single-shot animation frame
// facility by requesting the next frame from inside every frame. If a
// request fails the loop is over; nothing restarts it.
type FrameLoop struct {
	ctx       context.Context
	requester platform.FrameRequester
	tick      Tick

	ticks atomic.Uint64

	once sync.Once
	done chan struct{}
	err  error
}

// ScheduleLoop requests the first frame for tick. The loop keeps re-arming
// until ctx is done or a request fails.
func ScheduleLoop(ctx context.Context, requester platform.FrameRequester, tick Tick) (*FrameLoop, error) {
	l := &FrameLoop{
		ctx:       ctx,
		requester: requester,
		tick:      tick,
		done:      make(chan struct{}),
	}
	if _, err := requester.RequestAnimationFrame(l.frame); err != nil {
		err = fmt.Errorf("cannot request animation frame: %w", err)
		l.stop(err)
		return nil, err
	}
	return l, nil
}

func (l *FrameLoop) frame(timestampMs float64) {
	if l.ctx.Err() != nil {
		l.stop(ErrLoopStopped)
		return
	}
	// Re-arm first so the next frame is booked even if tick is slow.
	_, err := l.requester.RequestAnimationFrame(l.frame)
	l.ticks.Add(1)
	l.tick(timestampMs)
	if err != nil {
		// Done closes only after the last tick has returned.
		core.LogError("cannot request animation frame, animation stopped: %v", err)
		l.stop(fmt.Errorf("cannot request animation frame: %w", err))
	}
}

func (l *FrameLoop) stop(err error) {
	l.once.Do(func() {
		l.err = err
		close(l.done)
	})
}

// Done is closed when the loop has stopped re-arming.
func (l *FrameLoop) Done() <-chan struct{} {
	return l.done
}

// Err reports why the loop stopped. It is nil while the loop runs.
func (l *FrameLoop) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}

// Ticks returns the number of ticks delivered so far.
func (l *FrameLoop) Ticks() uint64 {
	return l.ticks.Load()
}
