package headless

import (
	"errors"
	"sync"

	"github.com/spaghettifunk/walkthedog/engine/core"
)

// job is a unit of blocking work, such as decoding an image, run off the
// event loop. Exactly one of OnSuccess and OnFailure is called.
type job struct {
	Run       func() error
	OnSuccess func()
	OnFailure func(error)
}

// jobSystem is a fixed pool of workers draining a job queue.
type jobSystem struct {
	numWorkers int
	jobQueue   chan job
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var (
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
	ErrJobSystemClosed     = errors.New("job system shut down")
)

func newJobSystem(numWorkers int, channelSize int) (*jobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &jobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan job, channelSize),
	}
	js.start()
	return js, nil
}

func (js *jobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for j := range js.jobQueue {
				if err := j.Run(); err != nil {
					core.LogDebug("job failed: %v", err)
					if j.OnFailure != nil {
						j.OnFailure(err)
					}
					continue
				}
				if j.OnSuccess != nil {
					j.OnSuccess()
				}
			}
		}()
	}
}

// submit queues j, blocking while the queue is full. Jobs submitted after
// shutdown fail immediately.
func (js *jobSystem) submit(j job) {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		if j.OnFailure != nil {
			j.OnFailure(ErrJobSystemClosed)
		}
		return
	}
	js.jobQueue <- j
}

// shutdown waits for queued jobs to finish.
func (js *jobSystem) shutdown() {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()
	js.wg.Wait()
}
