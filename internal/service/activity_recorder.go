package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/rs/zerolog/log"
)

// AsyncRecorderConfig holds configuration for the async activity recorder.
type AsyncRecorderConfig struct {
	// BufferSize is the size of the pending entry channel.
	BufferSize int
	// NumWorkers is the number of goroutines writing entries.
	NumWorkers int
	// WriteTimeout bounds a single write.
	WriteTimeout time.Duration
}

// DefaultAsyncRecorderConfig returns sensible defaults for the async recorder.
func DefaultAsyncRecorderConfig() AsyncRecorderConfig {
	return AsyncRecorderConfig{
		BufferSize:   1000,
		NumWorkers:   2,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncRecorder writes activity entries from a bounded worker pool so that
// tally operations never wait on the audit store.
type AsyncRecorder struct {
	sink         ActivityService
	entryCh      chan *model.ActivityEntry
	wg           sync.WaitGroup
	stopCh       chan struct{}
	stopOnce     sync.Once
	writeTimeout time.Duration

	enqueued int64
	dropped  int64
	written  int64
	failed   int64
}

var _ ActivityRecorder = (*AsyncRecorder)(nil)

// NewAsyncRecorder starts the worker pool. A nil sink returns nil.
func NewAsyncRecorder(sink ActivityService, cfg AsyncRecorderConfig) *AsyncRecorder {
	if sink == nil {
		return nil
	}
	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
	}

	r := &AsyncRecorder{
		sink:         sink,
		entryCh:      make(chan *model.ActivityEntry, cfg.BufferSize),
		stopCh:       make(chan struct{}),
		writeTimeout: cfg.WriteTimeout,
	}
	for i := 0; i < cfg.NumWorkers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	return r
}

func (r *AsyncRecorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case entry := <-r.entryCh:
			r.write(entry)
		case <-r.stopCh:
			// drain what is already queued
			for {
				select {
				case entry := <-r.entryCh:
					r.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (r *AsyncRecorder) write(entry *model.ActivityEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	if err := r.sink.Create(ctx, entry); err != nil {
		atomic.AddInt64(&r.failed, 1)
		log.Warn().Err(err).Str("action", entry.Action).Msg("Failed to write activity entry")
		return
	}
	atomic.AddInt64(&r.written, 1)
}

// Record enqueues an entry. It returns false when the buffer is full or the
// recorder is stopped; the entry is then dropped.
func (r *AsyncRecorder) Record(entry *model.ActivityEntry) bool {
	if r == nil {
		return false
	}
	select {
	case <-r.stopCh:
		atomic.AddInt64(&r.dropped, 1)
		return false
	default:
	}

	select {
	case r.entryCh <- entry:
		atomic.AddInt64(&r.enqueued, 1)
		return true
	default:
		atomic.AddInt64(&r.dropped, 1)
		return false
	}
}

// Stop waits for queued entries to be written. Safe to call more than once.
func (r *AsyncRecorder) Stop() {
	if r == nil {
		return
	}
	r.stopOnce.Do(func() {
		close(r.stopCh)
		r.wg.Wait()
	})
}

// Stats returns current recorder counters.
func (r *AsyncRecorder) Stats() (enqueued, dropped, written, failed int64) {
	return atomic.LoadInt64(&r.enqueued),
		atomic.LoadInt64(&r.dropped),
		atomic.LoadInt64(&r.written),
		atomic.LoadInt64(&r.failed)
}
