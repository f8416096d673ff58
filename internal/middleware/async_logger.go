package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/logger"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize caps how many plan audit entries may wait for a worker.
	BufferSize int
	// NumWorkers is the number of goroutines draining the buffer.
	NumWorkers int
	// WriteTimeout bounds a single database write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns sensible defaults for the async logger.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncLogger persists request audit entries through a bounded buffer and a
// fixed worker pool, so a slow logs collection never stalls planning requests
// and load spikes cannot spawn unbounded goroutines.
type AsyncLogger struct {
	logs         service.LoggingService
	buffer       chan *model.LogEntry
	workers      sync.WaitGroup
	quit         chan struct{}
	writeTimeout time.Duration

	enqueued int64
	dropped  int64
	written  int64
	errors   int64
}

// NewAsyncLogger starts the worker pool. A nil logging service yields a nil
// logger, which callers treat as audit logging disabled.
func NewAsyncLogger(logs service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if logs == nil {
		return nil
	}

	al := &AsyncLogger{
		logs:         logs,
		buffer:       make(chan *model.LogEntry, cfg.BufferSize),
		quit:         make(chan struct{}),
		writeTimeout: cfg.WriteTimeout,
	}
	for i := 0; i < cfg.NumWorkers; i++ {
		al.workers.Add(1)
		go al.drain()
	}
	return al
}

func (al *AsyncLogger) drain() {
	defer al.workers.Done()

	for {
		select {
		case entry, ok := <-al.buffer:
			if !ok {
				return
			}
			al.persist(entry)
		case <-al.quit:
			// Flush whatever is still buffered, then exit.
			for {
				select {
				case entry := <-al.buffer:
					al.persist(entry)
				default:
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) persist(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.logs.CreateLog(ctx, entry); err != nil {
		atomic.AddInt64(&al.errors, 1)
		l := logger.Logger()
		l.Warn().Err(err).
			Str("action_type", entry.ActionType).
			Msg("Failed to persist audit log entry")
		return
	}
	atomic.AddInt64(&al.written, 1)
}

// Log enqueues an audit entry. It reports false when the buffer is full, in
// which case the entry is dropped rather than blocking the request path.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	select {
	case al.buffer <- entry:
		atomic.AddInt64(&al.enqueued, 1)
		return true
	default:
		atomic.AddInt64(&al.dropped, 1)
		return false
	}
}

// Stop flushes buffered entries and waits for the workers to finish.
func (al *AsyncLogger) Stop() {
	close(al.quit)
	al.workers.Wait()
	close(al.buffer)
}

// Stats reports the lifetime counters of the logger.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, errors int64) {
	return atomic.LoadInt64(&al.enqueued),
		atomic.LoadInt64(&al.dropped),
		atomic.LoadInt64(&al.written),
		atomic.LoadInt64(&al.errors)
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger installs the process-wide async logger, replacing and
// stopping any previous instance. Called once during startup.
func InitAsyncLogger(logs service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(logs, cfg)
}

// GetAsyncLogger returns the process-wide async logger, or nil when audit
// logging is disabled.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger flushes and tears down the process-wide async logger.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}
