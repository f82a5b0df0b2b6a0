package sim

import (
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	eventBufferSize    = 1024 // circular buffer slots
	maxEventsPerSec    = 10000
	batchFlushSize     = 64
	batchFlushInterval = 100 * time.Millisecond
)

// EventLog is a bounded, rate-limited journal of simulation events with an
// async JSONL writer. The engine produces into a circular buffer on its tick
// goroutine; a single writer goroutine drains batches to disk. When the
// buffer overruns, the oldest events are dropped rather than blocking the
// tick.
type EventLog struct {
	buffer    [eventBufferSize]Event
	writeHead uint64 // atomic, producer position
	readHead  uint64 // atomic, consumer position

	limiter *rate.Limiter

	writerWg sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	filePath string
	file     *os.File
	fileMu   sync.Mutex

	droppedCount uint64 // atomic
	totalCount   uint64 // atomic
}

// NewEventLog returns a log ready to Start.
func NewEventLog() *EventLog {
	return &EventLog{
		limiter:  rate.NewLimiter(maxEventsPerSec, maxEventsPerSec/10),
		stopChan: make(chan struct{}),
	}
}

// Start opens the output file (empty path means buffer-only operation) and
// launches the writer goroutine.
func (el *EventLog) Start(filePath string) error {
	if el.running.Load() {
		return nil
	}
	el.filePath = filePath
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		el.file = file
	}
	el.running.Store(true)
	el.writerWg.Add(1)
	go el.writerLoop()
	return nil
}

// Stop flushes whatever remains and closes the file. Safe to call twice.
func (el *EventLog) Stop() {
	el.stopOnce.Do(func() {
		el.running.Store(false)
		close(el.stopChan)
		el.writerWg.Wait()

		el.fileMu.Lock()
		if el.file != nil {
			el.file.Close()
		}
		el.fileMu.Unlock()
	})
}

// Emit appends an event to the journal. It returns false if the log is
// stopped or the rate limiter rejected the event; callers treat the journal
// as best-effort and never retry.
func (el *EventLog) Emit(event Event) bool {
	if !el.running.Load() {
		return false
	}
	if !el.limiter.Allow() {
		atomic.AddUint64(&el.droppedCount, 1)
		return false
	}

	head := atomic.AddUint64(&el.writeHead, 1)
	tail := atomic.LoadUint64(&el.readHead)
	if head-tail >= eventBufferSize {
		// overrun: sacrifice the oldest entry, keep the tick unblocked
		atomic.AddUint64(&el.readHead, 1)
		atomic.AddUint64(&el.droppedCount, 1)
	}
	el.buffer[head%eventBufferSize] = event

	atomic.AddUint64(&el.totalCount, 1)
	return true
}

func (el *EventLog) writerLoop() {
	defer el.writerWg.Done()

	ticker := time.NewTicker(batchFlushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, batchFlushSize)
	for {
		select {
		case <-el.stopChan:
			for {
				batch = el.collectBatch(batch[:0])
				if len(batch) == 0 {
					return
				}
				el.flushBatch(batch)
			}
		case <-ticker.C:
			batch = el.collectBatch(batch[:0])
			if len(batch) > 0 {
				el.flushBatch(batch)
			}
		}
	}
}

func (el *EventLog) collectBatch(batch []Event) []Event {
	head := atomic.LoadUint64(&el.writeHead)
	tail := atomic.LoadUint64(&el.readHead)
	for i := tail; i < head && len(batch) < batchFlushSize; i++ {
		batch = append(batch, el.buffer[i%eventBufferSize])
	}
	if len(batch) > 0 {
		atomic.AddUint64(&el.readHead, uint64(len(batch)))
	}
	return batch
}

func (el *EventLog) flushBatch(batch []Event) {
	el.fileMu.Lock()
	defer el.fileMu.Unlock()
	if el.file == nil {
		return
	}
	for _, event := range batch {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		el.file.Write(data)
		el.file.Write([]byte("\n"))
	}
}

// Stats returns journal counters for monitoring.
func (el *EventLog) Stats() map[string]any {
	head := atomic.LoadUint64(&el.writeHead)
	tail := atomic.LoadUint64(&el.readHead)
	return map[string]any{
		"total":   atomic.LoadUint64(&el.totalCount),
		"dropped": atomic.LoadUint64(&el.droppedCount),
		"pending": head - tail,
		"running": el.running.Load(),
	}
}

// DroppedCount returns how many events were sacrificed to rate limiting or
// buffer overrun.
func (el *EventLog) DroppedCount() uint64 {
	return atomic.LoadUint64(&el.droppedCount)
}
