package monitor

import (
	"runtime"
	"sync/atomic"
	"time"
)

// MemoryMetrics holds memory-related runtime metrics
type MemoryMetrics struct {
	CurrentAlloc uint64 `json:"current_alloc"` // bytes currently allocated
	TotalAlloc   uint64 `json:"total_alloc"`   // total bytes allocated
	Sys          uint64 `json:"sys"`           // total bytes from system
	NumGC        uint32 `json:"num_gc"`        // number of garbage collections
	HeapInuse    uint64 `json:"heap_inuse"`    // bytes in in-use spans
}

// RuntimeMetrics holds scheduler-related metrics
type RuntimeMetrics struct {
	NumGoroutines int `json:"num_goroutines"`
	NumCPU        int `json:"num_cpu"`
}

// OperationMetrics holds metrics for one operation, e.g. a route
type OperationMetrics struct {
	Operation    string `json:"operation"`
	Count        int64  `json:"count"`
	TotalTime    int64  `json:"total_time_ns"`
	MinTime      int64  `json:"min_time_ns"`
	MaxTime      int64  `json:"max_time_ns"`
	AvgTime      int64  `json:"avg_time_ns"`
	ErrorCount   int64  `json:"error_count"`
	SuccessCount int64  `json:"success_count"`
}

// Counter is a thread-safe counter metric
type Counter struct {
	value int64
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

const noMin = int64(^uint64(0) >> 1)

// Timer is a thread-safe timer for measuring operation durations
type Timer struct {
	count     int64
	totalTime int64
	minTime   int64
	maxTime   int64
}

// NewTimer creates a new timer metric
func NewTimer() *Timer {
	return &Timer{minTime: noMin}
}

// Record records a duration measurement
func (t *Timer) Record(duration time.Duration) {
	nanos := duration.Nanoseconds()

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)

	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current || atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}
	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current || atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Count returns the number of recorded measurements
func (t *Timer) Count() int64 {
	return atomic.LoadInt64(&t.count)
}

// TotalTime returns the total time of all measurements
func (t *Timer) TotalTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.totalTime))
}

// MinTime returns the minimum recorded time
func (t *Timer) MinTime() time.Duration {
	minTime := atomic.LoadInt64(&t.minTime)
	if minTime == noMin {
		return 0
	}
	return time.Duration(minTime)
}

// MaxTime returns the maximum recorded time
func (t *Timer) MaxTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.maxTime))
}

// AvgTime returns the average time of all measurements
func (t *Timer) AvgTime() time.Duration {
	count := atomic.LoadInt64(&t.count)
	if count == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&t.totalTime) / count)
}

func collectMemory() MemoryMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemoryMetrics{
		CurrentAlloc: m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		HeapInuse:    m.HeapInuse,
	}
}

func collectRuntime() RuntimeMetrics {
	return RuntimeMetrics{
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
	}
}
