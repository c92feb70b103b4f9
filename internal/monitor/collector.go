// Package monitor keeps in-process timing and error counts for server operations.
package monitor

import (
	"sort"
	"sync"
	"time"
)

// Snapshot is a point-in-time view of every metric
type Snapshot struct {
	Timestamp  time.Time          `json:"timestamp"`
	Uptime     string             `json:"uptime"`
	Memory     MemoryMetrics      `json:"memory"`
	Runtime    RuntimeMetrics     `json:"runtime"`
	Operations []OperationMetrics `json:"operations"`
}

type operation struct {
	timer  *Timer
	errors Counter
}

// Collector records durations and failures per operation
type Collector struct {
	mu         sync.RWMutex
	operations map[string]*operation
	started    time.Time
	now        func() time.Time
}

// New creates a collector
func New() *Collector {
	return &Collector{
		operations: make(map[string]*operation),
		started:    time.Now(),
		now:        time.Now,
	}
}

// Record adds one measurement for name
func (c *Collector) Record(name string, duration time.Duration, failed bool) {
	c.mu.RLock()
	op, ok := c.operations[name]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		if op, ok = c.operations[name]; !ok {
			op = &operation{timer: NewTimer()}
			c.operations[name] = op
		}
		c.mu.Unlock()
	}

	op.timer.Record(duration)
	if failed {
		op.errors.Inc()
	}
}

// Track times fn and records it under name
func (c *Collector) Track(name string, fn func() error) error {
	start := c.now()
	err := fn()
	c.Record(name, c.now().Sub(start), err != nil)
	return err
}

// Snapshot returns current metrics with operations sorted by name
func (c *Collector) Snapshot() Snapshot {
	now := c.now()
	snapshot := Snapshot{
		Timestamp: now,
		Uptime:    now.Sub(c.started).Round(time.Second).String(),
		Memory:    collectMemory(),
		Runtime:   collectRuntime(),
	}

	c.mu.RLock()
	operations := make([]OperationMetrics, 0, len(c.operations))
	for name, op := range c.operations {
		count := op.timer.Count()
		errors := op.errors.Get()
		operations = append(operations, OperationMetrics{
			Operation:    name,
			Count:        count,
			TotalTime:    op.timer.TotalTime().Nanoseconds(),
			MinTime:      op.timer.MinTime().Nanoseconds(),
			MaxTime:      op.timer.MaxTime().Nanoseconds(),
			AvgTime:      op.timer.AvgTime().Nanoseconds(),
			ErrorCount:   errors,
			SuccessCount: count - errors,
		})
	}
	c.mu.RUnlock()

	sort.Slice(operations, func(i, j int) bool { return operations[i].Operation < operations[j].Operation })
	snapshot.Operations = operations
	return snapshot
}
