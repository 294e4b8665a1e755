package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Status is the outcome of one command execution.
type Status uint8

const (
	// StatusChanged means the command produced a new snapshot.
	StatusChanged Status = iota
	// StatusNoChange means the command left the document as it was.
	StatusNoChange
	// StatusError means the command was unknown or panicked.
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusChanged:
		return "changed"
	case StatusNoChange:
		return "nochange"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Metrics collects execution statistics.
type Metrics struct {
	mu sync.RWMutex

	commands map[string]*CommandMetrics

	totalExecutions uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// CommandMetrics holds metrics for one command.
type CommandMetrics struct {
	ID             string
	ExecutionCount uint64
	ChangeCount    uint64
	ErrorCount     uint64
	TotalDuration  time.Duration
	MinDuration    time.Duration
	MaxDuration    time.Duration
	LastStatus     Status
	LastExecution  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commands: make(map[string]*CommandMetrics),
	}
}

// RecordExecution records one execution of command id.
func (m *Metrics) RecordExecution(id string, duration time.Duration, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalExecutions++
	m.totalDuration += duration
	if status == StatusError {
		m.totalErrors++
	}

	cm := m.commands[id]
	if cm == nil {
		cm = &CommandMetrics{
			ID:          id,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.commands[id] = cm
	}

	cm.ExecutionCount++
	cm.TotalDuration += duration
	cm.LastStatus = status
	cm.LastExecution = time.Now()
	cm.MinDuration = min(cm.MinDuration, duration)
	cm.MaxDuration = max(cm.MaxDuration, duration)

	switch status {
	case StatusChanged:
		cm.ChangeCount++
	case StatusError:
		cm.ErrorCount++
	}
}

// RecordPanic records a recovered panic.
func (m *Metrics) RecordPanic(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalExecutions returns the number of recorded executions.
func (m *Metrics) TotalExecutions() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalExecutions
}

// TotalErrors returns the number of failed executions.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the number of recovered panics.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the mean execution time.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalExecutions == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalExecutions)
}

// CommandStats returns a copy of the metrics for command id, or nil.
func (m *Metrics) CommandStats(id string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commands[id]
	if cm == nil {
		return nil
	}
	c := *cm
	return &c
}

// TopCommands returns the n most executed commands.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*CommandMetrics, 0, len(m.commands))
	for _, cm := range m.commands {
		c := *cm
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExecutionCount != out[j].ExecutionCount {
			return out[i].ExecutionCount > out[j].ExecutionCount
		}
		return out[i].ID < out[j].ID
	})
	return out[:min(n, len(out))]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = make(map[string]*CommandMetrics)
	m.totalExecutions = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}
