package monitoring

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metric names reported by obfx-gen.
const (
	MetricLiteralsSealed = "literals_sealed"
	MetricWordsEmitted   = "words_emitted"
	MetricFilesWritten   = "files_written"
	MetricFilesSkipped   = "files_skipped"
	MetricFileDuration   = "file_duration"
)

// MetricsCollector receives counters and timings.
type MetricsCollector interface {
	IncrementCounter(name string, tags map[string]string)
	IncrementCounterBy(name string, value int64, tags map[string]string)
	RecordTiming(name string, duration time.Duration, tags map[string]string)
}

// NoOpMetricsCollector discards everything.
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) IncrementCounter(name string, tags map[string]string)                {}
func (n *NoOpMetricsCollector) IncrementCounterBy(name string, value int64, tags map[string]string) {}
func (n *NoOpMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
}

// InMemoryMetricsCollector keeps metrics in memory for the run summary and
// for tests.
type InMemoryMetricsCollector struct {
	mu       sync.RWMutex
	counters map[string]*int64
	timings  map[string][]time.Duration
}

// NewInMemoryMetricsCollector creates a new in-memory metrics collector
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{
		counters: make(map[string]*int64),
		timings:  make(map[string][]time.Duration),
	}
}

func (m *InMemoryMetricsCollector) IncrementCounter(name string, tags map[string]string) {
	m.IncrementCounterBy(name, 1, tags)
}

func (m *InMemoryMetricsCollector) IncrementCounterBy(name string, value int64, tags map[string]string) {
	key := keyWithTags(name, tags)
	m.mu.Lock()
	counter, exists := m.counters[key]
	if !exists {
		counter = new(int64)
		m.counters[key] = counter
	}
	m.mu.Unlock()
	atomic.AddInt64(counter, value)
}

func (m *InMemoryMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
	key := keyWithTags(name, tags)
	m.mu.Lock()
	m.timings[key] = append(m.timings[key], duration)
	m.mu.Unlock()
}

// GetCounter returns the value of a counter
func (m *InMemoryMetricsCollector) GetCounter(name string, tags map[string]string) int64 {
	key := keyWithTags(name, tags)
	m.mu.RLock()
	counter, exists := m.counters[key]
	m.mu.RUnlock()
	if !exists {
		return 0
	}
	return atomic.LoadInt64(counter)
}

// GetTimings returns all recorded timings
func (m *InMemoryMetricsCollector) GetTimings(name string, tags map[string]string) []time.Duration {
	key := keyWithTags(name, tags)
	m.mu.RLock()
	defer m.mu.RUnlock()
	timings := make([]time.Duration, len(m.timings[key]))
	copy(timings, m.timings[key])
	return timings
}

// Summary renders every counter and the total of every timing, one per
// line, in key order.
func (m *InMemoryMetricsCollector) Summary() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lines := make([]string, 0, len(m.counters)+len(m.timings))
	for key, counter := range m.counters {
		lines = append(lines, fmt.Sprintf("%s %d", key, atomic.LoadInt64(counter)))
	}
	for key, timings := range m.timings {
		var total time.Duration
		for _, d := range timings {
			total += d
		}
		lines = append(lines, fmt.Sprintf("%s %s", key, total))
	}
	sort.Strings(lines)
	return lines
}

// Reset clears all metrics
func (m *InMemoryMetricsCollector) Reset() {
	m.mu.Lock()
	m.counters = make(map[string]*int64)
	m.timings = make(map[string][]time.Duration)
	m.mu.Unlock()
}

func keyWithTags(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := name
	for _, k := range keys {
		result += "," + k + "=" + tags[k]
	}
	return result
}

// GenerationMetrics records generator events on a collector.
type GenerationMetrics struct {
	collector MetricsCollector
}

// NewGenerationMetrics wraps c. A nil collector discards everything.
func NewGenerationMetrics(c MetricsCollector) *GenerationMetrics {
	if c == nil {
		c = &NoOpMetricsCollector{}
	}
	return &GenerationMetrics{collector: c}
}

// Sealed counts one sealed literal and the words it produced.
func (g *GenerationMetrics) Sealed(level, profile string, words int) {
	tags := map[string]string{"level": level, "profile": profile}
	g.collector.IncrementCounter(MetricLiteralsSealed, tags)
	g.collector.IncrementCounterBy(MetricWordsEmitted, int64(words), nil)
}

// FileWritten counts a generated file and how long it took.
func (g *GenerationMetrics) FileWritten(duration time.Duration) {
	g.collector.IncrementCounter(MetricFilesWritten, nil)
	g.collector.RecordTiming(MetricFileDuration, duration, nil)
}

// FileSkipped counts a file left untouched, tagged with why.
func (g *GenerationMetrics) FileSkipped(reason string) {
	g.collector.IncrementCounter(MetricFilesSkipped, map[string]string{"reason": reason})
}
