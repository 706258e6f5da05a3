// Package perfmon samples frame render cadence and process resident memory,
// derives frame-rate and degradation signals from those samples, and caches
// the derived values so frequent queries stay cheap.
package perfmon

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Monitor samples frame render cadence and process resident memory, and
// answers cheap, cached queries about the current health of the process.
//
// One goroutine, typically the render or update loop, calls RecordFrame
// once per tick. Any number of goroutines may call the read methods
// concurrently. Each mutable structure carries its own lock, and the memory
// syscall is never made while the frame ring's lock is held, so no read
// blocks longer than a short critical section.
//
// Construct one per subsystem that needs performance visibility and pass it
// along explicitly; it is deliberately not a process-wide singleton.
type Monitor struct {
	cfg    Config
	ring   *frameRing
	probe  MemoryProbe
	logger *zap.Logger

	fpsCache     *cachedMetric[float64]
	memoryCache  *cachedMetric[memoryReading]
	degradeCache *cachedMetric[bool]

	lastMemoryBytes atomic.Uint64
	probeFailures   atomic.Uint64

	// now is replaced in tests that need a deterministic clock.
	now func() time.Time
}

// memoryReading is the outcome of the most recent memory refresh. ok is
// false when the probe failed and bytes carries the previous good reading
// (zero before the first success).
type memoryReading struct {
	bytes uint64
	ok    bool
}

// Stats is a point-in-time view of every derived metric, for overlays and
// diagnostics.
type Stats struct {
	FPS           float64   `json:"fps"`
	MemoryMB      float64   `json:"memory_mb"`
	Degraded      bool      `json:"degraded"`
	SampleCount   int       `json:"sample_count"`
	ProbeFailures uint64    `json:"probe_failures"`
	Timestamp     time.Time `json:"timestamp"`
}

// New constructs a Monitor, failing fast on invalid configuration. The
// returned monitor never panics at runtime: probe failures degrade to the
// last known reading.
func New(cfg Config) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("perfmon config: %w", err)
	}

	probe := cfg.Probe
	if probe == nil {
		p, err := newResidentMemoryProbe()
		if err != nil {
			return nil, fmt.Errorf("perfmon memory probe: %w", err)
		}
		probe = p
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Monitor{
		cfg:          cfg,
		ring:         newFrameRing(cfg.MaxFrameHistory),
		probe:        probe,
		logger:       logger,
		fpsCache:     newCachedMetric[float64](cfg.FPSCacheTTL),
		memoryCache:  newCachedMetric[memoryReading](cfg.MemoryCacheTTL),
		degradeCache: newCachedMetric[bool](cfg.DegradationCacheTTL),
		now:          time.Now,
	}, nil
}

// RecordFrame notes that a frame finished rendering. Call it exactly once
// per tick from the render loop; it is the frame ring's single writer.
func (m *Monitor) RecordFrame() {
	m.ring.record(m.now())
}

// CurrentFPS returns the average frame rate over the configured sample
// window, recomputing at most once per FPS cache TTL. Fewer than two
// recorded frames yields 0.
func (m *Monitor) CurrentFPS() float64 {
	return m.fpsCache.get(m.now(), func() float64 {
		return estimateFPS(m.ring.recent(m.cfg.FPSSampleWindow))
	})
}

// MemoryUsageMB returns the process's resident memory in megabytes. A cache
// miss costs one OS query; a failed query serves the previous reading (or 0
// before the first success) and bumps the failure counter.
func (m *Monitor) MemoryUsageMB() float64 {
	return bytesToMB(m.sampleMemory().bytes)
}

// IsDegraded reports whether the frame rate has dropped below, or resident
// memory has climbed above, its configured threshold. The combined signal
// has its own TTL so bursts of callers share one evaluation.
func (m *Monitor) IsDegraded() bool {
	return m.degradeCache.get(m.now(), func() bool {
		return degraded(m.CurrentFPS(), m.MemoryUsageMB(), m.cfg.FPSThreshold, m.cfg.MemoryThresholdMB)
	})
}

// ProbeFailures returns how many OS memory queries have failed since
// construction.
func (m *Monitor) ProbeFailures() uint64 {
	return m.probeFailures.Load()
}

// Snapshot gathers all derived metrics in one call.
func (m *Monitor) Snapshot() Stats {
	return Stats{
		FPS:           m.CurrentFPS(),
		MemoryMB:      m.MemoryUsageMB(),
		Degraded:      m.IsDegraded(),
		SampleCount:   m.ring.size(),
		ProbeFailures: m.ProbeFailures(),
		Timestamp:     m.now(),
	}
}

func (m *Monitor) sampleMemory() memoryReading {
	return m.memoryCache.get(m.now(), m.refreshMemory)
}

// refreshMemory performs the OS query. It runs under the memory cache's own
// lock only, never under the frame ring's lock, so a slow syscall cannot
// stall RecordFrame.
func (m *Monitor) refreshMemory() memoryReading {
	bytes, err := m.probe.ResidentBytes()
	if err != nil {
		failures := m.probeFailures.Add(1)
		m.logger.Warn("memory probe failed, serving last known reading",
			zap.Error(err),
			zap.Uint64("failures", failures))
		return memoryReading{bytes: m.lastMemoryBytes.Load(), ok: false}
	}
	m.lastMemoryBytes.Store(bytes)
	return memoryReading{bytes: bytes, ok: true}
}

func bytesToMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
