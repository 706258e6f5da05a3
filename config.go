package perfmon

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Defaults applied by DefaultConfig. The FPS cache is short because a
// recompute is pure arithmetic over in-memory samples; the memory cache is
// longer because a recompute costs a syscall.
const (
	DefaultMaxFrameHistory     = 120
	DefaultFPSSampleWindow     = 60
	DefaultFPSThreshold        = 30.0
	DefaultMemoryThresholdMB   = 500.0
	DefaultFPSCacheTTL         = 100 * time.Millisecond
	DefaultMemoryCacheTTL      = 500 * time.Millisecond
	DefaultDegradationCacheTTL = 500 * time.Millisecond
)

// Config controls the monitor's sampling window, degradation thresholds and
// cache lifetimes. Thresholds and sizes are fixed at construction; there is
// no runtime reconfiguration. A zero Config is not usable; start from
// DefaultConfig and override fields as needed.
type Config struct {
	// MaxFrameHistory is the capacity of the frame timestamp ring.
	MaxFrameHistory int `json:"max_frame_history"`

	// FPSSampleWindow is how many of the most recent frames the FPS
	// estimate averages over. Must not exceed MaxFrameHistory.
	FPSSampleWindow int `json:"fps_sample_window"`

	// FPSThreshold is the frame rate below which the monitor reports
	// degradation. Strictly below: hitting the threshold exactly is fine.
	FPSThreshold float64 `json:"fps_threshold"`

	// MemoryThresholdMB is the resident memory above which the monitor
	// reports degradation. Strictly above, in megabytes.
	MemoryThresholdMB float64 `json:"memory_threshold_mb"`

	FPSCacheTTL         time.Duration `json:"fps_cache_ttl"`
	MemoryCacheTTL      time.Duration `json:"memory_cache_ttl"`
	DegradationCacheTTL time.Duration `json:"degradation_cache_ttl"`

	// Probe overrides the OS-backed memory probe. Nil selects the gopsutil
	// implementation for the current process.
	Probe MemoryProbe `json:"-"`

	// Logger receives probe-failure warnings. Nil keeps the monitor silent.
	Logger *zap.Logger `json:"-"`
}

// DefaultConfig returns a configuration suitable for a 60 fps render loop:
// two seconds of frame history, FPS averaged over the most recent second.
func DefaultConfig() Config {
	return Config{
		MaxFrameHistory:     DefaultMaxFrameHistory,
		FPSSampleWindow:     DefaultFPSSampleWindow,
		FPSThreshold:        DefaultFPSThreshold,
		MemoryThresholdMB:   DefaultMemoryThresholdMB,
		FPSCacheTTL:         DefaultFPSCacheTTL,
		MemoryCacheTTL:      DefaultMemoryCacheTTL,
		DegradationCacheTTL: DefaultDegradationCacheTTL,
	}
}

// Validate reports the first configuration error found. Every violation is a
// construction-time failure; a config that validates never fails later.
func (c Config) Validate() error {
	if c.MaxFrameHistory <= 0 {
		return fmt.Errorf("max frame history must be positive, got %d", c.MaxFrameHistory)
	}
	if c.FPSSampleWindow <= 0 {
		return fmt.Errorf("fps sample window must be positive, got %d", c.FPSSampleWindow)
	}
	if c.FPSSampleWindow > c.MaxFrameHistory {
		return fmt.Errorf("fps sample window %d exceeds frame history %d", c.FPSSampleWindow, c.MaxFrameHistory)
	}
	if c.FPSThreshold < 0 {
		return fmt.Errorf("fps threshold must not be negative, got %g", c.FPSThreshold)
	}
	if c.MemoryThresholdMB < 0 {
		return fmt.Errorf("memory threshold must not be negative, got %g MB", c.MemoryThresholdMB)
	}
	if c.FPSCacheTTL < 0 || c.MemoryCacheTTL < 0 || c.DegradationCacheTTL < 0 {
		return fmt.Errorf("cache TTLs must not be negative")
	}
	return nil
}
