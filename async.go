package perfmon

import "go.uber.org/zap"

// Async variants of the read operations. The underlying work is bounded and
// short; these exist so UI-adjacent callers never block their own goroutine.
// The callback runs on a separate goroutine, and a panicking callback is
// recovered and logged rather than crashing the process.

// CurrentFPSAsync delivers CurrentFPS through fn off the calling goroutine.
func (m *Monitor) CurrentFPSAsync(fn func(float64)) {
	m.dispatch(func() { fn(m.CurrentFPS()) })
}

// MemoryUsageMBAsync delivers MemoryUsageMB through fn off the calling
// goroutine.
func (m *Monitor) MemoryUsageMBAsync(fn func(float64)) {
	m.dispatch(func() { fn(m.MemoryUsageMB()) })
}

// IsDegradedAsync delivers IsDegraded through fn off the calling goroutine.
func (m *Monitor) IsDegradedAsync(fn func(bool)) {
	m.dispatch(func() { fn(m.IsDegraded()) })
}

func (m *Monitor) dispatch(run func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("metric callback panicked", zap.Any("panic", r))
			}
		}()
		run()
	}()
}
