package perfmon

import "time"

// estimateFPS derives an average frame rate from a chronological sequence of
// frame timestamps: (n-1) frame intervals divided by the time elapsed between
// the first and last sample. Averaging over the window deliberately smooths
// out single-frame spikes.
//
// Fewer than two samples, or zero elapsed time between the first and last
// sample, yields 0 rather than a division by zero.
func estimateFPS(samples []time.Time) float64 {
	if len(samples) < 2 {
		return 0
	}
	elapsed := samples[len(samples)-1].Sub(samples[0]).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(len(samples)-1) / elapsed
}
