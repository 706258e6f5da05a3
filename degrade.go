package perfmon

// degraded reports whether either metric has crossed its configured
// threshold. Comparisons are strict: a reading exactly equal to its
// threshold does not count as degraded. The memory threshold is expressed
// in megabytes.
func degraded(fps, memoryMB, fpsThreshold, memoryThresholdMB float64) bool {
	return fps < fpsThreshold || memoryMB > memoryThresholdMB
}
