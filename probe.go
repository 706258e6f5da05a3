package perfmon

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// MemoryProbe reports the resident memory of the current process. Every call
// is a fresh OS query; callers that need to bound the sampling cost wrap the
// probe in a cache. A failed query is recoverable: consumers fall back to
// their last known reading.
type MemoryProbe interface {
	ResidentBytes() (uint64, error)
}

// residentMemoryProbe queries the process's resident set size through
// gopsutil, which picks the appropriate backend for the target OS.
type residentMemoryProbe struct {
	proc *process.Process
}

func newResidentMemoryProbe() (*residentMemoryProbe, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process handle: %w", err)
	}
	return &residentMemoryProbe{proc: proc}, nil
}

func (p *residentMemoryProbe) ResidentBytes() (uint64, error) {
	info, err := p.proc.MemoryInfo()
	if err != nil {
		return 0, fmt.Errorf("query memory info: %w", err)
	}
	return info.RSS, nil
}
