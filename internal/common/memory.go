package common

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessRSSMB returns the current process resident set size in megabytes.
// Sampling failures are tolerated; ok is false when no reading was possible.
func ProcessRSSMB() (float64, bool) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, false
	}

	info, err := p.MemoryInfo()
	if err != nil || info == nil {
		return 0, false
	}

	return float64(info.RSS) / (1024 * 1024), true
}
