//go:build !windows

package debug

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// residentSetSize returns the RSS of the current process.
func residentSetSize() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mi, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mi.RSS, nil
}
