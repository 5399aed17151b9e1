package capture

import (
	"errors"

	"github.com/shirou/gopsutil/v3/process"
)

var errEncoderNotRunning = errors.New("capture: encoder process not running")

// ProcessStats samples CPU and resident memory of the running encoder.
func (e *FFmpegEncoder) ProcessStats() (ProcessStats, error) {
	pid := e.pid.Load()
	if pid == 0 || e.exited.Load() {
		return ProcessStats{}, errEncoderNotRunning
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ProcessStats{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	return ProcessStats{CPUPercent: cpu, RSSBytes: mem.RSS}, nil
}
