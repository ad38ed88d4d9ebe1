package utils

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
}

// GetSystemStats samples CPU over the given interval. Failures leave the
// corresponding fields at zero.
func GetSystemStats(ctx context.Context, interval time.Duration) SystemStats {
	var s SystemStats

	if pct, err := cpu.PercentWithContext(ctx, interval, false); err != nil {
		Logger.WithError(err).Warn("cpu usage unavailable")
	} else if len(pct) > 0 {
		s.CPUPercent = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		Logger.WithError(err).Warn("memory usage unavailable")
	} else {
		s.MemoryPercent = vm.UsedPercent
		s.MemoryUsedMB = vm.Used / 1024 / 1024
	}
	return s
}
