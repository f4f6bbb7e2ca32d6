package plugins

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/landscape-sysinfo/pkg/future"
)

type memoryStat struct {
	MemoryPercent float64
	SwapTotal     uint64
	SwapPercent   float64
}

// Memory 内存与交换分区使用率
type Memory struct {
	base
	stat func(ctx context.Context) (memoryStat, error)
}

// NewMemory 创建 Memory 插件
func NewMemory(timeout time.Duration) *Memory {
	return &Memory{base: newBase("Memory", timeout), stat: memoryUsage}
}

func (p *Memory) Run(ctx context.Context) (*future.Future, error) {
	return collect(ctx, &p.base, p.stat, func(s memoryStat) {
		p.sysinfo.AddHeader("Memory usage", percent(s.MemoryPercent))
		swap := 0.0
		if s.SwapTotal > 0 {
			swap = s.SwapPercent
		}
		p.sysinfo.AddHeader("Swap usage", percent(swap))
	}), nil
}

func memoryUsage(ctx context.Context) (memoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return memoryStat{}, err
	}
	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return memoryStat{}, err
	}
	return memoryStat{
		MemoryPercent: vm.UsedPercent,
		SwapTotal:     swap.Total,
		SwapPercent:   swap.UsedPercent,
	}, nil
}
