package plugins

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/load"

	"github.com/landscape-sysinfo/pkg/future"
)

// Load 1 分钟平均负载
type Load struct {
	base
	average func(ctx context.Context) (*load.AvgStat, error)
}

// NewLoad 创建 Load 插件
func NewLoad(timeout time.Duration) *Load {
	return &Load{base: newBase("Load", timeout), average: load.AvgWithContext}
}

func (p *Load) Run(ctx context.Context) (*future.Future, error) {
	return collect(ctx, &p.base, p.average, func(avg *load.AvgStat) {
		p.sysinfo.AddHeader("System load", fmt.Sprintf("%.2f", avg.Load1))
	}), nil
}
