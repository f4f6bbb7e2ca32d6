package plugins

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/landscape-sysinfo/pkg/future"
)

// DiskUsageThreshold 超过该使用率（百分比）的挂载点会输出提示
const DiskUsageThreshold = 85.0

// mountUsage 单个挂载点的使用情况
type mountUsage struct {
	Mountpoint string
	Total      uint64
	Used       uint64
}

func (m mountUsage) usedPercent() float64 {
	return float64(m.Used) / float64(m.Total) * 100
}

func (m mountUsage) describe() string {
	return fmt.Sprintf("%.1f%% of %s", m.usedPercent(), formatMegabytes(bytesToMegabytes(m.Total)))
}

// Disk 根分区使用率，以及接近写满的其他挂载点
type Disk struct {
	base
	usage func(ctx context.Context) ([]mountUsage, error)
}

// NewDisk 创建 Disk 插件
func NewDisk(timeout time.Duration) *Disk {
	return &Disk{base: newBase("Disk", timeout), usage: diskUsage}
}

func (p *Disk) Run(ctx context.Context) (*future.Future, error) {
	return collect(ctx, &p.base, p.usage, func(mounts []mountUsage) {
		root := "unknown"
		for _, m := range mounts {
			if m.Mountpoint == "/" {
				root = m.describe()
				break
			}
		}
		p.sysinfo.AddHeader("Usage of /", root)
		for _, m := range mounts {
			if m.usedPercent() > DiskUsageThreshold {
				p.sysinfo.AddNote(fmt.Sprintf("%s is using %s", m.Mountpoint, m.describe()))
			}
		}
	}), nil
}

// diskUsage 读取物理分区，跳过重复挂载点和容量为 0 的文件系统
func diskUsage(ctx context.Context) ([]mountUsage, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(parts))
	out := make([]mountUsage, 0, len(parts))
	for _, part := range parts {
		if seen[part.Mountpoint] {
			continue
		}
		seen[part.Mountpoint] = true
		u, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil || u.Total == 0 {
			continue
		}
		out = append(out, mountUsage{Mountpoint: part.Mountpoint, Total: u.Total, Used: u.Used})
	}
	return out, nil
}
