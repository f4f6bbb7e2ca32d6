package plugins

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/landscape-sysinfo/pkg/future"
)

type processCount struct {
	Total   int
	Zombies int
}

// Processes 进程数与僵尸进程提示
type Processes struct {
	base
	count func(ctx context.Context) (processCount, error)
}

// NewProcesses 创建 Processes 插件
func NewProcesses(timeout time.Duration) *Processes {
	return &Processes{base: newBase("Processes", timeout), count: countProcesses}
}

func (p *Processes) Run(ctx context.Context) (*future.Future, error) {
	return collect(ctx, &p.base, p.count, func(c processCount) {
		p.sysinfo.AddHeader("Processes", strconv.Itoa(c.Total))
		switch {
		case c.Zombies == 1:
			p.sysinfo.AddNote("There is 1 zombie process.")
		case c.Zombies > 1:
			p.sysinfo.AddNote(fmt.Sprintf("There are %d zombie processes.", c.Zombies))
		}
	}), nil
}

func countProcesses(ctx context.Context) (processCount, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return processCount{}, err
	}
	c := processCount{Total: len(procs)}
	for _, proc := range procs {
		// 进程可能在遍历期间退出
		status, err := proc.StatusWithContext(ctx)
		if err != nil {
			continue
		}
		if slices.Contains(status, process.Zombie) {
			c.Zombies++
		}
	}
	return c, nil
}
