package plugins

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/landscape-sysinfo/pkg/future"
)

// Temperature 最高的传感器温度
type Temperature struct {
	base
	sensors func(ctx context.Context) ([]host.TemperatureStat, error)
}

// NewTemperature 创建 Temperature 插件
func NewTemperature(timeout time.Duration) *Temperature {
	return &Temperature{base: newBase("Temperature", timeout), sensors: sensorTemperatures}
}

func (p *Temperature) Run(ctx context.Context) (*future.Future, error) {
	return collect(ctx, &p.base, p.sensors, func(temps []host.TemperatureStat) {
		if len(temps) == 0 {
			return
		}
		highest := temps[0].Temperature
		for _, t := range temps[1:] {
			highest = max(highest, t.Temperature)
		}
		p.sysinfo.AddHeader("Temperature", fmt.Sprintf("%.1f C", highest))
	}), nil
}

// sensorTemperatures 部分传感器读取失败时 gopsutil 仍返回已读到的数据
func sensorTemperatures(ctx context.Context) ([]host.TemperatureStat, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil && len(temps) == 0 {
		return nil, err
	}
	return temps, nil
}
