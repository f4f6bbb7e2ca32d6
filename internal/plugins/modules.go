package plugins

import (
	"github.com/landscape-sysinfo/pkg/config"
	"github.com/landscape-sysinfo/pkg/sysinfo"
)

// Module 插件登记项
type Module struct {
	Name    string
	NewFunc func(cfg config.SysinfoConfig) sysinfo.Plugin
	// Default 未配置 sysinfo_plugins 时是否启用
	Default bool
}

// modules 内置插件，顺序即默认激活顺序
var modules = []Module{
	{Name: "Load", Default: true, NewFunc: func(cfg config.SysinfoConfig) sysinfo.Plugin { return NewLoad(cfg.PluginTimeout) }},
	{Name: "Disk", Default: true, NewFunc: func(cfg config.SysinfoConfig) sysinfo.Plugin { return NewDisk(cfg.PluginTimeout) }},
	{Name: "Memory", Default: true, NewFunc: func(cfg config.SysinfoConfig) sysinfo.Plugin { return NewMemory(cfg.PluginTimeout) }},
	{Name: "Temperature", Default: true, NewFunc: func(cfg config.SysinfoConfig) sysinfo.Plugin { return NewTemperature(cfg.PluginTimeout) }},
	{Name: "Processes", Default: true, NewFunc: func(cfg config.SysinfoConfig) sysinfo.Plugin { return NewProcesses(cfg.PluginTimeout) }},
	{Name: "LoggedInUsers", Default: true, NewFunc: func(cfg config.SysinfoConfig) sysinfo.Plugin { return NewLoggedInUsers(cfg.PluginTimeout) }},
	{Name: "Network", Default: true, NewFunc: func(cfg config.SysinfoConfig) sysinfo.Plugin { return NewNetwork(cfg.PluginTimeout) }},
	{Name: "TestPlugin", Default: false, NewFunc: func(config.SysinfoConfig) sysinfo.Plugin { return NewTestPlugin() }},
}

// Modules 返回全部内置插件登记项（副本）
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// Available builds the constructor table for every built-in plugin.
func Available(cfg config.SysinfoConfig) sysinfo.PluginTable {
	table := make(sysinfo.PluginTable, len(modules))
	for _, m := range modules {
		table[m.Name] = func() sysinfo.Plugin { return m.NewFunc(cfg) }
	}
	return table
}

// Defaults 默认激活的插件名（按激活顺序）
func Defaults() []string {
	var names []string
	for _, m := range modules {
		if m.Default {
			names = append(names, m.Name)
		}
	}
	return names
}
