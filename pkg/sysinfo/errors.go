package sysinfo

import "fmt"

// UnknownPluginError 激活时插件名在插件表中不存在
type UnknownPluginError struct {
	Name string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("unknown sysinfo plugin %q", e.Name)
}

// PluginFailure wraps the error of a plugin whose Run failed synchronously or
// whose future was rejected.
type PluginFailure struct {
	Plugin string
	Err    error
}

func (e *PluginFailure) Error() string {
	return fmt.Sprintf("sysinfo plugin %s failed: %v", e.Plugin, e.Err)
}

func (e *PluginFailure) Unwrap() error { return e.Err }
