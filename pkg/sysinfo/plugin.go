// Package sysinfo holds the plugin contract, the registry that runs activated
// plugins and the text layout of their output.
package sysinfo

import (
	"context"
	"sort"

	"github.com/landscape-sysinfo/pkg/future"
)

// Header 报告头部的一项（名称 + 值）
type Header struct {
	Name  string
	Value string
}

// Sysinfo is the handle a plugin receives at registration. Everything added
// through it lands in the plugin's own slot of the registry output, so the
// final sequences follow activation order whatever order plugins finish in.
//
// Add* must be called on the loop goroutine, which is where Run and every
// Offload callback execute.
type Sysinfo interface {
	AddHeader(name, value string)
	AddNote(note string)
	AddFootnote(note string)
	// Offload runs blocking work away from the loop. The returned future
	// settles on the loop goroutine.
	Offload(fn func() error) *future.Future
}

// Plugin collects one diagnostic fact.
type Plugin interface {
	Name() string
	// Register is called once, before Run. It must not add output.
	Register(s Sysinfo)
	// Run performs the plugin's work. A nil future means the plugin has
	// already finished; a returned error or a panic is a synchronous failure.
	Run(ctx context.Context) (*future.Future, error)
}

// Constructor 插件构造函数
type Constructor func() Plugin

// PluginTable 插件名 -> 构造函数
type PluginTable map[string]Constructor

// Names returns the table's plugin names in sorted order.
func (t PluginTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
