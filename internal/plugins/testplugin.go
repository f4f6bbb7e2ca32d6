package plugins

import (
	"context"

	"github.com/landscape-sysinfo/pkg/future"
)

// TestPlugin contributes one fixed header, note and footnote. It is not
// activated by default and exists to check the report end to end.
type TestPlugin struct {
	base
}

// NewTestPlugin 创建 TestPlugin
func NewTestPlugin() *TestPlugin {
	return &TestPlugin{base: newBase("TestPlugin", 0)}
}

func (p *TestPlugin) Run(context.Context) (*future.Future, error) {
	p.sysinfo.AddHeader("Test header", "Test value")
	p.sysinfo.AddNote("Test note")
	p.sysinfo.AddFootnote("Test footnote")
	return nil, nil
}
