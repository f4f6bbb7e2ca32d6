package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCommand 只注册部分 flag，未注册的键走配置文件和默认值
func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().String("sysinfo-plugins", "", "")
	cmd.Flags().String("exclude-sysinfo-plugins", "", "")
	cmd.Flags().String("log.level", "info", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func noDefaultFiles(t *testing.T) {
	saved := DefaultConfigFiles
	DefaultConfigFiles = nil
	t.Cleanup(func() { DefaultConfigFiles = saved })
}

func TestLoadDefaults(t *testing.T) {
	noDefaultFiles(t)
	cfg, err := LoadConfigWithCli(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig().Sysinfo.Width, cfg.Sysinfo.Width)
	assert.Equal(t, 5*time.Second, cfg.Sysinfo.PluginTimeout)
	assert.Empty(t, cfg.Sysinfo.Plugins)
	assert.Equal(t, 500, cfg.Log.MaxSizeKB)
	assert.Equal(t, 1, cfg.Log.MaxBackup)
}

func TestLoadPluginListsAreTrimmed(t *testing.T) {
	noDefaultFiles(t)
	cfg, err := LoadConfigWithCli(newTestCommand(t, "--sysinfo-plugins", "Load, Disk,", "--exclude-sysinfo-plugins", "Disk"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Load", "Disk"}, cfg.Sysinfo.Plugins)
	assert.Equal(t, []string{"Load"}, cfg.Sysinfo.ActivePlugins(nil))
}

func TestLoadDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.conf")
	require.NoError(t, os.WriteFile(path,
		[]byte("[client]\nurl = https://example.com\n\n[sysinfo]\nexclude_sysinfo_plugins = Temperature\n"), 0644))
	saved := DefaultConfigFiles
	DefaultConfigFiles = []string{filepath.Join(t.TempDir(), "missing.conf"), path}
	t.Cleanup(func() { DefaultConfigFiles = saved })

	cfg, err := LoadConfigWithCli(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Temperature"}, cfg.Sysinfo.ExcludePlugins)
}

func TestLoadYAMLConfigFile(t *testing.T) {
	noDefaultFiles(t)
	path := filepath.Join(t.TempDir(), "sysinfo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sysinfo:
  sysinfo_plugins: Load,Memory
  plugin_timeout: 1500ms
log:
  level: warn
  format: console
`), 0644))

	cfg, err := LoadConfigWithCli(newTestCommand(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, []string{"Load", "Memory"}, cfg.Sysinfo.Plugins)
	assert.Equal(t, 1500*time.Millisecond, cfg.Sysinfo.PluginTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadMissingConfigFile(t *testing.T) {
	noDefaultFiles(t)
	_, err := LoadConfigWithCli(newTestCommand(t, "--config", filepath.Join(t.TempDir(), "nope.conf")))
	assert.Error(t, err)
}

func TestLoadInvalidLevel(t *testing.T) {
	noDefaultFiles(t)
	_, err := LoadConfigWithCli(newTestCommand(t, "--log.level", "verbose"))
	assert.ErrorContains(t, err, "validate config")
}

func TestSysinfoValidate(t *testing.T) {
	cases := []struct {
		name    string
		plugins []string
		exclude []string
		wantErr bool
	}{
		{name: "ok", plugins: []string{"Load", "Disk"}},
		{name: "duplicate", plugins: []string{"Load", "Load"}, wantErr: true},
		{name: "whitespace", exclude: []string{"Lo ad"}, wantErr: true},
		{name: "empty", plugins: []string{""}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewDefaultConfig().Sysinfo
			s.Plugins = tc.plugins
			s.ExcludePlugins = tc.exclude
			err := s.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestActivePlugins(t *testing.T) {
	defaults := []string{"Load", "Disk", "Memory"}
	s := SysinfoConfig{}
	assert.Equal(t, defaults, s.ActivePlugins(defaults))

	s.ExcludePlugins = []string{"Disk", "Memory"}
	assert.Equal(t, []string{"Load"}, s.ActivePlugins(defaults))

	s = SysinfoConfig{Plugins: []string{"Memory", "Load"}, ExcludePlugins: []string{"Disk"}}
	assert.Equal(t, []string{"Memory", "Load"}, s.ActivePlugins(defaults))
}

func TestLogValidate(t *testing.T) {
	l := NewDefaultConfig().Log
	assert.NoError(t, l.Validate())

	l.Format = "xml"
	assert.Error(t, l.Validate())

	l = NewDefaultConfig().Log
	l.MaxSizeKB = 0
	assert.Error(t, l.Validate())
}
