package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/encoding/ini"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var valid = validator.New()

// DefaultConfigFiles 未指定 --config 时依次查找的配置文件（取第一个存在的）
var DefaultConfigFiles = []string{"/etc/landscape/client.conf"}

// Config 全局配置结构体（聚合所有核心模块）
type Config struct {
	Sysinfo SysinfoConfig `yaml:"sysinfo" mapstructure:"sysinfo" comment:"插件选择与报告布局"`
	Log     ZapLogConfig  `yaml:"log" mapstructure:"log" comment:"日志配置"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics" comment:"指标输出"`
}

// SysinfoConfig 插件激活配置，键名沿用 [sysinfo] 段中的写法
type SysinfoConfig struct {
	Plugins        []string      `yaml:"sysinfo_plugins" mapstructure:"sysinfo_plugins" validate:"dive,required" comment:"启用的插件（逗号分隔，空表示全部默认插件）"`
	ExcludePlugins []string      `yaml:"exclude_sysinfo_plugins" mapstructure:"exclude_sysinfo_plugins" validate:"dive,required" comment:"排除的插件"`
	PluginTimeout  time.Duration `yaml:"plugin_timeout" mapstructure:"plugin_timeout" validate:"required,gt=0" comment:"单个插件采集超时" default:"5s"`
	Width          int           `yaml:"width" mapstructure:"width" validate:"required,gte=20,lte=1000" comment:"报告宽度（列数）" default:"80"`
}

// ZapLogConfig 日志配置
type ZapLogConfig struct {
	Level     string `yaml:"level" mapstructure:"level" env:"LOG_LEVEL" validate:"required,oneof=debug info warn error" comment:"日志级别" default:"info"`
	Format    string `yaml:"format" mapstructure:"format" env:"LOG_FORMAT" validate:"required,oneof=json console" comment:"日志格式（json/console）" default:"json"`
	Path      string `yaml:"path" mapstructure:"path" env:"LOG_PATH" comment:"日志目录，空表示 root 用 /var/log/landscape，否则 ~/.landscape"`
	MaxSizeKB int    `yaml:"max_size_kb" mapstructure:"max_size_kb" env:"LOG_MAX_SIZE_KB" validate:"required,gt=0" comment:"单个日志文件最大大小（KB）" default:"500"`
	MaxBackup int    `yaml:"max_backup" mapstructure:"max_backup" env:"LOG_MAX_BACKUP" validate:"gte=0" comment:"日志文件最大备份数" default:"1"`
	Console   bool   `yaml:"console" mapstructure:"console" env:"LOG_CONSOLE" comment:"是否同时把 warn 以上日志输出到 stderr" default:"false"`
}

// MetricsConfig 运行结束后写出 Prometheus textfile（node_exporter textfile collector 格式）
type MetricsConfig struct {
	Textfile string `yaml:"textfile" mapstructure:"textfile" comment:"textfile 路径，空表示不输出"`
}

// NewDefaultConfig 创建默认配置（所有字段兜底，避免空指针/非法值）
func NewDefaultConfig() *Config {
	return &Config{
		Sysinfo: SysinfoConfig{
			Plugins:        []string{},
			ExcludePlugins: []string{},
			PluginTimeout:  5 * time.Second,
			Width:          80,
		},
		Log: ZapLogConfig{
			Level:     "info",
			Format:    "json",
			Path:      "",
			MaxSizeKB: 500,
			MaxBackup: 1,
			Console:   false,
		},
	}
}

// flagKeys flag 名 -> 配置键
var flagKeys = map[string]string{
	"sysinfo-plugins":         "sysinfo.sysinfo_plugins",
	"exclude-sysinfo-plugins": "sysinfo.exclude_sysinfo_plugins",
	"plugin-timeout":          "sysinfo.plugin_timeout",
	"width":                   "sysinfo.width",
	"log.level":               "log.level",
	"log.format":              "log.format",
	"log.path":                "log.path",
	"log.max-size-kb":         "log.max_size_kb",
	"log.max-backup":          "log.max_backup",
	"log.console":             "log.console",
	"metrics.textfile":        "metrics.textfile",
}

// LoadConfigWithCli 加载配置 (Flags > ENV > 配置文件 > 默认值)
func LoadConfigWithCli(cmd *cobra.Command) (*Config, error) {
	cfg := NewDefaultConfig()

	codecs := viper.NewCodecRegistry()
	if err := codecs.RegisterCodec("ini", ini.Codec{}); err != nil {
		return nil, fmt.Errorf("register ini codec: %w", err)
	}
	v := viper.NewWithOptions(viper.WithCodecRegistry(codecs))

	// 1. 绑定 Cobra Flags → Viper
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	// 2. 解析配置文件 (--config 或默认文件)
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile = firstExisting(DefaultConfigFiles)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		// 无扩展名的文件按 INI 处理（/etc/landscape/client.conf 这类）
		if ext := filepath.Ext(configFile); ext == "" || ext == ".conf" {
			v.SetConfigType("ini")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	// 3. 绑定环境变量 ENV -> Viper （SYSINFO_LOG_LEVEL -> log.level）
	v.SetEnvPrefix("SYSINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 解码反序列化到结构体（支持 time.Duration 和逗号分隔列表）
	decoderConfig := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("new decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Sysinfo.normalize()

	// 5. 校验配置
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate 配置校验
func (c *Config) Validate() error {
	if err := valid.Struct(c); err != nil {
		return err
	}
	// 	1，校验插件配置
	if err := c.Sysinfo.Validate(); err != nil {
		return err
	}
	// 	2，校验日志配置
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}
