package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/landscape-sysinfo/pkg/config"
)

// LoggerName 所有日志记录的 logger 名称
const LoggerName = "landscape-sysinfo"

// LogFileName 日志文件（软链接）名称，实际文件由 rotatelogs 按日期生成
const LogFileName = "sysinfo.log"

// Context 显式构造的日志上下文，生命周期为 Open → Close
// 不设置全局 logger，由调用方把 Open 返回的 *zap.Logger 向下传递
type Context struct {
	cfg    config.ZapLogConfig
	dir    string
	stderr zapcore.WriteSyncer

	writer *rotatelogs.RotateLogs
	base   *zap.Logger
}

// NewContext 创建日志上下文（此时不创建目录、不打开文件）
func NewContext(cfg config.ZapLogConfig) *Context {
	dir := cfg.Path
	if dir == "" {
		dir = DefaultDir()
	}
	return &Context{cfg: cfg, dir: dir, stderr: zapcore.Lock(os.Stderr)}
}

// DefaultDir root 用户写 /var/log/landscape，普通用户写 ~/.landscape
func DefaultDir() string {
	if os.Getuid() == 0 {
		return "/var/log/landscape"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".landscape")
	}
	return filepath.Join(home, ".landscape")
}

// Dir 日志目录
func (c *Context) Dir() string { return c.dir }

// Open 创建日志目录、打开滚动文件并构造 logger；重复调用返回同一个 logger
func (c *Context) Open() (*zap.Logger, error) {
	if c.base != nil {
		return c.base, nil
	}
	level := parseLevel(c.cfg.Level)

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", c.dir, err)
	}

	writer, err := rotatelogs.New(
		filepath.Join(c.dir, "sysinfo-%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(c.dir, LogFileName)),
		rotatelogs.WithRotationSize(int64(c.cfg.MaxSizeKB)*1024),
		// 当前文件 + MaxBackup 个备份
		rotatelogs.WithRotationCount(uint(c.cfg.MaxBackup+1)),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("open log file in %s: %w", c.dir, err)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(fileEncoder(c.cfg.Format), zapcore.AddSync(writer), level),
	}
	// stdout 用于输出报告，控制台日志只能写 stderr
	if c.cfg.Console {
		cores = append(cores, zapcore.NewCore(consoleEncoder(), c.stderr, zapcore.WarnLevel))
	}

	c.writer = writer
	c.base = zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).Named(LoggerName)
	return c.base, nil
}

// Close 刷盘并关闭文件；未 Open 时为空操作
func (c *Context) Close() error {
	if c.base == nil {
		return nil
	}
	err := c.base.Sync()
	// 忽略 stderr 不支持 sync 的错误
	if err != nil && strings.Contains(err.Error(), "/dev/stderr") {
		err = nil
	}
	err = multierr.Append(err, c.writer.Close())
	c.base = nil
	c.writer = nil
	return err
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "dbg", "debug":
		return zapcore.DebugLevel
	case "war", "warn":
		return zapcore.WarnLevel
	case "err", "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func fileEncoder(format string) zapcore.Encoder {
	// 纯文本时间
	timeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000 -07:00"))
	}
	if format == "console" {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.ConsoleSeparator = " "
		cfg.EncodeTime = timeEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.TimeKey = "timestamp"
	jsonCfg.EncodeTime = timeEncoder
	jsonCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(jsonCfg)
}

func consoleEncoder() zapcore.Encoder {
	coloredLevelEncoder := func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		var levelStr string
		switch level {
		case zapcore.DebugLevel:
			levelStr = "\033[36mDEBUG\033[0m"
		case zapcore.InfoLevel:
			levelStr = "\033[32mINFO \033[0m"
		case zapcore.WarnLevel:
			levelStr = "\033[33mWARN \033[0m"
		case zapcore.ErrorLevel:
			levelStr = "\033[31mERROR\033[0m"
		default:
			levelStr = "\033[35m" + level.CapitalString() + "\033[0m"
		}
		enc.AppendString(levelStr)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.ConsoleSeparator = " "
	cfg.EncodeLevel = coloredLevelEncoder
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(fmt.Sprintf("\033[34m%s\033[0m", t.Format("15:04:05.000")))
	}
	// Caller 两级路径
	cfg.EncodeCaller = func(c zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		rel := filepath.Join(filepath.Base(filepath.Dir(c.File)), filepath.Base(c.File))
		enc.AppendString(fmt.Sprintf("%s:%d", rel, c.Line))
	}
	return zapcore.NewConsoleEncoder(cfg)
}
