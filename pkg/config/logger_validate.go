package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

//Validate 规则说明
//字段	已通过 tag 校验	额外业务校验
//Level	oneof 预校验	再进行 map lookup，避免大小写或隐藏错误
//Format	oneof=json console	无
//Path	可为空	非空时必须能解析为绝对路径；目录由日志上下文 Open 时创建
//MaxSizeKB	gt=0	无
//MaxBackup	gte=0	无

// Validate 日志配置校验
func (l *ZapLogConfig) Validate() error {

	// --- 基础 tag 校验 ---
	if err := valid.Struct(l); err != nil {
		return fmt.Errorf("日志配置字段非法: %w", err)
	}

	// 	校验日志级别
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(l.Level)] {
		return fmt.Errorf("Log.Level invalid (valid: debug/info/warn/error), got %s", l.Level)
	}
	// 	校验日志格式
	if l.Format != "json" && l.Format != "console" {
		return fmt.Errorf("Log.Format must be 'json' or 'console', got %s", l.Format)
	}
	// 	校验日志路径
	if l.Path != "" {
		if _, err := filepath.Abs(l.Path); err != nil {
			return fmt.Errorf("Log.Path Failed to parse the log path, got %s: %w", l.Path, err)
		}
	}
	return nil
}
