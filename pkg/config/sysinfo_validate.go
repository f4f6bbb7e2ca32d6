package config

import (
	"fmt"
	"strings"
)

// Validate 插件列表校验
// 插件名不能为空、不能包含空白，且同一列表内不能重复
// 名称是否存在由插件表在激活时校验（UnknownPluginError），这里不做判断
func (s *SysinfoConfig) Validate() error {
	if err := valid.Struct(s); err != nil {
		return err
	}
	if err := checkNames("sysinfo_plugins", s.Plugins); err != nil {
		return err
	}
	if err := checkNames("exclude_sysinfo_plugins", s.ExcludePlugins); err != nil {
		return err
	}
	return nil
}

func checkNames(field string, names []string) error {
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("sysinfo.%s cannot contain empty name", field)
		}
		if strings.ContainsAny(name, " \t\r\n") {
			return fmt.Errorf("sysinfo.%s: plugin %q contains whitespace", field, name)
		}
		if seen[name] {
			return fmt.Errorf("sysinfo.%s duplicated entry: %q", field, name)
		}
		seen[name] = true
	}
	return nil
}

// normalize 去掉逗号分隔带来的空白和空项（"Load, Disk," -> [Load Disk]）
func (s *SysinfoConfig) normalize() {
	s.Plugins = trimNames(s.Plugins)
	s.ExcludePlugins = trimNames(s.ExcludePlugins)
}

func trimNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ActivePlugins resolves the configured include/exclude lists against the
// default plugin order. An empty include list selects every default plugin.
func (s *SysinfoConfig) ActivePlugins(defaults []string) []string {
	selected := s.Plugins
	if len(selected) == 0 {
		selected = defaults
	}
	excluded := make(map[string]struct{}, len(s.ExcludePlugins))
	for _, name := range s.ExcludePlugins {
		excluded[name] = struct{}{}
	}
	active := make([]string, 0, len(selected))
	for _, name := range selected {
		if _, skip := excluded[name]; skip {
			continue
		}
		active = append(active, name)
	}
	return active
}
