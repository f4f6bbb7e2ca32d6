package plugins

import (
	"context"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/landscape-sysinfo/pkg/future"
)

// LoggedInUsers 当前登录的不同用户数
type LoggedInUsers struct {
	base
	users func(ctx context.Context) ([]host.UserStat, error)
}

// NewLoggedInUsers 创建 LoggedInUsers 插件
func NewLoggedInUsers(timeout time.Duration) *LoggedInUsers {
	return &LoggedInUsers{base: newBase("LoggedInUsers", timeout), users: host.UsersWithContext}
}

func (p *LoggedInUsers) Run(ctx context.Context) (*future.Future, error) {
	return collect(ctx, &p.base, p.users, func(users []host.UserStat) {
		distinct := make(map[string]struct{}, len(users))
		for _, u := range users {
			distinct[u.User] = struct{}{}
		}
		p.sysinfo.AddHeader("Users logged in", strconv.Itoa(len(distinct)))
	}), nil
}
