package plugins

import (
	"context"
	"net"
	"slices"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"

	"github.com/landscape-sysinfo/pkg/future"
)

// Network 每个非回环网卡的 IPv4 地址
type Network struct {
	base
	interfaces func(ctx context.Context) (gnet.InterfaceStatList, error)
}

// NewNetwork 创建 Network 插件
func NewNetwork(timeout time.Duration) *Network {
	return &Network{base: newBase("Network", timeout), interfaces: gnet.InterfacesWithContext}
}

func (p *Network) Run(ctx context.Context) (*future.Future, error) {
	return collect(ctx, &p.base, p.interfaces, func(ifaces gnet.InterfaceStatList) {
		for _, iface := range ifaces {
			if slices.Contains(iface.Flags, "loopback") {
				continue
			}
			if addr := firstIPv4(iface.Addrs); addr != "" {
				p.sysinfo.AddHeader("IP address for "+iface.Name, addr)
			}
		}
	}), nil
}

func firstIPv4(addrs gnet.InterfaceAddrList) string {
	for _, a := range addrs {
		ip, _, err := net.ParseCIDR(a.Addr)
		if err != nil {
			ip = net.ParseIP(a.Addr)
		}
		if ip == nil || ip.IsLoopback() {
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}
