// Package discovery finds NTP servers advertised on the local network.
package discovery

import (
	"net"
	"strconv"
	"time"

	"github.com/hashicorp/mdns"
)

const Service = "_ntp._udp"

// ServerInfo describes a discovered server
type ServerInfo struct {
	Name string
	Host string
	Port int
}

// Address is the advertised host and port to dial. The host is the IPv4
// address when present, otherwise the advertised host name.
func (s ServerInfo) Address() string {
	if s.Port <= 0 {
		return s.Host
	}
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Lookup browses for NTP services for the given duration.
func Lookup(timeout time.Duration) ([]ServerInfo, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	done := make(chan []ServerInfo)

	go func() {
		done <- collect(entries)
	}()

	params := mdns.DefaultParams(Service)
	params.Timeout = timeout
	params.Entries = entries
	params.DisableIPv6 = true

	err := mdns.Query(params)
	close(entries)
	servers := <-done
	if err != nil {
		return nil, err
	}
	return servers, nil
}

func collect(entries <-chan *mdns.ServiceEntry) []ServerInfo {
	servers := []ServerInfo{}
	seen := map[string]bool{}
	for entry := range entries {
		server, ok := toServerInfo(entry)
		if !ok || seen[server.Address()] {
			continue
		}
		seen[server.Address()] = true
		servers = append(servers, server)
	}
	return servers
}

func toServerInfo(entry *mdns.ServiceEntry) (ServerInfo, bool) {
	if entry == nil {
		return ServerInfo{}, false
	}
	var host string
	switch {
	case entry.AddrV4 != nil && !entry.AddrV4.IsUnspecified():
		host = entry.AddrV4.String()
	case entry.Host != "":
		host = trimDot(entry.Host)
	default:
		return ServerInfo{}, false
	}
	return ServerInfo{Name: entry.Name, Host: host, Port: entry.Port}, true
}

func trimDot(host string) string {
	if len(host) > 0 && host[len(host)-1] == '.' {
		return host[:len(host)-1]
	}
	return host
}
