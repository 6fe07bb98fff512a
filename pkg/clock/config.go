package clock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AndrewLester/clock/internal/discovery"
	"github.com/AndrewLester/clock/internal/ntp"
	"golang.org/x/net/idna"
	"gopkg.in/yaml.v2"
)

const DefaultMDNSTimeout = 2 * time.Second

var lookupServers = discovery.Lookup

var DefaultServers = []string{
	"time.nist.gov",
	"time.apple.com",
	"time.euro.apple.com",
	"time.google.com",
	"time2.google.com",
}

type Config struct {
	Servers     []string      `yaml:"servers"`
	Port        string        `yaml:"port"`
	Timeout     time.Duration `yaml:"timeout"`
	MDNS        bool          `yaml:"mdns"`
	MDNSTimeout time.Duration `yaml:"mdns_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Servers:     append([]string(nil), DefaultServers...),
		Port:        ntp.Port,
		Timeout:     DefaultTimeout,
		MDNSTimeout: DefaultMDNSTimeout,
	}
}

// LoadConfig reads a YAML config. An empty path gives the defaults. Unset
// fields keep their default values; NTP_PORT overrides the port.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if port := os.Getenv("NTP_PORT"); port != "" {
		config.Port = port
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	servers := []string{}
	seen := map[string]bool{}
	for _, server := range c.Servers {
		server = strings.TrimSpace(server)
		if server == "" {
			continue
		}
		ascii, err := idna.Lookup.ToASCII(server)
		if err != nil {
			return fmt.Errorf("invalid server %q: %w", server, err)
		}
		if seen[ascii] {
			continue
		}
		seen[ascii] = true
		servers = append(servers, ascii)
	}
	if len(servers) == 0 && !c.MDNS {
		return ErrNoServers
	}
	c.Servers = servers

	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}

	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.MDNS && c.MDNSTimeout <= 0 {
		return errors.New("mdns_timeout must be positive")
	}
	return nil
}

// ResolveServers returns the configured servers, followed by those found
// over mDNS when enabled. Discovered servers keep their advertised port. A
// failed lookup only loses the discovered servers.
func (c *Config) ResolveServers() []string {
	servers := append([]string(nil), c.Servers...)
	if !c.MDNS {
		return servers
	}

	discovered, err := lookupServers(c.MDNSTimeout)
	if err != nil {
		info("mdns lookup failed:", err)
		return servers
	}
	for _, server := range discovered {
		address := server.Address()
		if c.contains(servers, address) {
			continue
		}
		info("mdns discovered", server.Name, "at", address)
		servers = append(servers, address)
	}
	return servers
}

func (c *Config) contains(servers []string, server string) bool {
	address := serverAddress(server, c.Port)
	for _, item := range servers {
		if serverAddress(item, c.Port) == address {
			return true
		}
	}
	return false
}
