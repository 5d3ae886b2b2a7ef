package config

import (
	"fmt"
	"net"
	"strconv"
)

// MetricsConfig controls the Prometheus exposition endpoint of the daemon
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Address is the listen address of the metrics server
func (m MetricsConfig) Address() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}

// URL is where a scraper finds the order and store metrics
func (m MetricsConfig) URL() string {
	return fmt.Sprintf("http://%s%s", m.Address(), m.Path)
}
