package server

import (
	"net"
	"strconv"
)

// HttpConfig configures the standalone listener.
type HttpConfig struct {
	// Host is the interface to bind, empty for all interfaces.
	Host string `conf:"host"`

	// Port is the tcp port to bind, 0 picks a free one.
	Port int `conf:"port"`

	// H2c enables HTTP/2 over cleartext connections.
	H2c bool `conf:"h2c"`
}

// Addr returns the listen address in host:port form.
func (c HttpConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
