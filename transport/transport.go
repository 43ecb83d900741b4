package transport

import (
	"context"
	"net"

	"github.com/kochabx/eckit/core/validator"
)

// Server defines the interface for transport servers
type Server interface {
	// Run starts the server and blocks until it stops
	Run() error
	// Shutdown gracefully shuts down the server
	Shutdown(context.Context) error
}

// ValidateAddress reports whether addr is a usable listen address:
// an optional host name or IP literal and a port in [1, 65535].
func ValidateAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}

	// hostname_port only understands DNS names
	if net.ParseIP(host) != nil {
		addr = net.JoinHostPort("", port)
	}
	return validator.Validate.Var(addr, "hostname_port") == nil
}
