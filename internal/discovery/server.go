package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Server represents a simulator backend discovered on the network
type Server struct {
	// Instance is the mDNS service instance name (e.g., "mallas-lab")
	Instance string

	// Hostname is the mDNS hostname (e.g., "lab-pc.local.")
	Hostname string

	// IP is the address to connect to, IPv4 preferred
	IP string

	// Port is the HTTP port (5000 for the stock Flask server)
	Port int

	// Path is the page path from the "path" TXT record, "/" by default
	Path string

	// Metadata contains all mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the server was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the server
func (s *Server) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, s.BaseURL())
}

// BaseURL returns the HTTP base URL for the server, without a trailing slash
func (s *Server) BaseURL() string {
	host := net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
	path := strings.TrimRight(s.Path, "/")
	return "http://" + host + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
