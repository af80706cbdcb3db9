package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/logging"
)

const (
	// ServiceType is the mDNS service type simulator backends advertise
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the Flask development server port
	DefaultPort = 5000

	// AppKey and AppValue form the TXT record that marks a mallas backend
	AppKey   = "app"
	AppValue = "mallas"
)

// Scanner handles mDNS backend discovery
type Scanner struct {
	// Timeout is the maximum time to wait for discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers simulator backends until the timeout elapses or ctx is
// cancelled. Results are sorted by instance name.
func (s *Scanner) Scan(ctx context.Context) ([]*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu      sync.Mutex
		servers []*Server
		seen    = make(map[string]bool)
	)

	go func() {
		for entry := range entries {
			srv := parseServiceEntry(entry)
			if srv == nil {
				continue
			}
			mu.Lock()
			if !seen[srv.Instance] {
				seen[srv.Instance] = true
				servers = append(servers, srv)
				logging.Debug("Backend discovered",
					zap.String("instance", srv.Instance),
					zap.String("url", srv.BaseURL()),
				)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	out := make([]*Server, len(servers))
	copy(out, servers)
	sort.Slice(out, func(i, j int) bool { return out[i].Instance < out[j].Instance })
	return out, nil
}

// parseServiceEntry converts a zeroconf service entry to a Server.
// Returns nil if the entry is not a mallas backend.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry == nil {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	if !isBackend(entry.Instance, metadata) {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	path := metadata["path"]
	if path == "" {
		path = "/"
	}

	return &Server{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Path:         path,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// isBackend accepts entries tagged app=mallas, or untagged entries whose
// instance name mentions mallas.
func isBackend(instance string, metadata map[string]string) bool {
	if app, ok := metadata[AppKey]; ok {
		return strings.EqualFold(app, AppValue)
	}
	return strings.Contains(strings.ToLower(instance), AppValue)
}

// QuickScan performs a scan with a custom timeout
func QuickScan(ctx context.Context, timeout time.Duration) ([]*Server, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Scan(ctx)
}
