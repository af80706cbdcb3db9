package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
		wantURL  string
	}{
		{
			name: "tagged backend with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "lab"},
				HostName:      "lab-pc.local.",
				Port:          5000,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.20")},
				Text:          []string{"app=mallas", "path=/"},
			},
			wantIP:   "192.168.1.20",
			wantPort: 5000,
			wantURL:  "http://192.168.1.20:5000",
		},
		{
			name: "untagged but named after the app",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "Mallas Aula 3"},
				HostName:      "aula3.local.",
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantIP:   "10.0.0.5",
			wantPort: DefaultPort,
			wantURL:  "http://10.0.0.5:5000",
		},
		{
			name: "custom path",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "srv"},
				Port:          8080,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.6")},
				Text:          []string{"app=mallas", "path=/sim/"},
			},
			wantIP:   "10.0.0.6",
			wantPort: 8080,
			wantURL:  "http://10.0.0.6:8080/sim",
		},
		{
			name: "IPv6 fallback",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "v6"},
				Port:          5000,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
				Text:          []string{"app=mallas"},
			},
			wantIP:   "fe80::1",
			wantPort: 5000,
			wantURL:  "http://[fe80::1]:5000",
		},
		{
			name: "other app",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "mallas-printer"},
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.7")},
				Text:          []string{"app=cups"},
			},
			wantNil: true,
		},
		{
			name: "unrelated service",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "router"},
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.1")},
			},
			wantNil: true,
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "mallas"},
				Text:          []string{"app=mallas"},
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if srv != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", srv)
				}
				return
			}
			if srv == nil {
				t.Fatal("parseServiceEntry() = nil")
			}
			if srv.IP != tt.wantIP {
				t.Errorf("IP = %s, want %s", srv.IP, tt.wantIP)
			}
			if srv.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", srv.Port, tt.wantPort)
			}
			if srv.BaseURL() != tt.wantURL {
				t.Errorf("BaseURL() = %s, want %s", srv.BaseURL(), tt.wantURL)
			}
		})
	}
}

func TestServer_Metadata(t *testing.T) {
	srv := parseServiceEntry(&zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "lab"},
		AddrIPv4:      []net.IP{net.ParseIP("10.0.0.2")},
		Text:          []string{"app=mallas", "version=1.2", "flag"},
	})
	if srv == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if srv.GetMetadata("version") != "1.2" {
		t.Errorf("version = %q", srv.GetMetadata("version"))
	}
	if _, ok := srv.Metadata["flag"]; !ok {
		t.Error("key-only TXT record missing")
	}
	if srv.GetMetadata("missing") != "" {
		t.Error("missing key should be empty")
	}
	if (&Server{}).GetMetadata("x") != "" {
		t.Error("nil metadata should be empty")
	}
}

func TestNewScanner(t *testing.T) {
	if NewScanner().Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", NewScanner().Timeout, DefaultScanTimeout)
	}
}
