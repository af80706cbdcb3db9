// Package discovery finds mesh simulator backends on the local network
// using multicast DNS.
//
// Backends advertise an "_http._tcp" service. An entry is accepted when it
// carries the TXT record "app=mallas", or when it has no "app" record and
// its instance name contains "mallas". The optional "path" TXT record
// gives the page path below the host.
//
// Advertising a stock Flask server from the command line:
//
//	avahi-publish -s mallas-lab _http._tcp 5000 app=mallas path=/
//
// # Usage Example
//
//	servers, err := discovery.QuickScan(ctx, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, s := range servers {
//	    fmt.Println(s.Instance, s.BaseURL())
//	}
package discovery
