package net

import (
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service the counter service advertises.
const ServiceType = "_touricount._tcp"

const infoTag = "overtourissimus"

// Advertise announces a counter service on the local network. The TXT record names
// the counter namespace and key so a board can tell services apart.
func Advertise(port int, namespace, key string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{infoTag, "ns=" + namespace, "key=" + key}
	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] advertising %s on port %d (%s/%s)", ServiceType, port, namespace, key)
	return server, nil
}

// Discover browses for a counter service serving namespace/key and returns its base
// URL, e.g. "http://192.168.1.20:8787".
func Discover(namespace, key string, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	go func() {
		for e := range entries {
			if !Matches(e, namespace, key) {
				continue
			}
			select {
			case found <- BaseURL(e.AddrV4, e.Port):
			default:
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	if err != nil {
		return "", fmt.Errorf("mDNS query: %w", err)
	}

	select {
	case addr := <-found:
		log.Printf("[MDNS] found counter service at %s", addr)
		return addr, nil
	case <-time.After(100 * time.Millisecond):
		return "", fmt.Errorf("no %s service for %s/%s found within %s", ServiceType, namespace, key, timeout)
	}
}

// Matches reports whether an mDNS entry is a counter service for namespace/key.
func Matches(e *mdns.ServiceEntry, namespace, key string) bool {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return false
	}
	fields := e.InfoFields
	if len(fields) == 0 && e.Info != "" {
		fields = strings.Split(e.Info, "|")
	}
	var tagged, nsOK, keyOK bool
	for _, f := range fields {
		switch f {
		case infoTag:
			tagged = true
		case "ns=" + namespace:
			nsOK = true
		case "key=" + key:
			keyOK = true
		}
	}
	return tagged && nsOK && keyOK
}

// BaseURL formats an HTTP base URL for a discovered service.
func BaseURL(ip net.IP, port int) string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(ip.String(), fmt.Sprint(port)))
}
