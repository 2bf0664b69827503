package remote

import (
	"fmt"
	"net/http"

	"Overtourissimus/internal/config"
	lnet "Overtourissimus/internal/net"
)

// discover is swapped out in tests.
var discover = lnet.Discover

// NewBackend builds the backend selected in the counter config. The mdns backend
// browses the local network for a counter service and talks CountAPI to it.
func NewBackend(c config.Counter, client *http.Client) (Backend, error) {
	switch c.Backend {
	case config.BackendCountAPI:
		return NewCountAPI(c.BaseURL, c.Namespace, c.Key, client), nil
	case config.BackendJSONBin:
		return ReadModifyWrite(NewJSONBin(c.BinURL, c.MasterKey, client)), nil
	case config.BackendMDNS:
		base, err := discover(c.Namespace, c.Key, c.DiscoverTimeout.Duration)
		if err != nil {
			return nil, err
		}
		return NewCountAPI(base, c.Namespace, c.Key, client), nil
	default:
		return nil, fmt.Errorf("unknown counter backend %q", c.Backend)
	}
}
