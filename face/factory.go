package face

import (
	"fmt"
	"net/url"
	"strings"
)

// NewFromURI builds a Face from a transport URI of the form
// "unix:///path/to/sock", "tcp://host:port", or "ws://host:port/path",
// the same scheme internal/config.ClientConfig.TransportURI and the
// CLI tools use to select a transport without the caller constructing
// a concrete Face type.
func NewFromURI(uri string) (Face, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("face: parse transport uri %q: %w", uri, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "unix":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		return NewUnixFace(path), nil
	case "tcp":
		return NewTCPFace("tcp", u.Host), nil
	case "tcp4":
		return NewTCPFace("tcp4", u.Host), nil
	case "tcp6":
		return NewTCPFace("tcp6", u.Host), nil
	case "ws", "wss":
		return NewWebSocketFace(uri), nil
	default:
		return nil, fmt.Errorf("face: unsupported transport scheme %q", u.Scheme)
	}
}
