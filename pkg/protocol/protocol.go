package protocol

import (
	"fmt"
	"strings"
)

// Protocol selects the probe strategy used for a scan
type Protocol int

const (
	TCPConnect Protocol = iota
	TCPSyn
	UDP
)

func (p Protocol) String() string {
	switch p {
	case TCPConnect:
		return "tcp-connect"
	case TCPSyn:
		return "tcp-syn"
	case UDP:
		return "udp"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Transport returns the layer 4 transport name used by the protocol
func (p Protocol) Transport() string {
	if p == UDP {
		return "udp"
	}
	return "tcp"
}

// IsValid reports whether p is one of the known protocols
func (p Protocol) IsValid() bool {
	return p == TCPConnect || p == TCPSyn || p == UDP
}

// ParseProtocol accepts the canonical names plus the short aliases used by the http api and cli
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tcp", "connect", "c", "tcp-connect":
		return TCPConnect, nil
	case "syn", "s", "stealth", "tcp-syn":
		return TCPSyn, nil
	case "udp", "u":
		return UDP, nil
	default:
		return TCPConnect, fmt.Errorf("unknown protocol: %s", s)
	}
}

func (p Protocol) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *Protocol) UnmarshalJSON(data []byte) error {
	// Remove quotes from string
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid protocol format: %s", s)
	}
	parsed, err := ParseProtocol(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
