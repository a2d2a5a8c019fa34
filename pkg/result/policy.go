package result

import "github.com/projectdiscovery/portprobe/pkg/protocol"

// Keep reports whether an outcome with the given status is part of the report for p.
//
// tcp-connect and tcp-syn report open and error; udp also reports
// open|filtered. Closed and filtered ports are never reported.
func Keep(p protocol.Protocol, s Status) bool {
	switch s {
	case Open, Error:
		return true
	case OpenFiltered:
		return p == protocol.UDP
	default:
		return false
	}
}

// WantsService reports whether records with status s get a service name for p
func WantsService(p protocol.Protocol, s Status) bool {
	switch p {
	case protocol.TCPSyn:
		return s == Open
	case protocol.UDP:
		return s == Open || s == OpenFiltered
	default:
		return false
	}
}
