package port

import (
	"fmt"
	"strconv"
	"strings"

	sliceutil "github.com/projectdiscovery/utils/slice"
)

const portListStrParts = 2

const (
	MinPort = 1
	MaxPort = 65535

	// Full is the port list matching every valid port
	Full = "1-65535"
)

// IsValid reports whether p is a usable tcp/udp port number
func IsValid(p int) bool {
	return p >= MinPort && p <= MaxPort
}

// ParsePortsList parses a comma separated list of ports and inclusive ranges ("22,80,8000-8010")
func ParsePortsList(data string) ([]int, error) {
	return ParsePortsSlice(strings.Split(data, ","))
}

// ParsePortsSlice parses every entry as either a single port (N) or an inclusive range (N-M).
// The returned list keeps input order and holds no duplicates.
func ParsePortsSlice(ranges []string) ([]int, error) {
	var ports []int
	for _, r := range ranges {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}

		if strings.Contains(r, "-") {
			parts := strings.Split(r, "-")
			if len(parts) != portListStrParts {
				return nil, fmt.Errorf("invalid port selection segment: '%s'", r)
			}

			p1, err := parsePort(parts[0])
			if err != nil {
				return nil, err
			}

			p2, err := parsePort(parts[1])
			if err != nil {
				return nil, err
			}

			if p1 > p2 {
				return nil, fmt.Errorf("invalid port range: %d-%d", p1, p2)
			}

			for i := p1; i <= p2; i++ {
				ports = append(ports, i)
			}
		} else {
			portNumber, err := parsePort(r)
			if err != nil {
				return nil, err
			}
			ports = append(ports, portNumber)
		}
	}

	if len(ports) == 0 {
		return nil, fmt.Errorf("no ports specified")
	}

	return sliceutil.Dedupe(ports), nil
}

func parsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: '%s'", s)
	}
	if !IsValid(p) {
		return 0, fmt.Errorf("invalid port number: %d", p)
	}
	return p, nil
}
