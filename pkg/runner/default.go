package runner

import "github.com/projectdiscovery/portprobe/pkg/scan"

const (
	DefaultConcurrency = 100
	DefaultTimeout     = scan.DefaultTimeout
	DefaultPorts       = "1-1024"
)
