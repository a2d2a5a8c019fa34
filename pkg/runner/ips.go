package runner

import (
	"strings"

	"github.com/pkg/errors"
	fileutil "github.com/projectdiscovery/utils/file"
	iputil "github.com/projectdiscovery/utils/ip"
	"github.com/yl2chen/cidranger"
)

// parseExcludedHosts collects the exclusion list from the flag and the file
func parseExcludedHosts(options *Options) ([]string, error) {
	var excluded []string
	if options.ExcludeHosts != "" {
		for _, host := range strings.Split(options.ExcludeHosts, ",") {
			if host = strings.TrimSpace(host); host != "" {
				excluded = append(excluded, host)
			}
		}
	}

	if options.ExcludeHostsFile != "" {
		cdata, err := fileutil.ReadFile(options.ExcludeHostsFile)
		if err != nil {
			return excluded, errors.Wrapf(err, "could not read %s", options.ExcludeHostsFile)
		}
		for host := range cdata {
			if host = strings.TrimSpace(host); host != "" {
				excluded = append(excluded, host)
			}
		}
	}

	return excluded, nil
}

// excludeHosts drops hosts that equal an excluded name or fall inside an
// excluded ip or cidr
func excludeHosts(hosts, excluded []string) ([]string, error) {
	if len(excluded) == 0 {
		return hosts, nil
	}

	excludeRanger := cidranger.NewPCTrieRanger()
	names := make(map[string]struct{})
	for _, item := range excluded {
		if !isIpOrCidr(item) {
			names[item] = struct{}{}
			continue
		}
		if err := addToRanger(excludeRanger, item); err != nil {
			return nil, errors.Wrapf(err, "invalid exclude entry %s", item)
		}
	}

	filtered := hosts[:0:0]
	for _, host := range hosts {
		if _, ok := names[host]; ok {
			continue
		}
		if rangerContains(excludeRanger, host) {
			continue
		}
		filtered = append(filtered, host)
	}
	return filtered, nil
}

func isIpOrCidr(s string) bool {
	return iputil.IsIP(s) || iputil.IsCIDR(s)
}
