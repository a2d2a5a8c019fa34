package runner

import (
	"net"

	iputil "github.com/projectdiscovery/utils/ip"
	"github.com/yl2chen/cidranger"
)

// addToRanger inserts an ip or a cidr, ips become single address networks
func addToRanger(ipranger cidranger.Ranger, ipcidr string) error {
	if iputil.IsIPv4(ipcidr) {
		ipcidr += "/32"
	} else if iputil.IsIPv6(ipcidr) {
		ipcidr += "/128"
	}
	_, network, err := net.ParseCIDR(ipcidr)
	if err != nil {
		return err
	}
	return ipranger.Insert(cidranger.NewBasicRangerEntry(*network))
}

// rangerContains reports whether ip falls in any inserted network
func rangerContains(ipranger cidranger.Ranger, ip string) bool {
	if !iputil.IsIP(ip) {
		return false
	}
	contains, err := ipranger.Contains(net.ParseIP(ip))
	return contains && err == nil
}
