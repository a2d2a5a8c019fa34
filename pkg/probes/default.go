package probes

import (
	"sync"

	"github.com/projectdiscovery/gologger"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the shared built-in catalog. Callers must not mutate it;
// use Clone to extend it.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = buildDefault()
	})
	return defaultCatalog
}

func buildDefault() *Catalog {
	c := NewCatalog()

	dnsPayload := mustPayload("DNS", dnsQuery)
	c.Add(&Probe{Name: "DNS", Payload: dnsPayload, Validate: validateDNS}, 53)
	c.Add(&Probe{Name: "mDNS", Payload: dnsPayload, Validate: validateDNS}, 5353)

	c.Add(&Probe{Name: "DHCP Server", Payload: mustPayload("DHCP", dhcpInform), Validate: validateDHCP}, 67)
	c.Add(&Probe{Name: "DHCP Client", Payload: []byte{}}, 68)
	c.Add(&Probe{Name: "TFTP", Payload: tftpReadRequest("test.txt")}, 69)
	c.Add(&Probe{Name: "NTP", Payload: ntpRequest(), Validate: validateNTP}, 123)
	c.Add(&Probe{Name: "NetBIOS Name Service", Payload: netbiosQuery(), Validate: validateNetBIOS}, 137)
	c.Add(&Probe{Name: "SNMP", Payload: mustPayload("SNMP", snmpGetSysDescr), Validate: validateSNMP}, 161)
	c.Add(&Probe{Name: "SNMP Trap", Payload: []byte{}}, 162)
	c.Add(&Probe{Name: "IKE", Payload: []byte{}}, 500)
	c.Add(&Probe{Name: "Syslog", Payload: []byte{}}, 514)
	c.Add(&Probe{Name: "RIP", Payload: []byte{}}, 520)
	c.Add(&Probe{Name: "SSDP", Payload: ssdpSearch(), Validate: validateSSDP}, 1900)
	c.Add(&Probe{Name: "Memcached", Payload: []byte("stats\r\n")}, 11211)

	return c
}

// mustPayload falls back to an empty payload when a builder fails so the
// port is still probed
func mustPayload(name string, build func() ([]byte, error)) []byte {
	data, err := build()
	if err != nil {
		gologger.Warning().Msgf("could not build %s probe payload: %s\n", name, err)
		return []byte{}
	}
	return data
}
