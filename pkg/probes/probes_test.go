package probes

import (
	"testing"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AddAndGet(t *testing.T) {
	c := NewCatalog()

	probe := &Probe{
		Name:    "TestProbe",
		Payload: []byte{0x01, 0x02, 0x03},
	}
	c.Add(probe, 53, 69, 5353)

	for _, port := range []int{53, 69, 5353} {
		require.NotNil(t, c.Get(port), "port %d should have a probe", port)
		assert.Equal(t, "TestProbe", c.Name(port))
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, c.PayloadFor(port))
	}
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_UnknownPort(t *testing.T) {
	c := NewCatalog()

	assert.Nil(t, c.Get(9999))
	assert.Empty(t, c.PayloadFor(9999))
	assert.NotNil(t, c.PayloadFor(9999))
	assert.Equal(t, "", c.Name(9999))

	ok, _ := c.Validate(9999, []byte("x"))
	assert.True(t, ok)
	ok, _ = c.Validate(9999, nil)
	assert.False(t, ok)
}

func TestCatalog_CloneIsIndependent(t *testing.T) {
	clone := Default().Clone()
	clone.Add(&Probe{Name: "Custom"}, 40000)

	assert.Equal(t, "Custom", clone.Name(40000))
	assert.Nil(t, Default().Get(40000))
}

func TestDefault_Entries(t *testing.T) {
	c := Default()

	names := map[int]string{
		53:    "DNS",
		67:    "DHCP Server",
		68:    "DHCP Client",
		69:    "TFTP",
		123:   "NTP",
		137:   "NetBIOS Name Service",
		161:   "SNMP",
		162:   "SNMP Trap",
		500:   "IKE",
		514:   "Syslog",
		520:   "RIP",
		1900:  "SSDP",
		5353:  "mDNS",
		11211: "Memcached",
	}
	for port, name := range names {
		assert.Equal(t, name, c.Name(port), "port %d", port)
	}
	assert.Equal(t, len(names), c.Len())
	assert.Same(t, c, Default())
}

func TestDefault_Payloads(t *testing.T) {
	c := Default()

	dnsPayload := c.PayloadFor(53)
	require.GreaterOrEqual(t, len(dnsPayload), 12)
	assert.Equal(t, []byte{0x00, 0x1e}, dnsPayload[:2])
	msg := new(dns.Msg)
	require.NoError(t, msg.Unpack(dnsPayload))
	require.Len(t, msg.Question, 1)
	assert.Equal(t, "google.com.", msg.Question[0].Name)
	assert.Equal(t, dns.TypeA, msg.Question[0].Qtype)
	assert.Equal(t, dnsPayload, c.PayloadFor(5353))

	ntp := c.PayloadFor(123)
	require.Len(t, ntp, 48)
	assert.Equal(t, byte(0x23), ntp[0])

	snmp := c.PayloadFor(161)
	require.NotEmpty(t, snmp)
	assert.Equal(t, byte(0x30), snmp[0])
	assert.Contains(t, string(snmp), "public")

	assert.Equal(t, []byte("\x00\x01test.txt\x00octet\x00"), c.PayloadFor(69))
	assert.Contains(t, string(c.PayloadFor(1900)), "M-SEARCH * HTTP/1.1")
	assert.Equal(t, []byte("stats\r\n"), c.PayloadFor(11211))
	assert.Len(t, c.PayloadFor(137), 50)
	assert.Empty(t, c.PayloadFor(500))

	dhcp, err := dhcpv4.FromBytes(c.PayloadFor(67))
	require.NoError(t, err)
	assert.Equal(t, dhcpv4.MessageTypeInform, dhcp.MessageType())
}

func TestDefault_Validators(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		port     int
		response []byte
		want     bool
	}{
		{"dns reply", 53, []byte{0x00, 0x1e, 0x81, 0x80}, true},
		{"dns query echoed", 53, []byte{0x00, 0x1e, 0x01, 0x00}, false},
		{"mdns reply", 5353, []byte{0x00, 0x00, 0x84, 0x00}, true},
		{"ntp full", 123, append([]byte{0x24}, make([]byte, 47)...), true},
		{"ntp short", 123, []byte{0x24, 0x01}, false},
		{"snmp sequence", 161, []byte{0x30, 0x10}, true},
		{"snmp garbage", 161, []byte{0x01}, false},
		{"netbios ok", 137, []byte{1, 2, 3, 4, 5}, true},
		{"netbios short", 137, []byte{1, 2, 3, 4}, false},
		{"ssdp ok", 1900, []byte("HTTP/1.1 200 OK\r\n"), true},
		{"ssdp other", 1900, []byte("hello"), false},
		{"dhcp garbage", 67, []byte{0x02, 0x00}, false},
		{"tftp any", 69, []byte{0x00, 0x05}, true},
		{"memcached any", 11211, []byte("STAT pid 1\r\n"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, desc := c.Validate(tt.port, tt.response)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, desc)
		})
	}
}

func TestValidateNTPVersion(t *testing.T) {
	reply := make([]byte, 48)
	reply[0] = 0x24 // VN=4 mode=4
	ok, desc := validateNTP(reply)
	assert.True(t, ok)
	assert.Equal(t, "NTP version 4", desc)
}

func TestValidateDHCPReply(t *testing.T) {
	reply, err := dhcpv4.New(dhcpv4.WithReply(mustInform(t)), dhcpv4.WithMessageType(dhcpv4.MessageTypeAck))
	require.NoError(t, err)

	ok, _ := validateDHCP(reply.ToBytes())
	assert.True(t, ok)

	ok, _ = validateDHCP(mustInform(t).ToBytes())
	assert.False(t, ok, "a request is not a reply")
}

func mustInform(t *testing.T) *dhcpv4.DHCPv4 {
	msg, err := dhcpv4.New(dhcpv4.WithMessageType(dhcpv4.MessageTypeInform))
	require.NoError(t, err)
	return msg
}
