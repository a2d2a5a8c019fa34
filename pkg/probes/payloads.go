package probes

import (
	"bytes"
	"fmt"

	"github.com/gosnmp/gosnmp"
	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/miekg/dns"
)

const (
	dnsTransactionID = 0x001e
	dnsQueryName     = "google.com."
	ntpPacketSize    = 48
	sysDescrOID      = ".1.3.6.1.2.1.1.1.0"
)

func dnsQuery() ([]byte, error) {
	req := new(dns.Msg)
	req.SetQuestion(dnsQueryName, dns.TypeA)
	req.Id = dnsTransactionID
	req.RecursionDesired = true
	return req.Pack()
}

// validateDNS only looks at the QR bit; mDNS responders and truncated
// replies still count
func validateDNS(response []byte) (bool, string) {
	if len(response) < 3 || response[2]&0x80 == 0 {
		return false, "not a DNS response"
	}
	msg := new(dns.Msg)
	if err := msg.Unpack(response); err != nil {
		return true, "DNS response received"
	}
	return true, fmt.Sprintf("DNS response received (%s)", dns.RcodeToString[msg.Rcode])
}

func dhcpInform() ([]byte, error) {
	msg, err := dhcpv4.New(dhcpv4.WithMessageType(dhcpv4.MessageTypeInform))
	if err != nil {
		return nil, err
	}
	return msg.ToBytes(), nil
}

func validateDHCP(response []byte) (bool, string) {
	msg, err := dhcpv4.FromBytes(response)
	if err != nil || msg.OpCode != dhcpv4.OpcodeBootReply {
		return false, "not a DHCP reply"
	}
	return true, fmt.Sprintf("DHCP %s received", msg.MessageType())
}

func tftpReadRequest(file string) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x01}) // RRQ
	buf.WriteString(file)
	buf.WriteByte(0)
	buf.WriteString("octet")
	buf.WriteByte(0)
	return buf.Bytes()
}

// ntpRequest is a bare client mode packet: LI=0 VN=4 Mode=3
func ntpRequest() []byte {
	packet := make([]byte, ntpPacketSize)
	packet[0] = 0x23
	packet[2] = 0x06 // poll
	packet[3] = 0xec // precision
	return packet
}

func validateNTP(response []byte) (bool, string) {
	if len(response) < ntpPacketSize {
		return false, "short NTP response"
	}
	version := (response[0] >> 3) & 0x07
	return true, fmt.Sprintf("NTP version %d", version)
}

// netbiosQuery asks for the wildcard name "*" encoded in first level form
func netbiosQuery() []byte {
	header := []byte{
		0x82, 0x28, // transaction id
		0x00, 0x00, // flags
		0x00, 0x01, // questions
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
	}
	name := append([]byte{0x20, 'C', 'K'}, bytes.Repeat([]byte{'A'}, 30)...)
	name = append(name, 0x00)
	trailer := []byte{
		0x00, 0x21, // NBSTAT
		0x00, 0x01, // IN
	}
	packet := append(header, name...)
	return append(packet, trailer...)
}

func validateNetBIOS(response []byte) (bool, string) {
	if len(response) <= 4 {
		return false, "short NetBIOS response"
	}
	return true, "NetBIOS name service response"
}

func snmpGetSysDescr() ([]byte, error) {
	packet := &gosnmp.SnmpPacket{
		Version:   gosnmp.Version1,
		Community: "public",
		PDUType:   gosnmp.GetRequest,
		Variables: []gosnmp.SnmpPDU{
			{Name: sysDescrOID, Type: gosnmp.Null},
		},
	}
	return packet.MarshalMsg()
}

func validateSNMP(response []byte) (bool, string) {
	if len(response) == 0 || response[0] != 0x30 {
		return false, "not an SNMP message"
	}
	return true, "SNMP response received"
}

func ssdpSearch() []byte {
	return []byte("M-SEARCH * HTTP/1.1\r\n" +
		"HOST: 239.255.255.250:1900\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 1\r\n" +
		"ST: ssdp:all\r\n\r\n")
}

func validateSSDP(response []byte) (bool, string) {
	if !bytes.Contains(response, []byte("HTTP/1.1")) {
		return false, "not an SSDP response"
	}
	return true, "SSDP response received"
}
