package services

var (
	tcp  = []string{"tcp"}
	udp  = []string{"udp"}
	both = []string{"tcp", "udp"}
)

var wellKnown = []struct {
	port       int
	name       string
	transports []string
}{
	{20, "ftp-data", tcp},
	{21, "ftp", tcp},
	{22, "ssh", tcp},
	{23, "telnet", tcp},
	{25, "smtp", tcp},
	{53, "domain", both},
	{67, "bootps", udp},
	{68, "bootpc", udp},
	{69, "tftp", udp},
	{80, "http", tcp},
	{88, "kerberos", both},
	{110, "pop3", tcp},
	{111, "sunrpc", both},
	{123, "ntp", udp},
	{135, "epmap", tcp},
	{137, "netbios-ns", udp},
	{138, "netbios-dgm", udp},
	{139, "netbios-ssn", tcp},
	{143, "imap", tcp},
	{161, "snmp", udp},
	{162, "snmp-trap", udp},
	{179, "bgp", tcp},
	{389, "ldap", tcp},
	{443, "https", tcp},
	{445, "microsoft-ds", tcp},
	{465, "submissions", tcp},
	{500, "isakmp", udp},
	{514, "syslog", udp},
	{520, "router", udp},
	{587, "submission", tcp},
	{631, "ipp", tcp},
	{636, "ldaps", tcp},
	{873, "rsync", tcp},
	{993, "imaps", tcp},
	{995, "pop3s", tcp},
	{1433, "ms-sql-s", tcp},
	{1521, "oracle", tcp},
	{1900, "ssdp", udp},
	{2049, "nfs", both},
	{3306, "mysql", tcp},
	{3389, "ms-wbt-server", tcp},
	{5353, "mdns", udp},
	{5432, "postgresql", tcp},
	{5900, "vnc", tcp},
	{6379, "redis", tcp},
	{8080, "http-alt", tcp},
	{8443, "https-alt", tcp},
	{9200, "elasticsearch", tcp},
	{11211, "memcache", both},
	{27017, "mongodb", tcp},
}
