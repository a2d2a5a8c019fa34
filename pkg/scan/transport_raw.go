package scan

import (
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
	"github.com/projectdiscovery/freeport"
	"github.com/projectdiscovery/gologger"
)

const (
	rawReadBufferSize = 4096
	sendRetries       = 10
)

type waiter struct {
	ch      chan Reply
	claimed bool
}

// RawSocketTransport writes crafted tcp segments on ip4:tcp and ip6:tcp raw
// sockets from a single reserved source port. One read loop per socket routes
// answers to the probes waiting on (peer ip, peer port).
type RawSocketTransport struct {
	serializeOptions gopacket.SerializeOptions
	listenPort       int
	tcpsequencer     *TCPSequencer

	conn4 net.PacketConn
	conn6 net.PacketConn

	mu      sync.Mutex
	waiters map[string][]*waiter

	sourceIPs sync.Map
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewRawSocketTransport opens the raw sockets and starts the read loops.
// The IPv6 socket is optional; hosts without IPv6 only lose v6 targets.
func NewRawSocketTransport() (*RawSocketTransport, error) {
	rawPort, err := freeport.GetFreeTCPPort("")
	if err != nil {
		return nil, errors.Wrap(err, "could not reserve source port")
	}

	t := &RawSocketTransport{
		serializeOptions: gopacket.SerializeOptions{
			FixLengths:       true,
			ComputeChecksums: true,
		},
		listenPort:   rawPort.Port,
		tcpsequencer: NewTCPSequencer(),
		waiters:      make(map[string][]*waiter),
	}

	t.conn4, err = net.ListenIP("ip4:tcp", &net.IPAddr{IP: net.IPv4zero})
	if err != nil {
		return nil, err
	}
	if conn6, err := net.ListenIP("ip6:tcp", &net.IPAddr{IP: net.IPv6unspecified}); err == nil {
		t.conn6 = conn6
	} else {
		gologger.Debug().Msgf("IPv6 raw socket unavailable: %s\n", err)
	}

	for _, conn := range []net.PacketConn{t.conn4, t.conn6} {
		if conn == nil {
			continue
		}
		t.wg.Add(1)
		go t.readLoop(conn)
	}
	return t, nil
}

func waiterKey(ip net.IP, port int) string {
	return net.JoinHostPort(ip.String(), strconv.Itoa(port))
}

// SendSyn registers interest in dst:port and sends the SYN
func (t *RawSocketTransport) SendSyn(dst net.IP, port int) error {
	key := waiterKey(dst, port)
	w := &waiter{ch: make(chan Reply, 1)}
	t.mu.Lock()
	t.waiters[key] = append(t.waiters[key], w)
	t.mu.Unlock()

	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(t.listenPort),
		DstPort: layers.TCPPort(port),
		SYN:     true,
		Window:  1024,
		Seq:     t.tcpsequencer.Next(),
		Options: []layers.TCPOption{{
			OptionType:   layers.TCPOptionKindMSS,
			OptionLength: 4,
			OptionData:   []byte{0x05, 0xb4},
		}},
	}
	if err := t.send(dst, tcp); err != nil {
		t.remove(key, w)
		return err
	}
	return nil
}

// SendRst aborts a half open connection
func (t *RawSocketTransport) SendRst(dst net.IP, port int, seq uint32) error {
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(t.listenPort),
		DstPort: layers.TCPPort(port),
		RST:     true,
		Window:  0,
		Seq:     seq,
	}
	return t.send(dst, tcp)
}

// ReceiveWithTimeout waits for the answer to the oldest unclaimed SYN sent to dst:port
func (t *RawSocketTransport) ReceiveWithTimeout(dst net.IP, port int, timeout time.Duration) (Reply, error) {
	key := waiterKey(dst, port)

	t.mu.Lock()
	var w *waiter
	for _, candidate := range t.waiters[key] {
		if !candidate.claimed {
			w = candidate
			break
		}
	}
	if w == nil {
		w = &waiter{ch: make(chan Reply, 1)}
		t.waiters[key] = append(t.waiters[key], w)
	}
	w.claimed = true
	t.mu.Unlock()
	defer t.remove(key, w)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reply := <-w.ch:
		return reply, nil
	case <-timer.C:
		return Reply{}, ErrNoReply
	}
}

// Close the sockets and wait for the read loops to exit
func (t *RawSocketTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		err = t.conn4.Close()
		if t.conn6 != nil {
			_ = t.conn6.Close()
		}
		t.wg.Wait()
	})
	return err
}

func (t *RawSocketTransport) remove(key string, w *waiter) {
	t.mu.Lock()
	defer t.mu.Unlock()

	list := t.waiters[key]
	for i, candidate := range list {
		if candidate == w {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(t.waiters, key)
		return
	}
	t.waiters[key] = list
}

// dispatch hands reply to every probe waiting on key
func (t *RawSocketTransport) dispatch(key string, reply Reply) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, w := range t.waiters[key] {
		select {
		case w.ch <- reply:
		default:
		}
	}
}

// readLoop parses incoming tcp segments. The kernel strips the IPv4 header
// on ip4:tcp sockets and never delivers one on ip6:tcp.
func (t *RawSocketTransport) readLoop(conn net.PacketConn) {
	defer t.wg.Done()

	data := make([]byte, rawReadBufferSize)
	for {
		n, addr, err := conn.ReadFrom(data)
		if err != nil {
			return
		}
		ipAddr, ok := addr.(*net.IPAddr)
		if !ok {
			continue
		}

		packet := gopacket.NewPacket(data[:n], layers.LayerTypeTCP, gopacket.Default)
		tcpLayer := packet.Layer(layers.LayerTypeTCP)
		if tcpLayer == nil {
			continue
		}
		tcp, ok := tcpLayer.(*layers.TCP)
		if !ok {
			continue
		}
		// We consider only incoming packets
		if tcp.DstPort != layers.TCPPort(t.listenPort) {
			continue
		}
		if !(tcp.SYN && tcp.ACK) && !tcp.RST {
			continue
		}

		gologger.Debug().Msgf("Received TCP packet from %s:%d (syn=%v ack=%v rst=%v)\n", ipAddr.IP, tcp.SrcPort, tcp.SYN, tcp.ACK, tcp.RST)
		t.dispatch(waiterKey(ipAddr.IP, int(tcp.SrcPort)), Reply{
			SYN: tcp.SYN,
			ACK: tcp.ACK,
			RST: tcp.RST,
			Seq: tcp.Seq,
			Ack: tcp.Ack,
		})
	}
}

// send serializes the segment with a checksum over the pseudo header of the
// route's source address
func (t *RawSocketTransport) send(dst net.IP, tcp *layers.TCP) error {
	srcIP, err := t.sourceIP(dst)
	if err != nil {
		return err
	}

	conn := t.conn4
	if dst.To4() != nil {
		ip4 := &layers.IPv4{
			SrcIP:    srcIP,
			DstIP:    dst,
			Version:  4,
			TTL:      255,
			Protocol: layers.IPProtocolTCP,
		}
		if err := tcp.SetNetworkLayerForChecksum(ip4); err != nil {
			return err
		}
	} else {
		if t.conn6 == nil {
			return errors.Errorf("no IPv6 raw socket available for %s", dst)
		}
		conn = t.conn6
		ip6 := &layers.IPv6{
			SrcIP:      srcIP,
			DstIP:      dst,
			Version:    6,
			HopLimit:   255,
			NextHeader: layers.IPProtocolTCP,
		}
		if err := tcp.SetNetworkLayerForChecksum(ip6); err != nil {
			return err
		}
	}

	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, t.serializeOptions, tcp); err != nil {
		return err
	}

	var retries int
	for {
		_, err = conn.WriteTo(buf.Bytes(), &net.IPAddr{IP: dst})
		if err == nil || retries >= sendRetries {
			return err
		}
		retries++
		// give the interface a moment to flush its queue
		time.Sleep(10 * time.Millisecond)
	}
}

func (t *RawSocketTransport) sourceIP(dst net.IP) (net.IP, error) {
	key := dst.String()
	if ip, ok := t.sourceIPs.Load(key); ok {
		return ip.(net.IP), nil
	}
	ip, err := GetSourceIP(dst)
	if err != nil {
		return nil, errors.Wrapf(err, "could not find source ip for %s", dst)
	}
	t.sourceIPs.Store(key, ip)
	return ip, nil
}

// GetSourceIP gets the local ip the kernel would route dstip from
func GetSourceIP(dstip net.IP) (net.IP, error) {
	serverAddr := &net.UDPAddr{IP: dstip, Port: 12345}
	con, err := net.DialUDP("udp", nil, serverAddr)
	if err != nil {
		return nil, err
	}
	defer con.Close()

	udpaddr, ok := con.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, errors.New("unexpected local address type")
	}
	return udpaddr.IP, nil
}
