package scan

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/portprobe/pkg/privileges"
	"github.com/projectdiscovery/portprobe/pkg/protocol"
	"github.com/projectdiscovery/portprobe/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rstCall struct {
	dst  string
	port int
	seq  uint32
}

// fakeTransport answers every SYN with a canned reply per port
type fakeTransport struct {
	mu      sync.Mutex
	replies map[int]Reply
	sendErr error
	syns    int
	rsts    []rstCall
	closed  bool
}

func (f *fakeTransport) SendSyn(dst net.IP, port int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.syns++
	return f.sendErr
}

func (f *fakeTransport) SendRst(dst net.IP, port int, seq uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rsts = append(f.rsts, rstCall{dst: dst.String(), port: port, seq: seq})
	return nil
}

func (f *fakeTransport) ReceiveWithTimeout(dst net.IP, port int, timeout time.Duration) (Reply, error) {
	f.mu.Lock()
	reply, ok := f.replies[port]
	f.mu.Unlock()
	if !ok {
		return Reply{}, ErrNoReply
	}
	return reply, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

type staticResolver map[string]net.IP

func (s staticResolver) ResolveIP(ctx context.Context, host string) (net.IP, error) {
	if ip, ok := s[host]; ok {
		return ip, nil
	}
	return nil, errors.Errorf("could not resolve %s", host)
}

func newFakeSyn(t *testing.T, transport *fakeTransport) *SynStrategy {
	t.Helper()

	s, err := NewSynStrategy(&Options{
		Transport: transport,
		Resolver:  staticResolver{"target": net.ParseIP("192.0.2.10")},
	})
	require.NoError(t, err)
	return s
}

func TestSynOpenSendsOneRst(t *testing.T) {
	transport := &fakeTransport{replies: map[int]Reply{
		443: {SYN: true, ACK: true, Seq: 1000, Ack: 424242},
	}}
	s := newFakeSyn(t, transport)

	outcome := s.Probe(context.Background(), "target", 443)
	assert.Equal(t, result.Open, outcome.Status)
	assert.Equal(t, "target", outcome.Host)
	require.Len(t, transport.rsts, 1)
	assert.Equal(t, rstCall{dst: "192.0.2.10", port: 443, seq: 424242}, transport.rsts[0])
	assert.Equal(t, 1, transport.syns)
}

func TestSynClosedOnRst(t *testing.T) {
	transport := &fakeTransport{replies: map[int]Reply{
		22: {RST: true, ACK: true},
	}}
	s := newFakeSyn(t, transport)

	outcome := s.Probe(context.Background(), "target", 22)
	assert.Equal(t, result.Closed, outcome.Status)
	assert.Empty(t, transport.rsts)
}

func TestSynFilteredOnSilence(t *testing.T) {
	transport := &fakeTransport{replies: map[int]Reply{}}
	s := newFakeSyn(t, transport)

	outcome := s.Probe(context.Background(), "target", 8080)
	assert.Equal(t, result.Filtered, outcome.Status)
	assert.Empty(t, transport.rsts)
}

func TestSynErrors(t *testing.T) {
	transport := &fakeTransport{sendErr: errors.New("network is unreachable")}
	s := newFakeSyn(t, transport)

	outcome := s.Probe(context.Background(), "target", 80)
	assert.Equal(t, result.Error, outcome.Status)
	assert.Contains(t, outcome.Detail, "network is unreachable")

	outcome = s.Probe(context.Background(), "unknown", 80)
	assert.Equal(t, result.Error, outcome.Status)
	assert.Contains(t, outcome.Detail, "could not resolve")
}

func TestSynClose(t *testing.T) {
	transport := &fakeTransport{}
	s := newFakeSyn(t, transport)

	require.NoError(t, s.Close())
	assert.True(t, transport.closed)
}

func TestSynNeedsPrivileges(t *testing.T) {
	original := privileges.Check
	defer func() { privileges.Check = original }()
	privileges.Check = func() error { return privileges.ErrMissingCapNetRaw }

	_, err := NewStrategy(protocol.TCPSyn, &Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNeedPrivileges))
	assert.Contains(t, err.Error(), "CAP_NET_RAW")

	privileges.Check = func() error { return privileges.ErrNotRoot }
	_, err = NewSynStrategy(&Options{})
	assert.True(t, errors.Is(err, ErrNeedPrivileges))
	assert.Contains(t, err.Error(), "not running as root")

	// an injected transport skips the check
	s, err := NewSynStrategy(&Options{Transport: &fakeTransport{}, Resolver: staticResolver{}})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestReplyIsSynAck(t *testing.T) {
	assert.True(t, Reply{SYN: true, ACK: true}.IsSynAck())
	assert.False(t, Reply{SYN: true}.IsSynAck())
	assert.False(t, Reply{RST: true, ACK: true}.IsSynAck())
}

func TestRawTransportWaiters(t *testing.T) {
	transport := &RawSocketTransport{waiters: make(map[string][]*waiter)}
	ip := net.ParseIP("192.0.2.1")
	key := waiterKey(ip, 80)

	// two probes of the same address, e.g. a host listed under two names
	first := &waiter{ch: make(chan Reply, 1)}
	second := &waiter{ch: make(chan Reply, 1)}
	transport.waiters[key] = []*waiter{first, second}

	done := make(chan Reply, 2)
	for i := 0; i < 2; i++ {
		go func() {
			reply, err := transport.ReceiveWithTimeout(ip, 80, 2*time.Second)
			if err == nil {
				done <- reply
			}
		}()
	}
	require.Eventually(t, func() bool {
		transport.mu.Lock()
		defer transport.mu.Unlock()
		return first.claimed && second.claimed
	}, time.Second, 5*time.Millisecond)

	transport.dispatch(key, Reply{RST: true})
	for i := 0; i < 2; i++ {
		select {
		case reply := <-done:
			assert.True(t, reply.RST)
		case <-time.After(2 * time.Second):
			t.Fatal("waiter did not receive the reply")
		}
	}

	require.Eventually(t, func() bool {
		transport.mu.Lock()
		defer transport.mu.Unlock()
		return len(transport.waiters) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRawTransportNoReply(t *testing.T) {
	transport := &RawSocketTransport{waiters: make(map[string][]*waiter)}

	_, err := transport.ReceiveWithTimeout(net.ParseIP("192.0.2.1"), 81, 20*time.Millisecond)
	assert.True(t, errors.Is(err, ErrNoReply))
	assert.Empty(t, transport.waiters)
}

func TestTCPSequencer(t *testing.T) {
	seq := NewTCPSequencer()
	first := seq.Next()
	assert.Equal(t, first+1, seq.Next())
}
