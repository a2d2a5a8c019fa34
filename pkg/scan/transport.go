package scan

import (
	"net"
	"time"
)

// Reply is the interesting part of a tcp segment received from a probed port
type Reply struct {
	SYN bool
	ACK bool
	RST bool
	Seq uint32
	Ack uint32
}

// IsSynAck reports a handshake answer, meaning the port is listening
func (r Reply) IsSynAck() bool {
	return r.SYN && r.ACK
}

// RawTransport sends crafted segments and waits for the matching answer.
//
// SendSyn must be called before ReceiveWithTimeout for the same destination
// so no reply arriving in between is lost. ReceiveWithTimeout returns
// ErrNoReply when nothing matched before the timeout.
type RawTransport interface {
	SendSyn(dst net.IP, port int) error
	SendRst(dst net.IP, port int, seq uint32) error
	ReceiveWithTimeout(dst net.IP, port int, timeout time.Duration) (Reply, error)
	Close() error
}
