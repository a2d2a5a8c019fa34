package scan

import (
	"context"
	"net"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNeedPrivileges is returned when raw sockets cannot be opened
	ErrNeedPrivileges = errors.New("tcp-syn probing requires root or CAP_NET_RAW")
	// ErrNoReply is returned by a transport when nothing arrived before the timeout
	ErrNoReply = errors.New("no reply")
	// ErrUnknownProtocol is returned by NewStrategy for an invalid protocol
	ErrUnknownProtocol = errors.New("unknown protocol")
)

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isRefused matches ECONNREFUSED and the textual form socks5 proxies report
func isRefused(err error) bool {
	return isConnRefused(err) || strings.Contains(strings.ToLower(err.Error()), "connection refused")
}
