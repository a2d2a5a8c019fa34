// Package privileges reports whether the process may open raw sockets.
package privileges

import "github.com/pkg/errors"

var (
	// ErrNotRoot is returned when the effective user is not root and no
	// capability information is available
	ErrNotRoot = errors.New("not running as root")
	// ErrMissingCapNetRaw is returned when CAP_NET_RAW is not in the effective set
	ErrMissingCapNetRaw = errors.New("CAP_NET_RAW is not in the effective capability set")
)

// Check returns nil when raw packets can be crafted, otherwise the reason
// they cannot. It is a variable so callers can stub it.
var Check = checkRawSocket
