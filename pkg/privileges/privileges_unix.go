//go:build linux || darwin

package privileges

import (
	"os"

	"github.com/syndtr/gocapability/capability"
)

// checkRawSocket trusts the effective capability set when it can be read,
// root without CAP_NET_RAW (e.g. in a container) is still refused
func checkRawSocket() error {
	if caps, err := capability.NewPid2(0); err == nil {
		if err := caps.Load(); err == nil {
			if caps.Get(capability.EFFECTIVE, capability.CAP_NET_RAW) {
				return nil
			}
			return ErrMissingCapNetRaw
		}
	}

	if os.Geteuid() != 0 {
		return ErrNotRoot
	}
	return nil
}
