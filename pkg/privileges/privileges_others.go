//go:build !linux && !darwin

package privileges

import "os"

func checkRawSocket() error {
	if os.Geteuid() != 0 {
		return ErrNotRoot
	}
	return nil
}
