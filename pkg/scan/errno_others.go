//go:build !unix

package scan

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

func isConnRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

func isPermission(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
