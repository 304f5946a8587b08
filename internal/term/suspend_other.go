//go:build !unix

package term

import "github.com/jteer/powertop/internal/errors"

func stopProcess() error {
	return errors.New(errors.ErrTerm, "suspend is not supported on this platform", "")
}
