package main

import (
	"context"
	"errors"

	"github.com/bft-labs/defendcode/internal/domain"
)

// Process exit statuses.
const (
	ExitOK          = 0
	ExitUnexpected  = 1
	ExitConfig      = 2
	ExitOverflow    = 3
	ExitIO          = 4
	ExitInterrupted = 5
)

// exitCode maps a session or setup error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrUnexpected):
		return ExitUnexpected
	case errors.Is(err, domain.ErrInvalidConfig):
		return ExitConfig
	case errors.Is(err, domain.ErrOverflow):
		return ExitOverflow
	case errors.Is(err, domain.ErrIO):
		return ExitIO
	case errors.Is(err, domain.ErrInputClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	default:
		return ExitUnexpected
	}
}
