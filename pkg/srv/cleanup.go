package srv

import (
	"context"
	"errors"
)

// cleanupService only does work on Shutdown.
type cleanupService struct {
	closers []func() error
}

func (c *cleanupService) Start(context.Context) error {
	return nil
}

// Shutdown runs the closers in reverse order and joins their errors.
func (c *cleanupService) Shutdown(context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if c.closers[i] == nil {
			continue
		}
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewCleanup wraps closers, typically database handles, as a Service so
// they shut down together with the transports.
func NewCleanup(closers ...func() error) Service {
	return &cleanupService{closers: closers}
}
