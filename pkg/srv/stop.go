package srv

import "context"

type stopOnReturn struct {
	Service
	stop context.CancelFunc
}

// StopOnReturn wraps a foreground service (an interactive prompt, a stdio
// server) so that its Start returning cancels the whole process context.
func StopOnReturn(s Service, stop context.CancelFunc) Service {
	return &stopOnReturn{Service: s, stop: stop}
}

func (s *stopOnReturn) Start(ctx context.Context) error {
	defer s.stop()
	return s.Service.Start(ctx)
}
