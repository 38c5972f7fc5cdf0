package server

import (
	"context"
	"errors"
	"log/slog"
)

// Shutdown stops accepting requests, waits for in-flight ones and then
// shuts the modules down in reverse boot order.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down http server")
	errs := []error{s.E.Shutdown(ctx)}
	for i := len(s.modules) - 1; i >= 0; i-- {
		if err := s.modules[i].Shutdown(ctx); err != nil {
			slog.Error("module shutdown failed", "module", s.modules[i].Name(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
