package redis

import (
	"context"
	"errors"
)

// Healthcheck pings the storage's server.
func (s *Storage) Healthcheck(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
