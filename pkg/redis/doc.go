// Package redis connects to Redis and exposes a small prefixed key-value
// Storage used to persist the last fetched placements.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewStorage(client, cfg)
//
// Healthcheck returns a check suitable for the health endpoint.
package redis
