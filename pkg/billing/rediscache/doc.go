// Package rediscache keeps the last good placements of a billing provider in
// Redis so a restarted daemon can still show a paywall while the provider is
// unreachable.
//
//	client, _ := redis.Connect(ctx, redisCfg)
//	provider = rediscache.New(provider, redis.NewStorage(client, redisCfg))
package rediscache
