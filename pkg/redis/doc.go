// Package redis connects to Redis with go-redis/v9 and exposes a readiness
// check for the connection.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
package redis
