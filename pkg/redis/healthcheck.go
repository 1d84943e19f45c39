package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *redis.Client and redis.UniversalClient.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Healthcheck returns a /readyz check. It fails with ErrUnavailable when the
// ping errors or the server answers anything but PONG.
func Healthcheck(client Pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		reply, err := client.Ping(ctx).Result()
		switch {
		case err != nil:
			return errors.Join(ErrUnavailable, err)
		case reply != "PONG":
			return fmt.Errorf("%w: unexpected ping reply %q", ErrUnavailable, reply)
		}
		return nil
	}
}
