package database

import (
	"context"

	"fleet-registry/lib/config"

	"github.com/redis/go-redis/v9"
)

func InitRedis() (*redis.Client, error) {
	opt, err := redis.ParseURL(config.RedisURL())
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
