package database

import (
	"context"

	"fleet-registry/lib/config"

	"github.com/jackc/pgx/v4/pgxpool"
)

func InitPostgres() (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(context.Background(), config.PostgresURL())
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
