package database

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func Connect() (*sqlx.DB, error) {
	dsn := viper.GetString("DB_DSN")
	return sqlx.Connect("pgx", dsn)
}

// ConnectRedis opens a client for REDIS_ADDR and checks that the server answers.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: viper.GetString("REDIS_ADDR")})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
