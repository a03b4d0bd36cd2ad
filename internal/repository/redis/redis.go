// Package redis keeps profile namespaces in Redis. Redis has no per-profile
// database isolation, so every key is prefixed with the profile id.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/garnizeh/ideabridge/pkg/repository"
)

const defaultPrefix = "ideabridge:"

type Repo struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

var (
	_ repository.Profiles = (*Repo)(nil)
	_ repository.Dropper  = (*Repo)(nil)
)

// New connects to address and verifies the connection with PING.
func New(ctx context.Context, address, password string, db int, prefix string, logger *slog.Logger) (*Repo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(client, prefix, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string, logger *slog.Logger) *Repo {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repo{client: client, prefix: prefix, logger: logger}
}

func (r *Repo) Profile(id string) repository.KV {
	return &profileKV{repo: r, ns: fmt.Sprintf("%s%s:", r.prefix, id)}
}

// DropProfile removes every key of a profile.
func (r *Repo) DropProfile(ctx context.Context, id string) (int, error) {
	pattern := fmt.Sprintf("%s%s:*", r.prefix, id)
	var cursor uint64
	var deleted int

	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan keys: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, fmt.Errorf("failed to delete keys: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	r.logger.Info("redis profile dropped", "profile", id, "keys_deleted", deleted)
	return deleted, nil
}

func (r *Repo) Close() error {
	return r.client.Close()
}

type profileKV struct {
	repo *Repo
	ns   string
}

func (p *profileKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := p.repo.client.Get(ctx, p.ns+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (p *profileKV) Set(ctx context.Context, key, value string) error {
	if err := p.repo.client.Set(ctx, p.ns+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (p *profileKV) Delete(ctx context.Context, key string) error {
	if err := p.repo.client.Del(ctx, p.ns+key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
