package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

type profileKV struct {
	repo    *SQLiteRepo
	profile string
}

func (p *profileKV) Get(ctx context.Context, key string) (string, bool, error) {
	row := p.repo.conn.QueryRow(ctx, `SELECT value FROM kv_entries WHERE profile = ? AND key = ?`, p.profile, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (p *profileKV) Set(ctx context.Context, key, value string) error {
	_, err := p.repo.conn.Exec(ctx, `INSERT INTO kv_entries (profile, key, value, updated) VALUES (?, ?, ?, ?) ON CONFLICT(profile, key) DO UPDATE SET value=excluded.value, updated=excluded.updated`, p.profile, key, value, now())
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	p.repo.logger.Debug("kv set", slog.String("profile", p.profile), slog.String("key", key), slog.Int("bytes", len(value)))
	return nil
}

func (p *profileKV) Delete(ctx context.Context, key string) error {
	if _, err := p.repo.conn.Exec(ctx, `DELETE FROM kv_entries WHERE profile = ? AND key = ?`, p.profile, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
