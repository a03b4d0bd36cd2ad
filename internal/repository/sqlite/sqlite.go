package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/garnizeh/ideabridge/internal/db"
	"github.com/garnizeh/ideabridge/pkg/repository"
)

// SQLiteRepo stores profile namespaces in the kv_entries table.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.Profiles = (*SQLiteRepo)(nil)
var _ repository.Dropper = (*SQLiteRepo)(nil)
var _ repository.KV = (*profileKV)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func (r *SQLiteRepo) Profile(id string) repository.KV {
	return &profileKV{repo: r, profile: id}
}

// Keys lists the keys stored for a profile, in key order.
func (r *SQLiteRepo) Keys(ctx context.Context, profile string) ([]string, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT key FROM kv_entries WHERE profile = ? ORDER BY key`, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// DropProfile removes every key of a profile.
func (r *SQLiteRepo) DropProfile(ctx context.Context, id string) (int, error) {
	keys, err := r.Keys(ctx, id)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if _, err := r.conn.Exec(ctx, `DELETE FROM kv_entries WHERE profile = ?`, id); err != nil {
		return 0, fmt.Errorf("failed to delete profile: %w", err)
	}

	r.logger.Info("sqlite profile dropped", slog.String("profile", id), slog.Any("keys", keys))
	return len(keys), nil
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
