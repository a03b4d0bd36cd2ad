// Package marketplace implements the user-facing workflows (sign in,
// registration, posting problems, proposing solutions, dashboards) on top of
// the data store.
package marketplace

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/garnizeh/ideabridge/internal/store"
	"github.com/garnizeh/ideabridge/pkg/models"
)

type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func New(s *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: s, logger: logger}
}

func (s *Service) Store() *store.Store {
	return s.store
}

// requireRole returns the current user when it has one of roles.
func (s *Service) requireRole(ctx context.Context, roles ...models.Role) (*models.User, error) {
	u := s.store.CurrentUser(ctx)
	if u == nil {
		return nil, ErrUnauthenticated
	}
	if len(roles) == 0 {
		return u, nil
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return nil, ErrForbidden
}

func (s *Service) newID() string {
	return strconv.FormatInt(s.store.Now().UnixMilli(), 10)
}

func (s *Service) now() models.Timestamp {
	return models.NewTimestamp(s.store.Now())
}

// splitSkills turns "Go, React,, SQL" into [Go React SQL]; nil when empty.
func splitSkills(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
