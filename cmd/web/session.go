package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/garnizeh/ideabridge/internal/i18n"
	"github.com/garnizeh/ideabridge/internal/marketplace"
	"github.com/garnizeh/ideabridge/internal/store"
	"github.com/garnizeh/ideabridge/pkg/models"
	"github.com/garnizeh/ideabridge/pkg/repository"
)

// session is the marketplace as seen by one page: the service bound to the
// browser storage and the locale the page renders in.
type session struct {
	svc *marketplace.Service
	loc i18n.Locale
}

// openSession binds a service to kv. navigatorLang is navigator.language and
// only matters while no locale is stored.
func openSession(ctx context.Context, kv repository.KV, navigatorLang string) *session {
	logger := slog.Default()
	svc := marketplace.New(store.New(kv, store.WithLogger(logger)), logger)
	stored, _ := svc.Store().Locale(ctx)
	return &session{svc: svc, loc: i18n.Resolve(stored, navigatorLang)}
}

func (s *session) t(key string) string {
	return i18n.T(s.loc, key)
}

func (s *session) setLocale(ctx context.Context, loc i18n.Locale) error {
	if err := s.svc.Store().SetLocale(ctx, string(loc)); err != nil {
		return err
	}
	s.loc = loc
	return nil
}

// errorMessages turns a workflow error into translated messages per field.
// Errors not tied to a field are keyed by "".
func (s *session) errorMessages(err error) map[string]string {
	if err == nil {
		return nil
	}
	var ve *marketplace.ValidationError
	if errors.As(err, &ve) {
		out := make(map[string]string, len(ve.Fields))
		for f, key := range ve.Fields {
			out[f] = s.t(key)
		}
		return out
	}

	var key string
	switch {
	case errors.Is(err, marketplace.ErrUnauthenticated):
		key = "common.unauthenticated"
	case errors.Is(err, marketplace.ErrForbidden):
		key = "common.forbidden"
	case errors.Is(err, marketplace.ErrNotOpen):
		key = "problems.detail.notOpen"
	case errors.Is(err, marketplace.ErrNotFound):
		key = "problems.detail.problemNotFound"
	default:
		return map[string]string{"": err.Error()}
	}
	return map[string]string{"": s.t(key)}
}

type problemRow struct {
	ID       string
	Title    string
	Category string
	Urgency  string
	Status   string
	Date     string
}

func (s *session) problemRows(ps []models.Problem) []problemRow {
	rows := make([]problemRow, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, problemRow{
			ID:       p.ID,
			Title:    p.Title,
			Category: i18n.CategoryLabel(s.loc, p.Category),
			Urgency:  i18n.UrgencyLabel(s.loc, p.Urgency),
			Status:   i18n.ProblemStatusLabel(s.loc, p.Status),
			Date:     i18n.FormatDate(s.loc, p.CreatedAt.Time),
		})
	}
	return rows
}
