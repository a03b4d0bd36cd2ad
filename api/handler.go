package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/garnizeh/ideabridge/internal/i18n"
	"github.com/garnizeh/ideabridge/internal/marketplace"
	"github.com/garnizeh/ideabridge/internal/store"
	"github.com/garnizeh/ideabridge/pkg/repository"
)

// profileLockStripes bounds the number of write locks however many profiles
// are seen. Profiles hashing to the same stripe share a lock.
const profileLockStripes = 64

type profileLocks [profileLockStripes]sync.Mutex

func (l *profileLocks) forProfile(id string) *sync.Mutex {
	return &l[xxhash.Sum64String(id)%profileLockStripes]
}

// MarketplaceHandler serves the marketplace workflows. A service is built per
// request; writes to one profile serialize on its lock stripe.
type MarketplaceHandler struct {
	profiles repository.Profiles
	locks    profileLocks
}

func NewMarketplaceHandler(profiles repository.Profiles) *MarketplaceHandler {
	return &MarketplaceHandler{profiles: profiles}
}

func (h *MarketplaceHandler) service(ctx context.Context) *marketplace.Service {
	id, _ := ProfileID(ctx)

	var kv repository.KV
	if h.profiles != nil {
		kv = h.profiles.Profile(id)
	}
	l := logger.With(slog.String("profile", id))
	st := store.New(kv, store.WithLogger(l), store.WithLocker(h.locks.forProfile(id)))
	return marketplace.New(st, l)
}

// locale picks the response language from the stored preference, then
// Accept-Language.
func (h *MarketplaceHandler) locale(r *http.Request, svc *marketplace.Service) i18n.Locale {
	stored, _ := svc.Store().Locale(r.Context())
	return i18n.Resolve(stored, r.Header.Get("Accept-Language"))
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, errorResponse{Error: msg}, status)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

// writeServiceError maps marketplace errors to translated HTTP responses.
func writeServiceError(w http.ResponseWriter, loc i18n.Locale, err error) {
	var ve *marketplace.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make(map[string]string, len(ve.Fields))
		for f, key := range ve.Fields {
			fields[f] = i18n.T(loc, key)
		}
		writeJSON(w, errorResponse{Error: "validation failed", Fields: fields}, http.StatusUnprocessableEntity)
	case errors.Is(err, marketplace.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, i18n.T(loc, "common.unauthenticated"))
	case errors.Is(err, marketplace.ErrForbidden):
		writeError(w, http.StatusForbidden, i18n.T(loc, "common.forbidden"))
	case errors.Is(err, marketplace.ErrNotFound):
		writeError(w, http.StatusNotFound, i18n.T(loc, "problems.detail.problemNotFound"))
	case errors.Is(err, marketplace.ErrNotOpen):
		writeError(w, http.StatusConflict, i18n.T(loc, "problems.detail.notOpen"))
	default:
		logger.Error("request failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
