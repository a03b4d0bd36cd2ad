package api

import (
	"context"
	"net/http"
	"os"
	"strings"

	"log/slog"

	"github.com/gorilla/mux"
)

type ctxKey string

const CtxProfileID ctxKey = "profile_id"

// HeaderProfileToken carries the profile token in both directions.
const HeaderProfileToken = "X-Profile-Token"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept-Language, "+HeaderProfileToken)
		w.Header().Set("Access-Control-Expose-Headers", HeaderProfileToken)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// ProfileMiddleware resolves the storage profile of the caller from the
// X-Profile-Token header (or an Authorization bearer token). Callers without
// a token are given a new profile and its token in the response header; a
// token that does not verify is rejected.
func ProfileMiddleware(tokens *ProfileTokens) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(HeaderProfileToken)
			if tokenString == "" {
				if h := r.Header.Get("Authorization"); h != "" {
					var ok bool
					tokenString, ok = strings.CutPrefix(h, "Bearer ")
					if !ok || strings.TrimSpace(tokenString) == "" {
						writeError(w, http.StatusUnauthorized, "Invalid Authorization header")
						return
					}
				}
			}

			var profileID string
			if tokenString == "" {
				id, tok, err := tokens.New()
				if err != nil {
					logger.Error("failed to issue profile token", slog.Any("err", err))
					writeError(w, http.StatusInternalServerError, "Internal Server Error")
					return
				}
				profileID = id
				w.Header().Set(HeaderProfileToken, tok)
				logger.Debug("profile created", slog.String("profile", id))
			} else {
				id, err := tokens.Parse(strings.TrimSpace(tokenString))
				if err != nil {
					writeError(w, http.StatusUnauthorized, "Invalid or expired profile token")
					return
				}
				profileID = id
			}

			ctx := context.WithValue(r.Context(), CtxProfileID, profileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ProfileID returns the profile resolved by ProfileMiddleware.
func ProfileID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxProfileID).(string)
	return id, ok && id != ""
}
