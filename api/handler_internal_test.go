package api

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/garnizeh/ideabridge/internal/repository/memory"
)

func TestAnonymousRequestsKeepStateBounded(t *testing.T) {
	tokens := NewProfileTokens("testsecret", time.Hour)
	h := NewMarketplaceHandler(memory.New())
	handler := ProfileMiddleware(tokens)(http.HandlerFunc(h.ListProblems))

	locks := make(map[*sync.Mutex]bool)
	for i := 0; i < 1000; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/problems", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i, w.Code)
		}
		id, err := tokens.Parse(w.Header().Get(HeaderProfileToken))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		locks[h.locks.forProfile(id)] = true
	}

	if len(locks) > profileLockStripes {
		t.Fatalf("expected at most %d locks for 1000 profiles, got %d", profileLockStripes, len(locks))
	}
}

func TestProfileLockIsStable(t *testing.T) {
	var l profileLocks
	if l.forProfile("a") != l.forProfile("a") {
		t.Fatalf("one profile must always map to the same lock")
	}
}
