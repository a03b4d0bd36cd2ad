package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	rediskv "github.com/garnizeh/ideabridge/internal/repository/redis"
)

// These tests need a live server; set IDEABRIDGE_TEST_REDIS_ADDR to run them.
func setupRepo(t *testing.T) *rediskv.Repo {
	t.Helper()
	addr := os.Getenv("IDEABRIDGE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("IDEABRIDGE_TEST_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	prefix := "ideabridge-test-" + uuid.NewString() + ":"
	r, err := rediskv.New(ctx, addr, "", 0, prefix, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestKVCRUD(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	kv := r.Profile("p1")
	t.Cleanup(func() { _, _ = r.DropProfile(context.Background(), "p1") })

	if _, ok, err := kv.Get(ctx, "ideabridge_user"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "ideabridge_user", `{"id":"1"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "ideabridge_user")
	if err != nil || !ok || v != `{"id":"1"}` {
		t.Fatalf("Get: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := kv.Delete(ctx, "ideabridge_user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "ideabridge_user"); ok {
		t.Fatalf("expected key deleted")
	}
}

func TestDropProfile(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := r.Profile("gone").Set(ctx, k, "1"); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	if err := r.Profile("kept").Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	t.Cleanup(func() { _, _ = r.DropProfile(context.Background(), "kept") })

	n, err := r.DropProfile(ctx, "gone")
	if err != nil {
		t.Fatalf("DropProfile: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 keys deleted, got %d", n)
	}
	if _, ok, _ := r.Profile("kept").Get(ctx, "a"); !ok {
		t.Fatalf("expected other profile untouched")
	}
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if _, err := rediskv.New(ctx, "127.0.0.1:1", "", 0, "", nil); err == nil {
		t.Fatalf("expected error connecting to closed port")
	}
}
