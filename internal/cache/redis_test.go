package cache

import (
	"context"
	"testing"
	"time"
)

func TestRedisCacheUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	r := NewRedisCache("127.0.0.1:1", time.Minute)
	defer r.Close()

	if err := r.Ping(ctx); err == nil {
		t.Skip("something is listening on 127.0.0.1:1")
	}
	if _, ok := r.Get(ctx, "amortization:any"); ok {
		t.Error("expected miss when redis is unreachable")
	}
	if err := r.Set(ctx, "amortization:any", "{}"); err == nil {
		t.Error("expected error when redis is unreachable")
	}
}
