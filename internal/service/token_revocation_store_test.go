package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisKVClient struct {
	lastSetKey string
	lastSetVal interface{}
	lastSetTTL time.Duration
	lastExists []string

	setErr    error
	existsErr error
	existsN   int64
	setCalls  int
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.setCalls++
	m.lastSetKey = key
	m.lastSetVal = value
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKVClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastExists = keys
	cmd := redis.NewIntCmd(ctx)
	if m.existsErr != nil {
		cmd.SetErr(m.existsErr)
		return cmd
	}
	cmd.SetVal(m.existsN)
	return cmd
}

func TestMemoryTokenRevocationStore_ExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenRevocationStore()

	ok, err := store.IsRevoked(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("expected missing jti false,nil; got %v,%v", ok, err)
	}

	if err := store.Revoke(ctx, "jti-1", 50*time.Millisecond); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	ok, err = store.IsRevoked(ctx, "jti-1")
	if err != nil || !ok {
		t.Fatalf("expected revoked, got %v,%v", ok, err)
	}

	time.Sleep(70 * time.Millisecond)
	ok, err = store.IsRevoked(ctx, "jti-1")
	if err != nil || ok {
		t.Fatalf("expected entry to expire, got %v,%v", ok, err)
	}
}

func TestMemoryTokenRevocationStore_IgnoresEmptyAndExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenRevocationStore()
	if err := store.Revoke(ctx, "", time.Minute); err != nil {
		t.Fatalf("empty jti should be no-op, got %v", err)
	}
	if err := store.Revoke(ctx, "jti-2", 0); err != nil {
		t.Fatalf("non-positive ttl should be no-op, got %v", err)
	}
	if ok, _ := store.IsRevoked(ctx, "jti-2"); ok {
		t.Fatalf("token with no remaining life must not be stored")
	}
}

func TestRedisTokenRevocationStore_Basics(t *testing.T) {
	ctx := context.Background()
	mock := &mockRedisKVClient{existsN: 1}
	store := &redisTokenRevocationStore{client: mock, prefix: "auth:revoked:", timeout: time.Second}

	if err := store.Revoke(ctx, " j1 ", 10*time.Minute); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if mock.lastSetKey != "auth:revoked:j1" {
		t.Fatalf("unexpected key, got %q", mock.lastSetKey)
	}
	if mock.lastSetTTL != 10*time.Minute {
		t.Fatalf("expected ttl to be forwarded, got %v", mock.lastSetTTL)
	}

	ok, err := store.IsRevoked(ctx, " j1 ")
	if err != nil || !ok {
		t.Fatalf("expected revoked true,nil; got %v,%v", ok, err)
	}
	if len(mock.lastExists) != 1 || mock.lastExists[0] != "auth:revoked:j1" {
		t.Fatalf("unexpected exists key: %+v", mock.lastExists)
	}
}

func TestRedisTokenRevocationStore_ErrorPathsAndNoops(t *testing.T) {
	ctx := context.Background()
	mock := &mockRedisKVClient{
		setErr:    errors.New("set failed"),
		existsErr: errors.New("exists failed"),
	}
	store := &redisTokenRevocationStore{client: mock, prefix: "auth:revoked:", timeout: time.Second}

	if err := store.Revoke(ctx, "", time.Minute); err != nil {
		t.Fatalf("empty jti should be no-op, got %v", err)
	}
	if err := store.Revoke(ctx, "j2", -time.Second); err != nil {
		t.Fatalf("expired token should be no-op, got %v", err)
	}
	if mock.setCalls != 0 {
		t.Fatalf("expected no redis writes for no-ops, got %d", mock.setCalls)
	}
	if ok, err := store.IsRevoked(ctx, ""); err != nil || ok {
		t.Fatalf("empty jti should be false,nil; got %v,%v", ok, err)
	}
	if err := store.Revoke(ctx, "j2", time.Minute); err == nil {
		t.Fatalf("expected set error")
	}
	if _, err := store.IsRevoked(ctx, "j2"); err == nil {
		t.Fatalf("expected exists error")
	}
}
