package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
)

func newRepo(t *testing.T) (*RedisTokenRepo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewRedisTokenRepo(client), mr
}

func TestRedisTokenRepo_RevokeAndIsRevoked(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	exp := time.Now().Add(1 * time.Minute)
	if err := repo.Revoke(ctx, "jti2", exp); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err := repo.IsRevoked(ctx, "jti2")
	if err != nil {
		t.Fatalf("IsRevoked err: %v", err)
	}
	if !revoked {
		t.Fatal("token should be marked revoked")
	}
}

func TestRedisTokenRepo_IsRevoked_KeyAbsent(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "absent-jti")
	if err != nil {
		t.Fatalf("IsRevoked err: %v", err)
	}
	if revoked {
		t.Fatal("absent key must be considered NOT revoked")
	}
}

func TestRedisTokenRepo_EntryExpiresWithToken(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	if err := repo.Revoke(ctx, "short", time.Now().Add(30*time.Second)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	ttl := mr.TTL(revokedPrefix + "short")
	if ttl <= 0 || ttl > 30*time.Second {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	mr.FastForward(31 * time.Second)
	revoked, err := repo.IsRevoked(ctx, "short")
	if err != nil {
		t.Fatalf("IsRevoked err: %v", err)
	}
	if revoked {
		t.Fatal("entry must vanish once the token has expired")
	}
}

func TestRedisTokenRepo_ServerDown(t *testing.T) {
	repo, mr := newRepo(t)
	mr.Close()

	revoked, err := repo.IsRevoked(context.Background(), "any")
	if err == nil {
		t.Fatal("expected an error from a closed server")
	}
	if !revoked {
		t.Fatal("lookup failures must fail closed")
	}
	if repo.Ping(context.Background()) == nil {
		t.Fatal("Ping must fail")
	}
}

func TestSafeTTL(t *testing.T) {
	if got := safeTTL(time.Now().Add(-time.Second)); got != time.Minute {
		t.Fatalf("expired exp: got %v", got)
	}
	if got := safeTTL(time.Now().Add(time.Hour)); got <= 59*time.Minute {
		t.Fatalf("future exp: got %v", got)
	}
}
