package redis

import (
	"context"
	"testing"

	"github.com/freefind/freefind-backend/pkg/config"
)

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when no url or address configured")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("expected pool size fallback, got %d", opts.PoolSize)
	}
}

func TestNilClientBehavesAsDisabledCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if _, err := c.GetCachedEstimate(ctx, EstimateKey("furniture", "good")); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := c.SetCachedEstimate(ctx, EstimateKey("furniture", "good"), "{}", 0); err != nil {
		t.Fatalf("nil client Set should no-op, got %v", err)
	}
	if err := c.RevokeSession(ctx, "jti", 0); err != nil {
		t.Fatalf("nil client RevokeSession should no-op, got %v", err)
	}
	revoked, err := c.IsSessionRevoked(ctx, "jti")
	if err != nil || revoked {
		t.Fatalf("nil client should never report revoked, got %v %v", revoked, err)
	}
	if err := c.Ping(ctx); err == nil {
		t.Fatal("nil client Ping should error for readiness checks")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil client Close should no-op, got %v", err)
	}
}

func TestEstimateKeyFormat(t *testing.T) {
	if got := EstimateKey("furniture", "good"); got != "ff:co2_estimate:furniture:good" {
		t.Fatalf("unexpected key %q", got)
	}
}
