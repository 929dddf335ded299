package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STEAKAWAY_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env, got %q", cfg.App.Env)
	}
	if !cfg.Cart.TaxRate.Equal(decimal.RequireFromString("0.16")) {
		t.Fatalf("unexpected tax rate: %s", cfg.Cart.TaxRate)
	}
	if !cfg.Cart.MergesDuplicates() {
		t.Fatal("merge should be the default duplicate policy")
	}
	if cfg.Redis.Configured() {
		t.Fatal("redis should be unconfigured by default")
	}
}

func TestLoadRejectsBadDuplicatePolicy(t *testing.T) {
	t.Setenv("STEAKAWAY_JWT_SECRET", "test-secret")
	t.Setenv("STEAKAWAY_CART_DUPLICATE_POLICY", "duplicate")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown duplicate policy")
	}
}

func TestLoadRejectsNegativeTaxRate(t *testing.T) {
	t.Setenv("STEAKAWAY_JWT_SECRET", "test-secret")
	t.Setenv("STEAKAWAY_CART_TAX_RATE", "-0.05")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative tax rate")
	}
}

func TestAppendPolicy(t *testing.T) {
	t.Setenv("STEAKAWAY_JWT_SECRET", "test-secret")
	t.Setenv("STEAKAWAY_CART_DUPLICATE_POLICY", "append")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cart.MergesDuplicates() {
		t.Fatal("append policy should not merge")
	}
}
