package config

import (
	"testing"

	"github.com/meiduo-next/internal/constants"
)

func TestLoadCartDefaultsFollowConstants(t *testing.T) {
	cfg := Load()
	if cfg.Cart.CookieName != constants.CartCookieName {
		t.Fatalf("cookie name want %q got %q", constants.CartCookieName, cfg.Cart.CookieName)
	}
	if cfg.Cart.CookieMaxAge != constants.CartCookieMaxAge {
		t.Fatalf("cookie max age want %d got %d", constants.CartCookieMaxAge, cfg.Cart.CookieMaxAge)
	}
}

func TestLoadEnvOverrideWithPrefix(t *testing.T) {
	t.Setenv("MEIDUO_SERVER_PORT", "9099")
	t.Setenv("MEIDUO_CART_COOKIE_SECURE", "true")

	cfg := Load()
	if cfg.Server.Port != "9099" {
		t.Fatalf("server port want 9099 got %q", cfg.Server.Port)
	}
	if !cfg.Cart.CookieSecure {
		t.Fatalf("cookie secure must follow env override")
	}
}
