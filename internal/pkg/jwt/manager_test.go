package jwt

import (
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Secret:   "test-secret-key",
		Issuer:   "garimoto",
		Audience: "garimoto-admin",
		TTL:      time.Hour,
	}
}

func TestGenerateAndVerify(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("manager init failed: %v", err)
	}

	token, jti, expiresAt, err := m.Generate(42, []string{"admin"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty JTI")
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expected a future expiry")
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.IdentityID != 42 {
		t.Fatalf("expected identity 42, got %d", claims.IdentityID)
	}
	if claims.ID != jti {
		t.Fatalf("expected JTI %s, got %s", jti, claims.ID)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "admin" {
		t.Fatalf("expected roles [admin], got %v", claims.Roles)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m1, _ := NewManager(testConfig())

	cfg := testConfig()
	cfg.Secret = "another-secret"
	m2, _ := NewManager(cfg)

	token, _, _, err := m1.Generate(1, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := m2.Verify(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, _ := NewManager(testConfig())
	if _, err := m.Verify("not.a.token"); err == nil {
		t.Fatal("expected verification to fail")
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = ""
	if _, err := NewManager(cfg); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
