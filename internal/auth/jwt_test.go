package auth

import (
	"testing"
	"time"
)

func TestIssueAndValidateToken(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")

	token, err := issuer.IssueToken("user-1", "Ada", []string{AdminRole}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	claims, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %s", claims.Subject)
	}
	if claims.Name != "Ada" {
		t.Errorf("expected name Ada, got %s", claims.Name)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != AdminRole {
		t.Errorf("unexpected roles: %v", claims.Roles)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	other := NewJWTIssuer("other-secret")

	token, err := issuer.IssueToken("user-1", "Ada", nil, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")

	token, err := issuer.IssueToken("user-1", "Ada", nil, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	if _, err := issuer.ValidateToken(token); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")

	if _, err := issuer.ValidateToken("not-a-token"); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}

func TestHasRole(t *testing.T) {
	u := &User{Roles: []string{"WorkspaceOwner", AdminRole}}
	if !u.HasRole(AdminRole) {
		t.Error("expected HasRole to find the admin role")
	}
	if u.HasRole("WorkspaceResearcher") {
		t.Error("expected HasRole to miss an absent role")
	}
}
