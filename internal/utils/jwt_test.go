package utils

import (
	"testing"
)

func TestGenerateAndParseToken(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken("admin", 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("username = %q", claims.Username)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	token, err := GenerateToken("admin", 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	SetJWTSecret("secret-two")
	if _, err := ParseToken(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("garbage token must be rejected")
	}
}
