package utils

import "testing"

func TestCheckPasswordBcrypt(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !CheckPassword(hash, "s3cret") {
		t.Error("correct password must verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password must not verify")
	}
}

func TestCheckPasswordPlaintext(t *testing.T) {
	if !CheckPassword("admin", "admin") {
		t.Error("plain stored credential must match itself")
	}
	if CheckPassword("admin", "other") {
		t.Error("plain stored credential must reject a different password")
	}
}
