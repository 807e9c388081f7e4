package hashing

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pass123" {
		t.Fatalf("password stored in clear")
	}

	if !CheckPassword(hash, "pass123") {
		t.Fatalf("expected the password to match its hash")
	}
	if CheckPassword(hash, "pass1234") {
		t.Fatalf("expected a different password to be rejected")
	}
	if CheckPassword("not-a-hash", "pass123") {
		t.Fatalf("expected a malformed hash to be rejected")
	}
}
