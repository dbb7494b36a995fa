package password

import (
	"strings"
	"testing"
)

func TestHashAndCheck(t *testing.T) {
	plain := "S3cure-Passw0rd!"

	hashed, err := HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == plain {
		t.Error("hash equals the plaintext")
	}
	if !strings.HasPrefix(hashed, "$2a$") && !strings.HasPrefix(hashed, "$2b$") {
		t.Errorf("hash %q does not look like bcrypt output", hashed)
	}

	if !CheckPasswordHash(plain, hashed) {
		t.Error("CheckPasswordHash rejected the correct password")
	}
	if CheckPasswordHash("wrong password", hashed) {
		t.Error("CheckPasswordHash accepted a wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salting is broken")
	}
}
