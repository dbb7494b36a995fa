package paseto

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testKey() []byte {
	return []byte("01234567890123456789012345678901")
}

func TestNewMakerKeyLength(t *testing.T) {
	if _, err := NewMaker([]byte("too short")); err == nil {
		t.Error("NewMaker accepted a short key")
	}
	if _, err := NewMaker(testKey()); err != nil {
		t.Errorf("NewMaker rejected a 32-byte key: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	maker, err := NewMaker(testKey())
	if err != nil {
		t.Fatalf("NewMaker: %v", err)
	}

	claims := &Claims{
		UserID:     primitive.NewObjectID(),
		Email:      "jordan@example.com",
		Role:       "hr",
		EmployeeID: primitive.NewObjectID(),
	}

	token, err := maker.GenerateToken(claims)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !strings.HasPrefix(token, "v2.local.") {
		t.Errorf("token prefix = %q, want v2.local.", token[:min(len(token), 9)])
	}

	decoded, err := maker.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if decoded.UserID != claims.UserID {
		t.Errorf("UserID = %v, want %v", decoded.UserID, claims.UserID)
	}
	if decoded.Email != claims.Email || decoded.Role != claims.Role {
		t.Errorf("identity claims = %q/%q, want %q/%q", decoded.Email, decoded.Role, claims.Email, claims.Role)
	}
	if decoded.EmployeeID != claims.EmployeeID {
		t.Errorf("EmployeeID = %v, want %v", decoded.EmployeeID, claims.EmployeeID)
	}
}

func TestTokenWithoutEmployeeID(t *testing.T) {
	maker, err := NewMaker(testKey())
	if err != nil {
		t.Fatalf("NewMaker: %v", err)
	}

	claims := &Claims{
		UserID: primitive.NewObjectID(),
		Email:  "admin@example.com",
		Role:   "admin",
	}

	token, err := maker.GenerateToken(claims)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	decoded, err := maker.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !decoded.EmployeeID.IsZero() {
		t.Errorf("EmployeeID = %v, want zero ObjectID", decoded.EmployeeID)
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	maker, err := NewMaker(testKey())
	if err != nil {
		t.Fatalf("NewMaker: %v", err)
	}

	token, err := maker.GenerateToken(&Claims{UserID: primitive.NewObjectID(), Role: "employee"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other, err := NewMaker([]byte("abcdefghijklmnopqrstuvwxyz012345"))
	if err != nil {
		t.Fatalf("NewMaker: %v", err)
	}
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted a token encrypted with a different key")
	}
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	maker, err := NewMaker(testKey())
	if err != nil {
		t.Fatalf("NewMaker: %v", err)
	}
	if _, err := maker.GenerateToken(&Claims{Role: "employee"}); err == nil {
		t.Error("GenerateToken accepted a zero user id")
	}
}
