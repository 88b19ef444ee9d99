package utils

import (
	"os"
	"testing"

	"github.com/google/uuid"
)

func init() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
}

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(userID, "user@test.com", "founder")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "user@test.com" {
		t.Errorf("expected email user@test.com, got %s", claims.Email)
	}
	if claims.Role != "founder" {
		t.Errorf("expected role founder, got %s", claims.Role)
	}
}

func TestValidateTokenTampered(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "user@test.com", "founder")
	if err != nil {
		t.Fatal(err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("expected error for tampered token")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "user@test.com", "founder")
	if err != nil {
		t.Fatal(err)
	}

	os.Setenv("JWT_SECRET", "a-completely-different-secret")
	defer os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	if _, err := ValidateToken(token); err == nil {
		t.Error("expected error for token signed with different secret")
	}
}
