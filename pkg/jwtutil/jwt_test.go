package jwtutil

import (
	"testing"
	"time"

	"github.com/JeansCordoba/Fruteria/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key", ExpirationTime: time.Hour})

	token, err := GenerateToken("ana.lopez", 7, 2)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "ana.lopez" || claims.UserID != 7 || claims.RoleID != 2 {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateTokenBadSignature(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "key-one", ExpirationTime: time.Hour})
	token, err := GenerateToken("ana.lopez", 7, 2)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	Initialize(&config.JWTConfig{SigningKey: "key-two", ExpirationTime: time.Hour})
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with a different key must not validate")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key", ExpirationTime: time.Hour})
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage must not validate")
	}
}
