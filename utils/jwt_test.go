package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestGenerateAndValidateAdminToken(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAdminToken("admin-1", "ops@drivefund.ng", "admin", []string{"analytics:read"})
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	claims, err := ValidateAdminToken(token)
	if err != nil {
		t.Fatalf("ValidateAdminToken: %v", err)
	}
	if claims.AdminID != "admin-1" || claims.Role != "admin" || claims.Issuer != adminTokenIssuer {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateAdminTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("secret-a")
	token, err := GenerateAdminToken("admin-1", "ops@drivefund.ng", "admin", nil)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	SetJWTSecret("secret-b")
	if _, err := ValidateAdminToken(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestValidateAdminTokenRejectsExpired(t *testing.T) {
	SetJWTSecret("test-secret")
	claims := &AdminClaims{
		AdminID: "admin-1",
		Role:    "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateAdminToken(token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestValidateAdminTokenRejectsUnsignedTokens(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &AdminClaims{AdminID: "x", Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateAdminToken(token); err == nil {
		t.Fatal("expected alg none to be rejected")
	}
}
