package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-for-signing"

// TestNewService_EmptySecret は空のシークレットが拒否されることを検証する。
func TestNewService_EmptySecret(t *testing.T) {
	_, err := NewService("", time.Hour)
	if err == nil {
		t.Fatal("expected error for empty secret")
	}
}

// TestNewService_DefaultTTL はTTL未指定時にデフォルトが適用されることを検証する。
func TestNewService_DefaultTTL(t *testing.T) {
	svc, err := NewService(testSecret, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.TTL() != DefaultTTL {
		t.Errorf("TTL() = %v, want %v", svc.TTL(), DefaultTTL)
	}
}

// TestIssueAndVerify_RoundTrip は発行したトークンが検証でクレームを復元することを検証する。
func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokenString, err := svc.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if tokenString == "" {
		t.Fatal("expected non-empty token string")
	}

	claims, err := svc.Verify(tokenString)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("claims.Email = %q, want %q", claims.Email, "user@example.com")
	}
}

// TestVerify_ExpiredToken は期限切れトークンが拒否されることを検証する。
func TestVerify_ExpiredToken(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1時間前に失効したトークンを直接構築する
	now := time.Now()
	stale := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})
	tokenString, err := stale.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	_, err = svc.Verify(tokenString)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestVerify_TamperedToken は署名が一致しないトークンが拒否されることを検証する。
func TestVerify_TamperedToken(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other, err := NewService("another-secret-entirely", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokenString, err := other.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Verify(tokenString)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestVerify_GarbageString はトークン形式でない文字列が拒否されることを検証する。
func TestVerify_GarbageString(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Verify("not-a-jwt-at-all")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestVerify_WrongSigningMethod はHMAC以外で署名されたトークンが拒否されることを検証する。
func TestVerify_WrongSigningMethod(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// alg=none のトークンを構築する
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "user@example.com"})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	_, err = svc.Verify(tokenString)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestVerify_MissingEmail はemailクレームを持たないトークンが拒否されることを検証する。
func TestVerify_MissingEmail(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now()
	unnamed := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	tokenString, err := unnamed.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	_, err = svc.Verify(tokenString)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestVerify_MissingExpiry はexpクレームを持たないトークンが拒否されることを検証する。
func TestVerify_MissingExpiry(t *testing.T) {
	svc, err := NewService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "user@example.com"})
	tokenString, err := eternal.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	_, err = svc.Verify(tokenString)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}
