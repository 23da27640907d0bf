package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    7,
		Email: "maria@jornada.app",
		Role:  models.RoleLeader,
	}
}

func newTestService(secret string, accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       secret,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 168 * time.Hour,
		TokenIssuer:     "jornada.app",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token in generated pair")
	}
	if access == refresh {
		t.Fatal("access and refresh tokens are identical")
	}
	if expiresIn != 3600 {
		t.Fatalf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != int((168 * time.Hour).Seconds()) {
		t.Fatalf("refreshExpiresIn = %d, want %d", refreshExpiresIn, int((168*time.Hour).Seconds()))
	}

	claims, err := svc.ValidateAndExtractClaims(access)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("claims.UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "maria@jornada.app" {
		t.Fatalf("claims.Email = %q, want maria@jornada.app", claims.Email)
	}
	if claims.Role != string(models.RoleLeader) {
		t.Fatalf("claims.Role = %q, want LEADER", claims.Role)
	}
	if claims.Issuer != "jornada.app" {
		t.Fatalf("claims.Issuer = %q, want jornada.app", claims.Issuer)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)
	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	other := newTestService("another-secret", time.Hour)
	if _, err := other.ValidateToken(access); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService("test-secret", -time.Minute)
	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	_, err = svc.ValidateToken(access)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("got %v, want ErrExpiredToken", err)
	}
}

func TestValidateEmptyToken(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)
	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer prefix", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"raw token", "abc.def.ghi", "abc.def.ghi", false},
		{"empty header", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
