package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
)

func TestCertificateGetByIDAuthorization(t *testing.T) {
	store := newFakeCertificateStore()
	ctx := context.Background()
	if _, err := store.Insert(ctx, 5, 1, "abc-123"); err != nil {
		t.Fatalf("seed certificate: %v", err)
	}
	svc := NewCertificateService(store, nil, nil, zerolog.Nop())

	tests := []struct {
		name        string
		requesterID int64
		role        models.RoleType
		wantErr     error
	}{
		{"holder reads own certificate", 5, models.RoleMember, nil},
		{"admin reads any certificate", 2, models.RoleAdmin, nil},
		{"other member denied", 6, models.RoleMember, apperrors.ErrPermissionDenied},
		{"leader is not the holder", 3, models.RoleLeader, apperrors.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cert, err := svc.GetByID(ctx, 1, tt.requesterID, tt.role)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if cert.Code != "abc-123" {
				t.Fatalf("got code %q, want abc-123", cert.Code)
			}
		})
	}
}

func TestCertificateGetByIDNotFound(t *testing.T) {
	svc := NewCertificateService(newFakeCertificateStore(), nil, nil, zerolog.Nop())
	_, err := svc.GetByID(context.Background(), 999, 5, models.RoleAdmin)
	if !errors.Is(err, apperrors.ErrCertificateNotFound) {
		t.Fatalf("got %v, want ErrCertificateNotFound", err)
	}
}
