package services

import (
	"context"
	"mime/multipart"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/app/repositories"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/filestorage"
)

// CertificateService reads issued certificates and manages their rendered
// artifacts. Issuance itself lives in the completion chain in
// ProgressService.
type CertificateService struct {
	certificateStore CertificateStore
	fileRepo         *repositories.FileRepository
	storage          filestorage.FileStorage
	logger           zerolog.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	certificateStore CertificateStore,
	fileRepo *repositories.FileRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *CertificateService {
	return &CertificateService{
		certificateStore: certificateStore,
		fileRepo:         fileRepo,
		storage:          storage,
		logger:           logger,
	}
}

// GetAllByUser retrieves a user's certificates
func (s *CertificateService) GetAllByUser(ctx context.Context, userID int64) ([]*models.Certificate, error) {
	return s.certificateStore.GetAllByUser(ctx, userID)
}

// GetByUserAndCourse retrieves a user's certificate for a course
func (s *CertificateService) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Certificate, error) {
	return s.certificateStore.GetByUserAndCourse(ctx, userID, courseID)
}

// GetByID retrieves a certificate. Only the holder or an admin may read it;
// everyone else goes through the public verification code.
func (s *CertificateService) GetByID(ctx context.Context, certificateID, requesterID int64, requesterRole models.RoleType) (*models.Certificate, error) {
	cert, err := s.certificateStore.GetByID(ctx, certificateID)
	if err != nil {
		return nil, err
	}
	if cert.UserID != requesterID && requesterRole != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}
	return cert, nil
}

// AttachArtifact stores a rendered certificate file and links it to the
// certificate, replacing any previous artifact reference.
func (s *CertificateService) AttachArtifact(ctx context.Context, certificateID, uploaderID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	if _, err := s.certificateStore.GetByID(ctx, certificateID); err != nil {
		return nil, err
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, "certificates")
	if err != nil {
		return nil, err
	}

	file := &models.File{
		FileName:   filepath.Base(fileHeader.Filename),
		FilePath:   s.storage.GetFullPath(fileURL),
		FileURL:    fileURL,
		FileSize:   fileHeader.Size,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		UploadedBy: uploaderID,
	}
	fileID, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		// Roll the stored file back so storage and DB stay in step
		if delErr := s.storage.DeleteFile(fileURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to remove orphaned certificate file")
		}
		return nil, err
	}
	file.ID = fileID

	if err := s.certificateStore.AttachFile(ctx, certificateID, fileID); err != nil {
		return nil, err
	}
	return file, nil
}

// Verify resolves a public verification code into the certificate's
// holder and course. This endpoint requires no authentication.
func (s *CertificateService) Verify(ctx context.Context, code string) (*dto.CertificateVerifyResponse, error) {
	cert, err := s.certificateStore.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &dto.CertificateVerifyResponse{
		Code:          cert.Code,
		HolderName:    cert.User.FullName(),
		CourseTitle:   cert.Course.Title,
		WorkloadHours: cert.Course.WorkloadHours,
		IssuedAt:      cert.IssuedAt,
	}, nil
}
