package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/app/services"
	"github.com/brunofarias/jornada-lms/internal/middleware"
)

// CertificateController handles issued certificates and public verification
type CertificateController struct {
	certificateService *services.CertificateService
	logger             zerolog.Logger
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService *services.CertificateService, logger zerolog.Logger) *CertificateController {
	return &CertificateController{
		certificateService: certificateService,
		logger:             logger,
	}
}

// GetMine lists the caller's certificates
// @Summary List my certificates
// @Tags certificates
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CertificateResponse}
// @Security BearerAuth
// @Router /certificates/me [get]
func (c *CertificateController) GetMine(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	certificates, err := c.certificateService.GetAllByUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.CertificateResponse, 0, len(certificates))
	for _, cert := range certificates {
		resp = append(resp, dto.FromCertificate(cert))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetByCourse retrieves the caller's certificate for a course
// @Summary Get my certificate for a course
// @Tags certificates
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse}
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Security BearerAuth
// @Router /courses/{id}/certificate [get]
func (c *CertificateController) GetByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	certificate, err := c.certificateService.GetByUserAndCourse(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromCertificate(certificate)))
}

// GetByID retrieves a certificate by ID for its holder or an admin
// @Summary Get a certificate
// @Tags certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the holder"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Security BearerAuth
// @Router /certificates/{id} [get]
func (c *CertificateController) GetByID(ctx *gin.Context) {
	certificateID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)
	role, _ := middleware.GetUserRole(ctx)

	certificate, err := c.certificateService.GetByID(ctx.Request.Context(), certificateID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromCertificate(certificate)))
}

// UploadArtifact attaches a rendered certificate file
// @Summary Attach a certificate artifact
// @Tags certificates
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Certificate ID"
// @Param file formData file true "Rendered certificate file"
// @Success 200 {object} dto.APIResponse{data=dto.FileResponse}
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Security BearerAuth
// @Router /certificates/{id}/file [post]
func (c *CertificateController) UploadArtifact(ctx *gin.Context) {
	certificateID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file upload is required")))
		return
	}

	file, err := c.certificateService.AttachArtifact(ctx.Request.Context(), certificateID, userID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromFile(file)))
}

// Verify checks a certificate code. The endpoint is public so employers
// can validate a printed code.
// @Summary Verify a certificate
// @Tags certificates
// @Produce json
// @Param code path string true "Certificate code"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateVerifyResponse}
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Router /certificates/verify/{code} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Certificate code is required")))
		return
	}

	result, err := c.certificateService.Verify(ctx.Request.Context(), code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
