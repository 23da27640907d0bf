package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/app/services"
	"github.com/brunofarias/jornada-lms/internal/middleware"
	"github.com/brunofarias/jornada-lms/internal/pkg/helpers"
)

// CourseController handles the course catalog and course structure
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")))
		return 0, false
	}
	return id, true
}

// GetAll lists the course catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Param instructorId query int false "Instructor filter"
// @Param search query string false "Title or description search"
// @Param published query bool false "Visibility filter (leaders only)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse}
// @Security BearerAuth
// @Router /courses [get]
func (c *CourseController) GetAll(ctx *gin.Context) {
	var filter dto.CourseFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").WithDetails(err.Error())))
		return
	}

	// Students only see published courses
	role, _ := ctx.Get("role")
	if roleStr, ok := role.(string); !ok || roleStr == string(models.RoleMember) {
		published := true
		filter.Published = &published
	}

	courses, total, err := c.courseService.GetAll(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.CourseListResponse{
		Courses:        make([]dto.CourseResponse, 0, len(courses)),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}
	for _, course := range courses {
		resp.Courses = append(resp.Courses, dto.FromCourse(course))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetByID retrieves a course with its modules and lessons
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [get]
func (c *CourseController) GetByID(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetByID(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.CourseDetailResponse{
		CourseResponse: dto.FromCourse(course),
		Modules:        make([]dto.ModuleResponse, 0, len(course.Modules)),
	}
	for _, module := range course.Modules {
		resp.Modules = append(resp.Modules, dto.FromModule(module))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Create adds a new course
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 403 {object} dto.ErrorResponse "Leader or admin role required"
// @Failure 409 {object} dto.ErrorResponse "Slug already in use"
// @Security BearerAuth
// @Router /courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromCourse(course)))
}

// Update edits a course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course data"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	course, err := c.courseService.Update(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromCourse(course)))
}

// SetPublished toggles catalog visibility
// @Summary Publish or unpublish a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.PublishCourseRequest true "Visibility flag"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id}/publish [put]
func (c *CourseController) SetPublished(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PublishCourseRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.courseService.SetPublished(ctx.Request.Context(), courseID, req.IsPublished); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course visibility updated"}))
}

// Delete removes a course without enrollments
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has enrollments"
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course deleted"}))
}

// UploadCover attaches a cover image to a course
// @Summary Upload course cover
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Course ID"
// @Param cover formData file true "Cover image"
// @Success 201 {object} dto.APIResponse{data=dto.FileResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id}/cover [post]
func (c *CourseController) UploadCover(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	fileHeader, err := ctx.FormFile("cover")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Cover file is required")))
		return
	}

	file, err := c.courseService.UploadCover(ctx.Request.Context(), courseID, userID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromFile(file)))
}

// CreateModule adds a module to a course
// @Summary Create a course module
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CreateModuleRequest true "Module data"
// @Success 201 {object} dto.APIResponse{data=dto.ModuleResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id}/modules [post]
func (c *CourseController) CreateModule(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateModuleRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	module, err := c.courseService.CreateModule(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromModule(module)))
}

// UpdateModule edits a module
// @Summary Update a course module
// @Tags courses
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param request body dto.UpdateModuleRequest true "Module data"
// @Success 200 {object} dto.APIResponse{data=dto.ModuleResponse}
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Security BearerAuth
// @Router /modules/{moduleId} [put]
func (c *CourseController) UpdateModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}

	var req dto.UpdateModuleRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	module, err := c.courseService.UpdateModule(ctx.Request.Context(), moduleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromModule(module)))
}

// DeleteModule removes a module
// @Summary Delete a course module
// @Tags courses
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Security BearerAuth
// @Router /modules/{moduleId} [delete]
func (c *CourseController) DeleteModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}

	if err := c.courseService.DeleteModule(ctx.Request.Context(), moduleID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Module deleted"}))
}
