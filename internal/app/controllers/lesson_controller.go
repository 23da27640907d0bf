package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/app/services"
	"github.com/brunofarias/jornada-lms/internal/middleware"
)

// LessonController handles lessons, lesson media and quizzes
type LessonController struct {
	lessonService *services.LessonService
	logger        zerolog.Logger
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService *services.LessonService, logger zerolog.Logger) *LessonController {
	return &LessonController{
		lessonService: lessonService,
		logger:        logger,
	}
}

// Create adds a lesson to a module
// @Summary Create a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param request body dto.CreateLessonRequest true "Lesson data"
// @Success 201 {object} dto.APIResponse{data=dto.LessonResponse}
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Security BearerAuth
// @Router /modules/{moduleId}/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	lesson, err := c.lessonService.Create(ctx.Request.Context(), moduleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromLesson(lesson)))
}

// GetByID retrieves a lesson
// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse}
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /lessons/{id} [get]
func (c *LessonController) GetByID(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.lessonService.GetByID(ctx.Request.Context(), lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromLesson(lesson)))
}

// Update edits a lesson
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Lesson data"
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse}
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	lesson, err := c.lessonService.Update(ctx.Request.Context(), lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromLesson(lesson)))
}

// Delete removes a lesson
// @Summary Delete a lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.lessonService.Delete(ctx.Request.Context(), lessonID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Lesson deleted"}))
}

// UploadVideo attaches a video file to a video lesson
// @Summary Upload lesson video
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Lesson ID"
// @Param video formData file true "Video file"
// @Success 201 {object} dto.APIResponse{data=dto.FileResponse}
// @Failure 400 {object} dto.ErrorResponse "Lesson is not a video lesson"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /lessons/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	fileHeader, err := ctx.FormFile("video")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Video file is required")))
		return
	}

	file, err := c.lessonService.UploadVideo(ctx.Request.Context(), lessonID, userID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromFile(file)))
}

// AddQuestion adds a question to a quiz lesson
// @Summary Add a quiz question
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponse}
// @Failure 400 {object} dto.ErrorResponse "Lesson is not a quiz"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /lessons/{id}/questions [post]
func (c *LessonController) AddQuestion(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateQuestionRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	question, err := c.lessonService.AddQuestion(ctx.Request.Context(), lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromQuestion(question)))
}

// GetQuestions lists the questions of a quiz lesson
// @Summary List quiz questions
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.QuestionResponse}
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /lessons/{id}/questions [get]
func (c *LessonController) GetQuestions(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.lessonService.GetQuestions(ctx.Request.Context(), lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.QuestionResponse, 0, len(questions))
	for _, question := range questions {
		resp = append(resp, dto.FromQuestion(question))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteQuestion removes a quiz question
// @Summary Delete a quiz question
// @Tags lessons
// @Produce json
// @Param questionId path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /questions/{questionId} [delete]
func (c *LessonController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.lessonService.DeleteQuestion(ctx.Request.Context(), questionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Question deleted"}))
}

// SubmitQuiz grades a quiz submission and records lesson completion
// @Summary Submit quiz answers
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body dto.SubmitQuizRequest true "Chosen options"
// @Success 200 {object} dto.APIResponse{data=dto.QuizResultResponse}
// @Failure 403 {object} dto.ErrorResponse "Enrollment not approved"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /lessons/{id}/submit [post]
func (c *LessonController) SubmitQuiz(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SubmitQuizRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	result, err := c.lessonService.SubmitQuiz(ctx.Request.Context(), userID, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// SubmitAnswers stores subjective quiz answers and records lesson completion
// @Summary Submit subjective answers
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body dto.SubmitSubjectiveRequest true "Answers per question"
// @Success 200 {object} dto.APIResponse{data=dto.CompleteLessonResponse}
// @Failure 403 {object} dto.ErrorResponse "Enrollment not approved"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /lessons/{id}/answers [post]
func (c *LessonController) SubmitAnswers(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SubmitSubjectiveRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	result, err := c.lessonService.SubmitSubjective(ctx.Request.Context(), userID, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
