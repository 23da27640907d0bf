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

// CourseService handles the course catalog and course structure
type CourseService struct {
	courseRepo *repositories.CourseRepository
	lessonRepo *repositories.LessonRepository
	fileRepo   *repositories.FileRepository
	storage    filestorage.FileStorage
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	lessonRepo *repositories.LessonRepository,
	fileRepo *repositories.FileRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		fileRepo:   fileRepo,
		storage:    storage,
		logger:     logger,
	}
}

// Create adds a new unpublished course
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Title:            req.Title,
		Description:      req.Description,
		Slug:             req.Slug,
		InstructorID:     req.InstructorID,
		RequiresApproval: req.RequiresApproval,
		CertificateText:  req.CertificateText,
		WorkloadHours:    req.WorkloadHours,
	}
	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id
	s.logger.Info().Int64("courseID", id).Str("slug", course.Slug).Msg("Course created")
	return course, nil
}

// GetByID retrieves a course with its full module and lesson structure
func (s *CourseService) GetByID(ctx context.Context, courseID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.loadStructure(ctx, course)
}

// GetBySlug retrieves a course by slug with its structure
func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	course, err := s.courseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.loadStructure(ctx, course)
}

func (s *CourseService) loadStructure(ctx context.Context, course *models.Course) (*models.Course, error) {
	modules, err := s.courseRepo.GetModulesByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	for _, module := range modules {
		lessons, err := s.lessonRepo.GetByModule(ctx, module.ID)
		if err != nil {
			return nil, err
		}
		module.Lessons = lessons
	}
	course.Modules = modules
	return course, nil
}

// Update replaces the editable fields of a course
func (s *CourseService) Update(ctx context.Context, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	course.Title = req.Title
	course.Description = req.Description
	course.InstructorID = req.InstructorID
	course.RequiresApproval = req.RequiresApproval
	course.CertificateText = req.CertificateText
	course.WorkloadHours = req.WorkloadHours

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// SetPublished toggles catalog visibility
func (s *CourseService) SetPublished(ctx context.Context, courseID int64, published bool) error {
	return s.courseRepo.SetPublished(ctx, courseID, published)
}

// Delete removes a course. Refused while enrollments exist so student
// history is never silently destroyed.
func (s *CourseService) Delete(ctx context.Context, courseID int64) error {
	hasEnrollments, err := s.courseRepo.HasEnrollments(ctx, courseID)
	if err != nil {
		return err
	}
	if hasEnrollments {
		return apperrors.ErrCourseHasEnrollments
	}
	return s.courseRepo.Delete(ctx, courseID)
}

// GetAll retrieves the catalog with filtering and pagination
func (s *CourseService) GetAll(ctx context.Context, filter *dto.CourseFilterRequest) ([]*models.Course, int64, error) {
	return s.courseRepo.GetAll(ctx, filter.InstructorID, filter.Search, filter.Published, filter.Page, filter.PageSize)
}

// UploadCover stores a course cover image and links it to the course
func (s *CourseService) UploadCover(ctx context.Context, courseID, uploaderID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, "covers")
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
			s.logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to remove orphaned cover file")
		}
		return nil, err
	}
	file.ID = fileID

	course.CoverFileID = &fileID
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return file, nil
}

// --- Modules ---

// CreateModule adds a module to a course
func (s *CourseService) CreateModule(ctx context.Context, courseID int64, req *dto.CreateModuleRequest) (*models.CourseModule, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	module := &models.CourseModule{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	}
	id, err := s.courseRepo.CreateModule(ctx, module)
	if err != nil {
		return nil, err
	}
	module.ID = id
	return module, nil
}

// UpdateModule replaces the editable fields of a module
func (s *CourseService) UpdateModule(ctx context.Context, moduleID int64, req *dto.UpdateModuleRequest) (*models.CourseModule, error) {
	module, err := s.courseRepo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	module.Title = req.Title
	module.Description = req.Description
	module.Position = req.Position

	if err := s.courseRepo.UpdateModule(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule removes a module and its lessons
func (s *CourseService) DeleteModule(ctx context.Context, moduleID int64) error {
	return s.courseRepo.DeleteModule(ctx, moduleID)
}
