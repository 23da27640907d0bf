package repositories

import (
	"github.com/brunofarias/jornada-lms/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	CourseRepository       *CourseRepository
	LessonRepository       *LessonRepository
	EnrollmentRepository   *EnrollmentRepository
	ProgressRepository     *ProgressRepository
	CertificateRepository  *CertificateRepository
	NotificationRepository *NotificationRepository
	ReviewRepository       *ReviewRepository
	FileRepository         *FileRepository
}

// NewRepositories initializes all repositories over the given querier.
// Passing a pgx.Tx instead of the pool yields a transaction-scoped set,
// which is how the enrollment lifecycle chain runs atomically.
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(q),
		TokenRepository:        NewTokenRepository(q),
		CourseRepository:       NewCourseRepository(q),
		LessonRepository:       NewLessonRepository(q),
		EnrollmentRepository:   NewEnrollmentRepository(q),
		ProgressRepository:     NewProgressRepository(q),
		CertificateRepository:  NewCertificateRepository(q),
		NotificationRepository: NewNotificationRepository(q),
		ReviewRepository:       NewReviewRepository(q),
		FileRepository:         NewFileRepository(q),
	}
}
