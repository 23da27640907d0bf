package services

import (
	"context"
	"time"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/repositories"
	"github.com/brunofarias/jornada-lms/internal/db"
)

// TxRunner runs a function within a database transaction. Satisfied by
// *db.PostgresDB in production.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// EnrollmentStore is the enrollment persistence surface used by services
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Enrollment, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	UpdateDecision(ctx context.Context, enrollmentID int64, status models.EnrollmentStatus, decidedBy int64, reason *string) error
	UpdateProgress(ctx context.Context, enrollmentID int64, completedLessons, totalLessons, progressPercent int, completedAt *time.Time) error
	GetAll(ctx context.Context, status *string, courseID, userID *int64, page, pageSize int) ([]*models.Enrollment, int64, error)
	GetApprovedUserIDsByCourse(ctx context.Context, courseID int64) ([]int64, error)
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Enrollment, error)
}

// ProgressStore is the lesson progress persistence surface used by services
type ProgressStore interface {
	Upsert(ctx context.Context, enrollmentID, lessonID int64, score *int) (bool, error)
	CountByEnrollment(ctx context.Context, enrollmentID int64) (int, error)
	GetByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.LessonProgress, error)
}

// CertificateStore is the certificate persistence surface used by services
type CertificateStore interface {
	Insert(ctx context.Context, userID, courseID int64, code string) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Certificate, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Certificate, error)
	GetByCode(ctx context.Context, code string) (*models.Certificate, error)
	GetAllByUser(ctx context.Context, userID int64) ([]*models.Certificate, error)
	AttachFile(ctx context.Context, certificateID, fileID int64) error
}

// NotificationStore is the notification persistence surface used by services
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	GetAllByUser(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkAsRead(ctx context.Context, notificationID, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

// CourseStore is the course persistence surface used by services
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	CountLessons(ctx context.Context, courseID int64) (int, error)
}

// LessonStore is the lesson persistence surface used by services
type LessonStore interface {
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
	GetCourseIDByLesson(ctx context.Context, lessonID int64) (int64, error)
}

// UserStore is the user persistence surface used by services
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Stores bundles the persistence interfaces the enrollment lifecycle
// chain touches. A StoreFactory binds them to a querier, which is how
// the chain gets transaction-scoped stores.
type Stores struct {
	Enrollments   EnrollmentStore
	Progress      ProgressStore
	Certificates  CertificateStore
	Notifications NotificationStore
	Courses       CourseStore
	Lessons       LessonStore
	Users         UserStore
}

// StoreFactory builds a Stores set bound to the given querier
type StoreFactory func(q db.Querier) *Stores

// NewStores binds all stores to q using the concrete repositories
func NewStores(q db.Querier) *Stores {
	return &Stores{
		Enrollments:   repositories.NewEnrollmentRepository(q),
		Progress:      repositories.NewProgressRepository(q),
		Certificates:  repositories.NewCertificateRepository(q),
		Notifications: repositories.NewNotificationRepository(q),
		Courses:       repositories.NewCourseRepository(q),
		Lessons:       repositories.NewLessonRepository(q),
		Users:         repositories.NewUserRepository(q),
	}
}
