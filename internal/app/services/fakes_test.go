package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jackc/pgx/v5"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/db"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/websocket"
)

// fakeTx runs the function directly. The fakes below share state, so
// "transaction scoped" and "pool scoped" stores are the same set.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	return fn(ctx, pgx.Tx(nil))
}

type fakeEnrollmentStore struct {
	nextID      int64
	enrollments map[int64]*models.Enrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{nextID: 1, enrollments: map[int64]*models.Enrollment{}}
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	for _, e := range f.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return 0, apperrors.ErrAlreadyEnrolled
		}
	}
	id := f.nextID
	f.nextID++
	stored := *enrollment
	stored.ID = id
	stored.CreatedAt = time.Now()
	f.enrollments[id] = &stored
	return id, nil
}

func (f *fakeEnrollmentStore) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEnrollmentStore) GetByIDForUpdate(ctx context.Context, id int64) (*models.Enrollment, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeEnrollmentStore) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) UpdateDecision(ctx context.Context, enrollmentID int64, status models.EnrollmentStatus, decidedBy int64, reason *string) error {
	e, ok := f.enrollments[enrollmentID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	if e.Status != models.EnrollmentPending {
		return apperrors.ErrEnrollmentAlreadyDecided
	}
	now := time.Now()
	e.Status = status
	e.DecidedBy = &decidedBy
	e.DecisionReason = reason
	e.DecidedAt = &now
	return nil
}

func (f *fakeEnrollmentStore) UpdateProgress(ctx context.Context, enrollmentID int64, completedLessons, totalLessons, progressPercent int, completedAt *time.Time) error {
	e, ok := f.enrollments[enrollmentID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.CompletedLessons = completedLessons
	e.TotalLessons = totalLessons
	e.ProgressPercent = progressPercent
	if e.CompletedAt == nil {
		e.CompletedAt = completedAt
	}
	return nil
}

func (f *fakeEnrollmentStore) GetAll(ctx context.Context, status *string, courseID, userID *int64, page, pageSize int) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if status != nil && string(e.Status) != *status {
			continue
		}
		if courseID != nil && e.CourseID != *courseID {
			continue
		}
		if userID != nil && e.UserID != *userID {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEnrollmentStore) GetApprovedUserIDsByCourse(ctx context.Context, courseID int64) ([]int64, error) {
	var ids []int64
	for _, e := range f.enrollments {
		if e.CourseID == courseID && e.Status == models.EnrollmentApproved {
			ids = append(ids, e.UserID)
		}
	}
	return ids, nil
}

func (f *fakeEnrollmentStore) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.Status == models.EnrollmentPending && e.CreatedAt.Before(cutoff) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

type progressKey struct {
	enrollmentID int64
	lessonID     int64
}

type fakeProgressStore struct {
	records map[progressKey]*models.LessonProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: map[progressKey]*models.LessonProgress{}}
}

func (f *fakeProgressStore) Upsert(ctx context.Context, enrollmentID, lessonID int64, score *int) (bool, error) {
	key := progressKey{enrollmentID, lessonID}
	if _, exists := f.records[key]; exists {
		return false, nil
	}
	f.records[key] = &models.LessonProgress{
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		Score:        score,
		CompletedAt:  time.Now(),
	}
	return true, nil
}

func (f *fakeProgressStore) CountByEnrollment(ctx context.Context, enrollmentID int64) (int, error) {
	count := 0
	for key := range f.records {
		if key.enrollmentID == enrollmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProgressStore) GetByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.LessonProgress, error) {
	var out []*models.LessonProgress
	for key, record := range f.records {
		if key.enrollmentID == enrollmentID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

type certKey struct {
	userID   int64
	courseID int64
}

type fakeCertificateStore struct {
	nextID  int64
	certs   map[certKey]*models.Certificate
	inserts int
}

func newFakeCertificateStore() *fakeCertificateStore {
	return &fakeCertificateStore{nextID: 1, certs: map[certKey]*models.Certificate{}}
}

func (f *fakeCertificateStore) Insert(ctx context.Context, userID, courseID int64, code string) (bool, error) {
	key := certKey{userID, courseID}
	if _, exists := f.certs[key]; exists {
		return false, nil
	}
	f.inserts++
	f.certs[key] = &models.Certificate{
		ID:       f.nextID,
		UserID:   userID,
		CourseID: courseID,
		Code:     code,
		IssuedAt: time.Now(),
	}
	f.nextID++
	return true, nil
}

func (f *fakeCertificateStore) GetByID(ctx context.Context, id int64) (*models.Certificate, error) {
	for _, cert := range f.certs {
		if cert.ID == id {
			copied := *cert
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCertificateNotFound
}

func (f *fakeCertificateStore) AttachFile(ctx context.Context, certificateID, fileID int64) error {
	for _, cert := range f.certs {
		if cert.ID == certificateID {
			cert.FileID = &fileID
			return nil
		}
	}
	return apperrors.ErrCertificateNotFound
}

func (f *fakeCertificateStore) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Certificate, error) {
	cert, ok := f.certs[certKey{userID, courseID}]
	if !ok {
		return nil, apperrors.ErrCertificateNotFound
	}
	copied := *cert
	return &copied, nil
}

func (f *fakeCertificateStore) GetByCode(ctx context.Context, code string) (*models.Certificate, error) {
	for _, cert := range f.certs {
		if cert.Code == code {
			copied := *cert
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCertificateNotFound
}

func (f *fakeCertificateStore) GetAllByUser(ctx context.Context, userID int64) ([]*models.Certificate, error) {
	var out []*models.Certificate
	for _, cert := range f.certs {
		if cert.UserID == userID {
			copied := *cert
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeNotificationStore struct {
	nextID        int64
	notifications []*models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{nextID: 1}
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *models.Notification) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *n
	stored.ID = id
	stored.CreatedAt = time.Now()
	f.notifications = append(f.notifications, &stored)
	return id, nil
}

func (f *fakeNotificationStore) GetAllByUser(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]*models.Notification, int64, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		copied := *n
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	for _, n := range f.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (f *fakeNotificationStore) MarkAllAsRead(ctx context.Context, userID int64) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) DeleteAllForUser(ctx context.Context, userID int64) error {
	var kept []*models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

func (f *fakeNotificationStore) byType(typ models.NotificationType) []*models.Notification {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

type fakeCourseStore struct {
	courses     map[int64]*models.Course
	lessonCount map[int64]int
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: map[int64]*models.Course{}, lessonCount: map[int64]int{}}
}

func (f *fakeCourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseStore) CountLessons(ctx context.Context, courseID int64) (int, error) {
	return f.lessonCount[courseID], nil
}

type fakeLessonStore struct {
	lessons        map[int64]*models.Lesson
	lessonToCourse map[int64]int64
}

func newFakeLessonStore() *fakeLessonStore {
	return &fakeLessonStore{lessons: map[int64]*models.Lesson{}, lessonToCourse: map[int64]int64{}}
}

func (f *fakeLessonStore) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok {
		return nil, apperrors.ErrLessonNotFound
	}
	copied := *lesson
	return &copied, nil
}

func (f *fakeLessonStore) GetCourseIDByLesson(ctx context.Context, lessonID int64) (int64, error) {
	courseID, ok := f.lessonToCourse[lessonID]
	if !ok {
		return 0, apperrors.ErrLessonNotFound
	}
	return courseID, nil
}

type fakeUserStore struct {
	users map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

type sentEmail struct {
	kind    string
	toEmail string
	course  string
	reason  string
}

type fakeEmailService struct {
	sent []sentEmail
}

func (f *fakeEmailService) SendEnrollmentApprovedEmail(toEmail, toName, courseTitle string) error {
	f.sent = append(f.sent, sentEmail{kind: "approved", toEmail: toEmail, course: courseTitle})
	return nil
}

func (f *fakeEmailService) SendEnrollmentRejectedEmail(toEmail, toName, courseTitle, reason string) error {
	f.sent = append(f.sent, sentEmail{kind: "rejected", toEmail: toEmail, course: courseTitle, reason: reason})
	return nil
}

func (f *fakeEmailService) SendCertificateReadyEmail(toEmail, toName, courseTitle, certificateURL string) error {
	f.sent = append(f.sent, sentEmail{kind: "certificate", toEmail: toEmail, course: courseTitle})
	return nil
}

type fakePusher struct {
	events []*websocket.Event
}

func (f *fakePusher) Push(event *websocket.Event) {
	f.events = append(f.events, event)
}

// testEnv wires the lifecycle services against shared in-memory fakes.
// The store factory hands back the same fake set for every "transaction",
// which is what a real tx-bound factory does against one database.
type testEnv struct {
	tx            *fakeTx
	enrollments   *fakeEnrollmentStore
	progress      *fakeProgressStore
	certificates  *fakeCertificateStore
	notifications *fakeNotificationStore
	courses       *fakeCourseStore
	lessons       *fakeLessonStore
	users         *fakeUserStore
	email         *fakeEmailService
	pusher        *fakePusher

	notificationService *NotificationService
	progressService     *ProgressService
	enrollmentService   *EnrollmentService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		tx:            &fakeTx{},
		enrollments:   newFakeEnrollmentStore(),
		progress:      newFakeProgressStore(),
		certificates:  newFakeCertificateStore(),
		notifications: newFakeNotificationStore(),
		courses:       newFakeCourseStore(),
		lessons:       newFakeLessonStore(),
		users:         newFakeUserStore(),
		email:         &fakeEmailService{},
		pusher:        &fakePusher{},
	}
	stores := &Stores{
		Enrollments:   env.enrollments,
		Progress:      env.progress,
		Certificates:  env.certificates,
		Notifications: env.notifications,
		Courses:       env.courses,
		Lessons:       env.lessons,
		Users:         env.users,
	}
	factory := func(q db.Querier) *Stores { return stores }
	lgr := zerolog.Nop()

	env.notificationService = NewNotificationService(env.notifications, env.pusher, lgr)
	env.progressService = NewProgressService(env.tx, stores, factory, env.email, env.notificationService, "http://localhost:8080", lgr)
	env.enrollmentService = NewEnrollmentService(env.tx, stores, factory, env.email, env.notificationService, lgr)
	return env
}

// seedCourse registers a published course with the given lesson IDs and
// returns the course ID.
func (env *testEnv) seedCourse(courseID int64, requiresApproval bool, lessonIDs ...int64) {
	certText := "Certificamos que {NOME} concluiu o curso {CURSO}."
	env.courses.courses[courseID] = &models.Course{
		ID:               courseID,
		Title:            "Fundamentos da Fé",
		Slug:             "fundamentos-da-fe",
		IsPublished:      true,
		RequiresApproval: requiresApproval,
		CertificateText:  &certText,
	}
	env.courses.lessonCount[courseID] = len(lessonIDs)
	for _, lessonID := range lessonIDs {
		env.lessons.lessons[lessonID] = &models.Lesson{ID: lessonID, Title: "Aula"}
		env.lessons.lessonToCourse[lessonID] = courseID
	}
}

func (env *testEnv) seedUser(id int64, role models.RoleType) *models.User {
	user := &models.User{
		ID:        id,
		Email:     fmt.Sprintf("user%d@jornada.app", id),
		FirstName: "Maria",
		LastName:  "Silva",
		Role:      role,
	}
	env.users.users[id] = user
	return user
}

func (env *testEnv) seedEnrollment(userID, courseID int64, status models.EnrollmentStatus) *models.Enrollment {
	enrollment := &models.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		Status:       status,
		TotalLessons: env.courses.lessonCount[courseID],
	}
	id, err := env.enrollments.Create(context.Background(), enrollment)
	if err != nil {
		panic(err)
	}
	enrollment.ID = id
	return env.enrollments.enrollments[id]
}
