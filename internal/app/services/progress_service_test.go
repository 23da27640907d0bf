package services

import (
	"context"
	"errors"
	"testing"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
)

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"empty course", 0, 0, 0},
		{"negative total", 1, -1, 0},
		{"nothing completed", 0, 10, 0},
		{"three of four", 3, 4, 75},
		{"rounds down", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"all completed", 12, 12, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionPercent(tt.completed, tt.total); got != tt.want {
				t.Fatalf("CompletionPercent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestCompleteLessonUpdatesProgress(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10, 11, 12)
	env.seedUser(5, models.RoleMember)
	enrollment := env.seedEnrollment(5, 1, models.EnrollmentApproved)

	resp, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if resp.AlreadyCompleted {
		t.Fatal("first completion reported as already completed")
	}
	if resp.CompletedLessons != 1 || resp.TotalLessons != 3 {
		t.Fatalf("got %d/%d lessons, want 1/3", resp.CompletedLessons, resp.TotalLessons)
	}
	if resp.ProgressPercent != 33 {
		t.Fatalf("got %d%%, want 33%%", resp.ProgressPercent)
	}
	if resp.CourseCompleted {
		t.Fatal("course reported completed after one of three lessons")
	}
	if resp.CertificateCode != nil {
		t.Fatal("certificate issued before course completion")
	}
	if enrollment.ProgressPercent != 33 {
		t.Fatalf("enrollment row has %d%%, want 33%%", enrollment.ProgressPercent)
	}
	if enrollment.CompletedAt != nil {
		t.Fatal("completedAt set before course completion")
	}
}

func TestCompleteLessonRepeatIsNoOp(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10, 11)
	env.seedUser(5, models.RoleMember)
	env.seedEnrollment(5, 1, models.EnrollmentApproved)

	if _, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	resp, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil)
	if err != nil {
		t.Fatalf("repeat completion: %v", err)
	}
	if !resp.AlreadyCompleted {
		t.Fatal("repeat completion not flagged as already completed")
	}
	if resp.CompletedLessons != 1 {
		t.Fatalf("repeat completion counted twice: got %d completed lessons", resp.CompletedLessons)
	}
}

func TestCompleteLessonRequiresApprovedEnrollment(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, true, 10)
	env.seedUser(5, models.RoleMember)

	for _, status := range []models.EnrollmentStatus{models.EnrollmentPending, models.EnrollmentRejected} {
		t.Run(string(status), func(t *testing.T) {
			env.enrollments.enrollments[1] = &models.Enrollment{
				ID: 1, UserID: 5, CourseID: 1, Status: status,
			}
			_, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil)
			if !errors.Is(err, apperrors.ErrEnrollmentNotApproved) {
				t.Fatalf("got %v, want ErrEnrollmentNotApproved", err)
			}
		})
	}
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10)
	env.seedUser(5, models.RoleMember)
	env.seedEnrollment(5, 1, models.EnrollmentApproved)

	_, err := env.progressService.CompleteLesson(context.Background(), 5, 999, nil)
	if !errors.Is(err, apperrors.ErrLessonNotFound) {
		t.Fatalf("got %v, want ErrLessonNotFound", err)
	}
}

func TestCompleteLastLessonIssuesCertificate(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10, 11)
	student := env.seedUser(5, models.RoleMember)
	enrollment := env.seedEnrollment(5, 1, models.EnrollmentApproved)

	if _, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil); err != nil {
		t.Fatalf("first lesson: %v", err)
	}
	resp, err := env.progressService.CompleteLesson(context.Background(), 5, 11, nil)
	if err != nil {
		t.Fatalf("last lesson: %v", err)
	}

	if !resp.CourseCompleted || resp.ProgressPercent != 100 {
		t.Fatalf("got completed=%v percent=%d, want completed at 100%%", resp.CourseCompleted, resp.ProgressPercent)
	}
	if resp.CertificateCode == nil {
		t.Fatal("no certificate code on course completion")
	}
	if enrollment.CompletedAt == nil {
		t.Fatal("completedAt not set on course completion")
	}

	cert, err := env.certificates.GetByUserAndCourse(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("certificate not persisted: %v", err)
	}
	if cert.Code != *resp.CertificateCode {
		t.Fatalf("response code %q does not match stored %q", *resp.CertificateCode, cert.Code)
	}

	ready := env.notifications.byType(models.NotificationCertificateReady)
	if len(ready) != 1 {
		t.Fatalf("got %d certificate notifications, want 1", len(ready))
	}
	if ready[0].UserID != 5 {
		t.Fatalf("notification sent to user %d, want 5", ready[0].UserID)
	}
	if len(env.pusher.events) != 1 {
		t.Fatalf("got %d pushed events, want 1", len(env.pusher.events))
	}
	if len(env.email.sent) != 1 || env.email.sent[0].kind != "certificate" {
		t.Fatalf("got emails %+v, want one certificate email", env.email.sent)
	}
	if env.email.sent[0].toEmail != student.Email {
		t.Fatalf("certificate email sent to %q, want %q", env.email.sent[0].toEmail, student.Email)
	}
}

func TestCertificateIssuedOnce(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10)
	env.seedUser(5, models.RoleMember)
	enrollment := env.seedEnrollment(5, 1, models.EnrollmentApproved)

	first, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil)
	if err != nil {
		t.Fatalf("completion: %v", err)
	}

	// A second run of the chain after completion must not mint a new
	// certificate or renotify.
	enrollment.CompletedAt = nil // simulate a racing chain that lost the insert
	second, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil)
	if err != nil {
		t.Fatalf("repeat completion: %v", err)
	}
	if env.certificates.inserts != 1 {
		t.Fatalf("certificate inserted %d times, want 1", env.certificates.inserts)
	}
	if second.CertificateCode == nil || *second.CertificateCode != *first.CertificateCode {
		t.Fatal("racing completion did not reuse the existing certificate code")
	}
}

func TestCompletionWithoutCertificateTemplate(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10)
	env.courses.courses[1].CertificateText = nil
	env.seedUser(5, models.RoleMember)
	enrollment := env.seedEnrollment(5, 1, models.EnrollmentApproved)

	resp, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}

	// Completion is still recorded in full
	if !resp.CourseCompleted || resp.ProgressPercent != 100 {
		t.Fatalf("got completed=%v percent=%d, want completed at 100%%", resp.CourseCompleted, resp.ProgressPercent)
	}
	if enrollment.CompletedAt == nil {
		t.Fatal("completedAt not set on course completion")
	}

	// But nothing is issued or announced
	if resp.CertificateCode != nil {
		t.Fatalf("certificate %q issued for a course with no certificate template", *resp.CertificateCode)
	}
	if env.certificates.inserts != 0 {
		t.Fatalf("certificate inserted %d times, want 0", env.certificates.inserts)
	}
	if got := env.notifications.byType(models.NotificationCertificateReady); len(got) != 0 {
		t.Fatalf("got %d certificate notifications, want 0", len(got))
	}
	if len(env.email.sent) != 0 {
		t.Fatalf("got emails %+v, want none", env.email.sent)
	}
}

func TestCompleteLessonStoresQuizScore(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10, 11)
	env.seedUser(5, models.RoleMember)
	enrollment := env.seedEnrollment(5, 1, models.EnrollmentApproved)

	score := 80
	if _, err := env.progressService.CompleteLesson(context.Background(), 5, 10, &score); err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	record := env.progress.records[progressKey{enrollment.ID, 10}]
	if record == nil || record.Score == nil || *record.Score != 80 {
		t.Fatalf("stored progress record %+v, want score 80", record)
	}
}

func TestGetProgress(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10, 11, 12)
	env.seedUser(5, models.RoleMember)
	env.seedEnrollment(5, 1, models.EnrollmentApproved)

	if _, err := env.progressService.CompleteLesson(context.Background(), 5, 10, nil); err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}

	resp, err := env.progressService.GetProgress(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if resp.CompletedLessons != 1 || resp.TotalLessons != 3 || resp.ProgressPercent != 33 {
		t.Fatalf("got %d/%d at %d%%, want 1/3 at 33%%", resp.CompletedLessons, resp.TotalLessons, resp.ProgressPercent)
	}
	if len(resp.Lessons) != 1 || resp.Lessons[0].LessonID != 10 {
		t.Fatalf("got lesson records %+v, want one record for lesson 10", resp.Lessons)
	}

	_, err = env.progressService.GetProgress(context.Background(), 5, 999)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Fatalf("got %v, want ErrEnrollmentNotFound", err)
	}
}
