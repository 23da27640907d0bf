package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
)

func TestEnrollAutoApprovesOpenCourse(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10, 11)
	env.seedUser(5, models.RoleMember)

	enrollment, err := env.enrollmentService.Enroll(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if enrollment.Status != models.EnrollmentApproved {
		t.Fatalf("got status %s, want APPROVED", enrollment.Status)
	}
	if enrollment.TotalLessons != 2 {
		t.Fatalf("got %d total lessons, want 2", enrollment.TotalLessons)
	}
}

func TestEnrollGatedCourseStaysPending(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, true, 10)
	env.seedUser(5, models.RoleMember)

	enrollment, err := env.enrollmentService.Enroll(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if enrollment.Status != models.EnrollmentPending {
		t.Fatalf("got status %s, want PENDING", enrollment.Status)
	}
	if enrollment.DecidedBy != nil || enrollment.DecidedAt != nil {
		t.Fatal("fresh enrollment already carries a decision")
	}
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false)
	env.courses.courses[1].IsPublished = false
	env.seedUser(5, models.RoleMember)

	_, err := env.enrollmentService.Enroll(context.Background(), 5, 1)
	if !errors.Is(err, apperrors.ErrCourseNotPublished) {
		t.Fatalf("got %v, want ErrCourseNotPublished", err)
	}
}

func TestEnrollTwice(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, true, 10)
	env.seedUser(5, models.RoleMember)

	if _, err := env.enrollmentService.Enroll(context.Background(), 5, 1); err != nil {
		t.Fatalf("first Enroll: %v", err)
	}
	_, err := env.enrollmentService.Enroll(context.Background(), 5, 1)
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("got %v, want ErrAlreadyEnrolled", err)
	}
}

func TestApproveEnrollment(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, true, 10)
	student := env.seedUser(5, models.RoleMember)
	env.seedUser(2, models.RoleLeader)
	pending := env.seedEnrollment(5, 1, models.EnrollmentPending)

	approved, err := env.enrollmentService.Approve(context.Background(), pending.ID, 2)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != models.EnrollmentApproved {
		t.Fatalf("got status %s, want APPROVED", approved.Status)
	}
	if approved.DecidedBy == nil || *approved.DecidedBy != 2 {
		t.Fatalf("got decidedBy %v, want 2", approved.DecidedBy)
	}
	if approved.DecidedAt == nil {
		t.Fatal("decidedAt not set")
	}

	stored := env.notifications.byType(models.NotificationEnrollmentApproved)
	if len(stored) != 1 || stored[0].UserID != 5 {
		t.Fatalf("got notifications %+v, want one approval notification for user 5", stored)
	}
	if len(env.pusher.events) != 1 || env.pusher.events[0].UserID != 5 {
		t.Fatalf("got pushed events %+v, want one for user 5", env.pusher.events)
	}
	if len(env.email.sent) != 1 || env.email.sent[0].kind != "approved" || env.email.sent[0].toEmail != student.Email {
		t.Fatalf("got emails %+v, want one approval email to the student", env.email.sent)
	}
}

func TestRejectEnrollmentCarriesReason(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, true, 10)
	env.seedUser(5, models.RoleMember)
	env.seedUser(2, models.RoleAdmin)
	pending := env.seedEnrollment(5, 1, models.EnrollmentPending)

	rejected, err := env.enrollmentService.Reject(context.Background(), pending.ID, 2, "Turma lotada")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != models.EnrollmentRejected {
		t.Fatalf("got status %s, want REJECTED", rejected.Status)
	}
	if rejected.DecisionReason == nil || *rejected.DecisionReason != "Turma lotada" {
		t.Fatalf("got reason %v, want %q", rejected.DecisionReason, "Turma lotada")
	}

	stored := env.notifications.byType(models.NotificationEnrollmentRejected)
	if len(stored) != 1 {
		t.Fatalf("got %d rejection notifications, want 1", len(stored))
	}
	if !strings.Contains(stored[0].Message, "Turma lotada") {
		t.Fatalf("notification message %q does not carry the reason", stored[0].Message)
	}
	if len(env.email.sent) != 1 || env.email.sent[0].kind != "rejected" || env.email.sent[0].reason != "Turma lotada" {
		t.Fatalf("got emails %+v, want one rejection email with the reason", env.email.sent)
	}
}

func TestDecisionIsOneWay(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, true, 10)
	env.seedUser(5, models.RoleMember)
	env.seedUser(2, models.RoleLeader)
	pending := env.seedEnrollment(5, 1, models.EnrollmentPending)

	if _, err := env.enrollmentService.Approve(context.Background(), pending.ID, 2); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if _, err := env.enrollmentService.Reject(context.Background(), pending.ID, 2, "tarde demais"); !errors.Is(err, apperrors.ErrEnrollmentAlreadyDecided) {
		t.Fatalf("re-decide got %v, want ErrEnrollmentAlreadyDecided", err)
	}
	if _, err := env.enrollmentService.Approve(context.Background(), pending.ID, 2); !errors.Is(err, apperrors.ErrEnrollmentAlreadyDecided) {
		t.Fatalf("re-approve got %v, want ErrEnrollmentAlreadyDecided", err)
	}
}

func TestMemberCannotDecide(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, true, 10)
	env.seedUser(5, models.RoleMember)
	env.seedUser(6, models.RoleMember)
	pending := env.seedEnrollment(5, 1, models.EnrollmentPending)

	_, err := env.enrollmentService.Approve(context.Background(), pending.ID, 6)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
	if env.tx.calls != 0 {
		t.Fatal("permission check ran inside a transaction")
	}
	if pending.Status != models.EnrollmentPending {
		t.Fatalf("enrollment status changed to %s", pending.Status)
	}
}

func TestGetMineFiltersByUser(t *testing.T) {
	env := newTestEnv()
	env.seedCourse(1, false, 10)
	env.seedCourse(2, false, 20)
	env.seedUser(5, models.RoleMember)
	env.seedUser(6, models.RoleMember)
	env.seedEnrollment(5, 1, models.EnrollmentApproved)
	env.seedEnrollment(6, 1, models.EnrollmentApproved)
	env.seedEnrollment(5, 2, models.EnrollmentApproved)

	mine, total, err := env.enrollmentService.GetMine(context.Background(), 5, 1, 10)
	if err != nil {
		t.Fatalf("GetMine: %v", err)
	}
	if total != 2 || len(mine) != 2 {
		t.Fatalf("got %d enrollments (total %d), want 2", len(mine), total)
	}
	for _, e := range mine {
		if e.UserID != 5 {
			t.Fatalf("enrollment %d belongs to user %d", e.ID, e.UserID)
		}
	}
}
