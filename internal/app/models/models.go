package models

// RoleType defines the user role type
type RoleType string

const (
	RoleMember RoleType = "MEMBER"
	RoleLeader RoleType = "LEADER"
	RoleAdmin  RoleType = "ADMIN"
)

// CanApproveEnrollments reports whether the role may decide enrollments.
func (r RoleType) CanApproveEnrollments() bool {
	return r == RoleLeader || r == RoleAdmin
}

// LessonType defines what kind of content a lesson carries
type LessonType string

const (
	LessonTypeVideo          LessonType = "VIDEO"
	LessonTypeText           LessonType = "TEXT"
	LessonTypeObjectiveQuiz  LessonType = "OBJECTIVE_QUIZ"
	LessonTypeSubjectiveQuiz LessonType = "SUBJECTIVE_QUIZ"
)

// IsQuiz reports whether the lesson type carries questions.
func (t LessonType) IsQuiz() bool {
	return t == LessonTypeObjectiveQuiz || t == LessonTypeSubjectiveQuiz
}

// NotificationType tags entries in the notification feed
type NotificationType string

const (
	NotificationEnrollmentApproved NotificationType = "ENROLLMENT_APPROVED"
	NotificationEnrollmentRejected NotificationType = "ENROLLMENT_REJECTED"
	NotificationCertificateReady   NotificationType = "CERTIFICATE_READY"
	NotificationNewLesson          NotificationType = "NEW_LESSON"
	NotificationPendingReminder    NotificationType = "PENDING_ENROLLMENTS"
)
