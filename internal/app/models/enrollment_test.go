package models

import "testing"

func TestEnrollmentStatusIsDecided(t *testing.T) {
	tests := []struct {
		status EnrollmentStatus
		want   bool
	}{
		{EnrollmentPending, false},
		{EnrollmentApproved, true},
		{EnrollmentRejected, true},
		{EnrollmentStatus("UNKNOWN"), false},
	}
	for _, tt := range tests {
		if got := tt.status.IsDecided(); got != tt.want {
			t.Errorf("%s.IsDecided() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestEnrollmentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from   EnrollmentStatus
		to     EnrollmentStatus
		want   bool
	}{
		{EnrollmentPending, EnrollmentApproved, true},
		{EnrollmentPending, EnrollmentRejected, true},
		{EnrollmentPending, EnrollmentPending, false},
		{EnrollmentApproved, EnrollmentRejected, false},
		{EnrollmentApproved, EnrollmentPending, false},
		{EnrollmentRejected, EnrollmentApproved, false},
		{EnrollmentRejected, EnrollmentPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestRoleCanApproveEnrollments(t *testing.T) {
	if RoleMember.CanApproveEnrollments() {
		t.Error("MEMBER can approve enrollments")
	}
	if !RoleLeader.CanApproveEnrollments() {
		t.Error("LEADER cannot approve enrollments")
	}
	if !RoleAdmin.CanApproveEnrollments() {
		t.Error("ADMIN cannot approve enrollments")
	}
}
