package entity

import "testing"

func TestLeaveStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to LeaveStatus
		want     bool
	}{
		{LeavePending, LeaveApproved, true},
		{LeavePending, LeaveRejected, true},
		{LeavePending, LeavePending, false},
		{LeaveApproved, LeaveRejected, false},
		{LeaveRejected, LeaveApproved, false},
		{LeaveApproved, LeaveApproved, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" admin "); !ok || r != RoleAdmin {
		t.Fatalf("expected ADMIN, got %q %v", r, ok)
	}
	if r, ok := ParseRole("Employee"); !ok || r != RoleEmployee {
		t.Fatalf("expected EMPLOYEE, got %q %v", r, ok)
	}
	if _, ok := ParseRole("DASHBOARD"); ok {
		t.Fatalf("expected unknown role to be rejected")
	}
}
