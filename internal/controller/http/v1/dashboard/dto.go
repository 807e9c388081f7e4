package dashboard

import (
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/service/activity"
	attendance_service "hrportal/backend/internal/service/attendance"
)

// TodayStatus is the principal's attendance for the current day.
type TodayStatus struct {
	WorkDay string `json:"work_day"`
	attendance_service.DayStatus
}

type AdminResponse struct {
	CurrentUser        entity.Employee     `json:"current_user"`
	Employees          []entity.Employee   `json:"employees"`
	PendingLeaves      []entity.NamedLeave `json:"pending_leaves"`
	TotalEmployees     int                 `json:"total_employees"`
	PendingLeavesCount int                 `json:"pending_leaves_count"`
	TodayAttendance    int                 `json:"today_attendance"`
	AttendanceStatus   *TodayStatus        `json:"attendance_status"`
	RecentActivity     []activity.Item     `json:"recent_activity"`
}

type EmployeeResponse struct {
	CurrentUser      entity.Employee `json:"current_user"`
	MyLeavesCount    int             `json:"my_leaves_count"`
	MyPendingLeaves  int             `json:"my_pending_leaves"`
	AttendanceStatus *TodayStatus    `json:"attendance_status"`
	MyLeaves         []entity.Leave  `json:"my_leaves"`
}
