package attendance

import (
	attendance_service "hrportal/backend/internal/service/attendance"
)

type MarkRequest struct {
	Action attendance_service.Action `json:"action" form:"action"`
}

type MarkResponse struct {
	Success    bool                      `json:"success"`
	Action     attendance_service.Action `json:"action"`
	LoginTime  *string                   `json:"login_time"`
	LogoutTime *string                   `json:"logout_time"`
}

type MonthResponse struct {
	Attendance map[string]attendance_service.DayStatus `json:"attendance"`
}
