package services

import (
	"context"
	"fmt"

	"payroll/client/api"
)

// Attendance backs the attendance page: employees clock in and out, admins
// review anyone's records.
type Attendance struct {
	api *api.Client
}

func NewAttendance(c *api.Client) *Attendance { return &Attendance{api: c} }

func (s *Attendance) ClockIn(ctx context.Context) (AttendanceRecord, error) {
	var out AttendanceRecord
	err := s.api.Post(ctx, "/api/attendance/clock-in", nil, &out)
	return out, err
}

func (s *Attendance) ClockOut(ctx context.Context) (AttendanceRecord, error) {
	var out AttendanceRecord
	err := s.api.Post(ctx, "/api/attendance/clock-out", nil, &out)
	return out, err
}

func (s *Attendance) Mine(ctx context.Context) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	err := s.api.Get(ctx, "/api/attendance/me", &out)
	return out, err
}

func (s *Attendance) ForEmployee(ctx context.Context, employeeID int64) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	err := s.api.Get(ctx, fmt.Sprintf("/api/attendance/employee/%d", employeeID), &out)
	return out, err
}
