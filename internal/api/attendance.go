package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hrops/hrc/internal/hr"
)

// CheckInRequest is the self-service check-in payload. Latitude and
// Longitude are optional geolocation; Photo is a base64-encoded image.
type CheckInRequest struct {
	EmployeeID  int      `json:"employee_id"`
	CheckInTime string   `json:"check_in_time,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Photo       string   `json:"photo,omitempty"`
}

// CheckOutRequest is the self-service check-out payload.
type CheckOutRequest struct {
	EmployeeID   int    `json:"employee_id"`
	CheckOutTime string `json:"check_out_time,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Photo        string `json:"photo,omitempty"`
}

// AdminCheckRequest is the admin override payload for forcing a check-in
// or check-out on behalf of an employee.
type AdminCheckRequest struct {
	EmployeeID int    `json:"employee_id"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ListAttendances fetches a page of attendance records narrowed by the
// filters.
func (c *Client) ListAttendances(ctx context.Context, f hr.AttendanceFilters) (Response[hr.AttendancePage], error) {
	endpoint := endpointWithQuery("/hr/attendances", f.Values())
	return request[hr.AttendancePage](c, ctx, http.MethodGet, endpoint, nil, nil)
}

// GetAttendance fetches one attendance record by id.
func (c *Client) GetAttendance(ctx context.Context, id int) (Response[hr.Attendance], error) {
	return request[hr.Attendance](c, ctx, http.MethodGet, fmt.Sprintf("/hr/attendances/%d", id), nil, nil)
}

// CreateAttendance records an admin-entered attendance row.
func (c *Client) CreateAttendance(ctx context.Context, payload hr.CreateAttendance) (Response[hr.Attendance], error) {
	return request[hr.Attendance](c, ctx, http.MethodPost, "/hr/attendances", payload, nil)
}

// UpdateAttendance applies a partial update. Keys are wire field names.
func (c *Client) UpdateAttendance(ctx context.Context, id int, fields map[string]any) (Response[hr.Attendance], error) {
	return request[hr.Attendance](c, ctx, http.MethodPut, fmt.Sprintf("/hr/attendances/%d", id), fields, nil)
}

// DeleteAttendance removes an attendance record.
func (c *Client) DeleteAttendance(ctx context.Context, id int) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodDelete, fmt.Sprintf("/hr/attendances/%d", id), nil, nil)
}

// AttendanceStatistics fetches the aggregate attendance report.
func (c *Client) AttendanceStatistics(ctx context.Context) (Response[hr.AttendanceStatistics], error) {
	return request[hr.AttendanceStatistics](c, ctx, http.MethodGet, "/hr/attendances/statistics", nil, nil)
}

// TodayStats fetches the live summary for the current day.
func (c *Client) TodayStats(ctx context.Context) (Response[hr.TodayStats], error) {
	return request[hr.TodayStats](c, ctx, http.MethodGet, "/hr/attendances/today-stats", nil, nil)
}

// ExportAttendances fetches the export rows for the filtered attendance
// set.
func (c *Client) ExportAttendances(ctx context.Context, f hr.AttendanceFilters) (Response[[]map[string]any], error) {
	endpoint := endpointWithQuery("/hr/attendances/export", f.Values())
	return request[[]map[string]any](c, ctx, http.MethodGet, endpoint, nil, nil)
}

// CheckIn records a self-service check-in.
func (c *Client) CheckIn(ctx context.Context, req CheckInRequest) (Response[hr.Attendance], error) {
	return request[hr.Attendance](c, ctx, http.MethodPost, "/hr/attendance/checkin", req, nil)
}

// CheckOut records a self-service check-out.
func (c *Client) CheckOut(ctx context.Context, req CheckOutRequest) (Response[hr.Attendance], error) {
	return request[hr.Attendance](c, ctx, http.MethodPost, "/hr/attendance/checkout", req, nil)
}

// AttendanceStatus fetches the current check-in state of an employee.
func (c *Client) AttendanceStatus(ctx context.Context, employeeID int) (Response[json.RawMessage], error) {
	endpoint := "/hr/attendance/status?employee_id=" + strconv.Itoa(employeeID)
	return request[json.RawMessage](c, ctx, http.MethodGet, endpoint, nil, nil)
}

// AttendanceHistory fetches an employee's attendance records, optionally
// bounded by start and end dates (YYYY-MM-DD; empty means unbounded).
func (c *Client) AttendanceHistory(ctx context.Context, employeeID int, startDate, endDate string) (Response[[]hr.Attendance], error) {
	v := url.Values{}
	v.Set("employee_id", strconv.Itoa(employeeID))
	if startDate != "" {
		v.Set("start_date", startDate)
	}
	if endDate != "" {
		v.Set("end_date", endDate)
	}
	return request[[]hr.Attendance](c, ctx, http.MethodGet, "/hr/attendance/history?"+v.Encode(), nil, nil)
}

// BranchInfo fetches the branch an employee checks in against.
func (c *Client) BranchInfo(ctx context.Context, employeeID int) (Response[json.RawMessage], error) {
	endpoint := "/hr/attendance/branch-info?employee_id=" + strconv.Itoa(employeeID)
	return request[json.RawMessage](c, ctx, http.MethodGet, endpoint, nil, nil)
}

// AdminCheckIn forces a check-in on behalf of an employee.
func (c *Client) AdminCheckIn(ctx context.Context, req AdminCheckRequest) (Response[hr.Attendance], error) {
	return request[hr.Attendance](c, ctx, http.MethodPost, "/hr/attendance/admin/checkin", req, nil)
}

// AdminCheckOut forces a check-out on behalf of an employee.
func (c *Client) AdminCheckOut(ctx context.Context, req AdminCheckRequest) (Response[hr.Attendance], error) {
	return request[hr.Attendance](c, ctx, http.MethodPost, "/hr/attendance/admin/checkout", req, nil)
}
