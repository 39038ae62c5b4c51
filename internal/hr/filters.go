package hr

import (
	"net/url"
	"strconv"
)

// Filter structs are closed enumerations of the query parameters each
// list endpoint accepts. A nil field is omitted from the query string.
// Values() produces url.Values; encoding via url.Values.Encode yields a
// sorted-key, percent-escaped query string, so serialization is
// order-independent and deterministic.

// EmployeeFilters narrows the employees list.
type EmployeeFilters struct {
	Search         *string
	DepartmentID   *int
	PositionID     *int
	EmploymentType *string
	IsActive       *bool
	Page           *int
	PerPage        *int
}

// Values converts the filters to query parameters, omitting nil fields.
func (f EmployeeFilters) Values() url.Values {
	v := url.Values{}
	setString(v, "search", f.Search)
	setInt(v, "department_id", f.DepartmentID)
	setInt(v, "position_id", f.PositionID)
	setString(v, "employment_type", f.EmploymentType)
	setBool(v, "is_active", f.IsActive)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	return v
}

// LeaveRequestFilters narrows the leave requests list.
type LeaveRequestFilters struct {
	EmployeeID *int
	LeaveType  *string
	Status     *string
	StartDate  *string
	EndDate    *string
	Page       *int
	PerPage    *int
}

// Values converts the filters to query parameters, omitting nil fields.
func (f LeaveRequestFilters) Values() url.Values {
	v := url.Values{}
	setInt(v, "employee_id", f.EmployeeID)
	setString(v, "leave_type", f.LeaveType)
	setString(v, "status", f.Status)
	setString(v, "start_date", f.StartDate)
	setString(v, "end_date", f.EndDate)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	return v
}

// AttendanceFilters narrows the attendances list.
type AttendanceFilters struct {
	EmployeeID     *int
	Date           *string
	StartDate      *string
	EndDate        *string
	AttendanceType *string
	Page           *int
	PerPage        *int
}

// Values converts the filters to query parameters, omitting nil fields.
func (f AttendanceFilters) Values() url.Values {
	v := url.Values{}
	setInt(v, "employee_id", f.EmployeeID)
	setString(v, "date", f.Date)
	setString(v, "start_date", f.StartDate)
	setString(v, "end_date", f.EndDate)
	setString(v, "attendance_type", f.AttendanceType)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	return v
}

func setString(v url.Values, key string, val *string) {
	if val != nil {
		v.Set(key, *val)
	}
}

func setInt(v url.Values, key string, val *int) {
	if val != nil {
		v.Set(key, strconv.Itoa(*val))
	}
}

func setBool(v url.Values, key string, val *bool) {
	if val != nil {
		v.Set(key, strconv.FormatBool(*val))
	}
}

// String, Int, and Bool build optional filter fields in place.
func String(s string) *string { return &s }
func Int(i int) *int          { return &i }
func Bool(b bool) *bool       { return &b }
