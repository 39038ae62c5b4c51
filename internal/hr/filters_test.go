package hr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeFilters_OmitsUnset(t *testing.T) {
	f := EmployeeFilters{
		Search: String("ali"),
		Page:   Int(2),
	}

	// department_id, position_id, employment_type, is_active, per_page
	// are unset and must not appear. Encode sorts keys.
	assert.Equal(t, "page=2&search=ali", f.Values().Encode())
}

func TestEmployeeFilters_Empty(t *testing.T) {
	assert.Equal(t, "", EmployeeFilters{}.Values().Encode())
}

func TestEmployeeFilters_AllFields(t *testing.T) {
	f := EmployeeFilters{
		Search:         String("omar"),
		DepartmentID:   Int(3),
		PositionID:     Int(7),
		EmploymentType: String("full_time"),
		IsActive:       Bool(true),
		Page:           Int(1),
		PerPage:        Int(50),
	}

	v := f.Values()
	assert.Equal(t, "omar", v.Get("search"))
	assert.Equal(t, "3", v.Get("department_id"))
	assert.Equal(t, "7", v.Get("position_id"))
	assert.Equal(t, "full_time", v.Get("employment_type"))
	assert.Equal(t, "true", v.Get("is_active"))
	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "50", v.Get("per_page"))
}

func TestEmployeeFilters_URLEncodesValues(t *testing.T) {
	f := EmployeeFilters{Search: String("a b&c")}
	assert.Equal(t, "search=a+b%26c", f.Values().Encode())
}

func TestLeaveRequestFilters(t *testing.T) {
	f := LeaveRequestFilters{
		EmployeeID: Int(12),
		Status:     String("pending"),
		StartDate:  String("2024-05-01"),
	}
	assert.Equal(t, "employee_id=12&start_date=2024-05-01&status=pending", f.Values().Encode())
}

func TestAttendanceFilters(t *testing.T) {
	f := AttendanceFilters{
		Date:    String("2024-05-01"),
		PerPage: Int(25),
	}
	assert.Equal(t, "date=2024-05-01&per_page=25", f.Values().Encode())
}

func TestAttendanceFilters_FalseIsNotOmitted(t *testing.T) {
	// A set pointer to a zero value still serializes; only nil is omitted.
	f := EmployeeFilters{IsActive: Bool(false), Page: Int(0)}
	assert.Equal(t, "is_active=false&page=0", f.Values().Encode())
}
