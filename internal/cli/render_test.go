package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/hrops/hrc/internal/hr"
)

func renderGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestEmployeeTableGolden(t *testing.T) {
	page := hr.EmployeePage{
		Employees: []hr.Employee{
			{
				ID:             1,
				EmployeeID:     "EMP-001",
				User:           &hr.User{Name: "Ada Lovelace"},
				Department:     &hr.DepartmentRef{Name: "Engineering"},
				Position:       &hr.PositionRef{Title: "Staff Engineer"},
				EmploymentType: "full_time",
				IsActive:       true,
			},
			{
				ID:             2,
				EmployeeID:     "EMP-002",
				User:           &hr.User{Name: "Grace Hopper"},
				EmploymentType: "part_time",
			},
		},
		Pagination: hr.Pagination{CurrentPage: 1, LastPage: 1, PerPage: 15, Total: 2},
	}

	g := renderGoldie(t)
	g.Assert(t, "employee_list", []byte(employeeTable(page).String()))
}

func TestLeaveTableGolden(t *testing.T) {
	page := hr.LeaveRequestPage{
		CurrentPage: 1,
		LastPage:    2,
		PerPage:     10,
		Total:       18,
		Data: []hr.LeaveRequest{
			{
				ID:           7,
				EmployeeID:   3,
				Employee:     &hr.Employee{User: &hr.User{Name: "Ada Lovelace"}},
				LeaveType:    "annual",
				StartDate:    "2026-03-02",
				EndDate:      "2026-03-06",
				TotalDays:    "5",
				DurationType: hr.DurationDays,
				Status:       "pending",
			},
			{
				ID:           8,
				EmployeeID:   4,
				LeaveType:    "sick",
				StartDate:    "2026-03-02",
				EndDate:      "2026-03-02",
				TotalHours:   "4",
				DurationType: hr.DurationHours,
				Status:       "approved",
			},
		},
	}

	g := renderGoldie(t)
	g.Assert(t, "leave_list", []byte(leaveTable(page).String()))
}

func TestDetailsGolden(t *testing.T) {
	d := &Details{}
	d.add("User", "Ada Lovelace")
	d.add("Email", "ada@example.com")
	d.add("Level", "admin")
	d.add("Employee", "EMP-001")
	d.add("Department", "Engineering")
	d.add("Position", "Staff Engineer")

	g := renderGoldie(t)
	g.Assert(t, "whoami_details", []byte(d.String()))
}

func TestPageFooter(t *testing.T) {
	assert.Equal(t, "Page 2 of 5 (64 total)", pageFooter(hr.Pagination{CurrentPage: 2, LastPage: 5, Total: 64}))
	assert.Equal(t, "", pageFooter(hr.Pagination{}))
}

func TestDashAndYesNo(t *testing.T) {
	assert.Equal(t, "-", dash(""))
	assert.Equal(t, "x", dash("x"))
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}

func TestAttendanceTableFallsBackToEmployeeID(t *testing.T) {
	table := attendanceTable([]hr.Attendance{
		{ID: 1, EmployeeID: 9, Date: "2026-03-02"},
	}, hr.Pagination{})
	assert.Equal(t, "9", table.Rows[0][1])
	assert.Equal(t, "-", table.Rows[0][3])
}
