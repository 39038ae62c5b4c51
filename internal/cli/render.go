package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/hrops/hrc/internal/hr"
)

// Table is a rendered text table. It implements fmt.Stringer so
// OutputFormatter.Success prints it directly in text mode, while JSON
// mode serializes the underlying records instead (commands pass the raw
// payload there).
type Table struct {
	Header []string
	Rows   [][]string
	Footer string
}

func (t Table) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
	if t.Footer != "" {
		b.WriteString(t.Footer)
		b.WriteString("\n")
	}
	return b.String()
}

func pageFooter(p hr.Pagination) string {
	if p.Total == 0 && p.LastPage == 0 {
		return ""
	}
	return fmt.Sprintf("Page %d of %d (%d total)", p.CurrentPage, p.LastPage, p.Total)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func employeeTable(page hr.EmployeePage) Table {
	t := Table{
		Header: []string{"ID", "EMPLOYEE", "NAME", "DEPARTMENT", "POSITION", "TYPE", "ACTIVE"},
		Footer: pageFooter(page.Pagination),
	}
	for _, e := range page.Employees {
		name := "-"
		if e.User != nil {
			name = e.User.Name
		}
		dept, pos := "-", "-"
		if e.Department != nil {
			dept = e.Department.Name
		}
		if e.Position != nil {
			pos = e.Position.Title
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", e.ID), e.EmployeeID, name, dept, pos,
			dash(e.EmploymentType), yesNo(e.IsActive),
		})
	}
	return t
}

func departmentTable(page hr.DepartmentPage) Table {
	t := Table{
		Header: []string{"ID", "CODE", "NAME", "EMPLOYEES", "ACTIVE"},
		Footer: pageFooter(page.Pagination),
	}
	for _, d := range page.Departments {
		count := "-"
		if d.EmployeesCount != nil {
			count = fmt.Sprintf("%d", *d.EmployeesCount)
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", d.ID), d.Code, d.Name, count, yesNo(d.IsActive),
		})
	}
	return t
}

func positionTable(page hr.PositionPage) Table {
	t := Table{
		Header: []string{"ID", "CODE", "TITLE", "SALARY MIN", "SALARY MAX", "ACTIVE"},
		Footer: pageFooter(page.Pagination),
	}
	for _, p := range page.Positions {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", p.ID), p.Code, p.Title,
			dash(p.BaseSalaryMin), dash(p.BaseSalaryMax), yesNo(p.IsActive),
		})
	}
	return t
}

func leaveTable(page hr.LeaveRequestPage) Table {
	t := Table{
		Header: []string{"ID", "EMPLOYEE", "TYPE", "FROM", "TO", "DURATION", "STATUS"},
	}
	if page.Total > 0 || page.LastPage > 0 {
		t.Footer = fmt.Sprintf("Page %d of %d (%d total)", page.CurrentPage, page.LastPage, page.Total)
	}
	for _, lr := range page.Data {
		who := fmt.Sprintf("%d", lr.EmployeeID)
		if lr.Employee != nil && lr.Employee.User != nil {
			who = lr.Employee.User.Name
		}
		duration := lr.TotalDays + "d"
		if lr.DurationType == hr.DurationHours {
			duration = lr.TotalHours + "h"
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", lr.ID), who, lr.LeaveType,
			lr.StartDate, lr.EndDate, duration, lr.Status,
		})
	}
	return t
}

func attendanceTable(records []hr.Attendance, page hr.Pagination) Table {
	t := Table{
		Header: []string{"ID", "EMPLOYEE", "DATE", "IN", "OUT", "TYPE", "NOTES"},
		Footer: pageFooter(page),
	}
	for _, a := range records {
		who := fmt.Sprintf("%d", a.EmployeeID)
		if a.Employee != nil {
			who = a.Employee.Name
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", a.ID), who, a.Date,
			dash(a.CheckInTime), dash(a.CheckOutTime),
			dash(a.AttendanceTypeLabel), dash(a.Notes),
		})
	}
	return t
}

// Details is a rendered key-value block for single records.
type Details struct {
	Pairs [][2]string
}

func (d Details) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, p := range d.Pairs {
		fmt.Fprintf(w, "%s:\t%s\n", p[0], p[1])
	}
	_ = w.Flush()
	return b.String()
}

func (d *Details) add(key, value string) {
	d.Pairs = append(d.Pairs, [2]string{key, value})
}
