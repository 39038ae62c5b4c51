package hr

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Duration types for leave requests.
const (
	DurationDays  = "days"
	DurationHours = "hours"
)

// NormalizeDepartmentCode uppercases a department code after trimming
// surrounding whitespace. The backend also enforces uppercase codes; the
// console normalizes before submit so the value shown to the operator
// matches what is stored.
func NormalizeDepartmentCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateSalaryRange checks a position's salary bounds: both must be
// non-negative and the maximum must not fall below the minimum. Failures
// come back as field-name to messages, the same shape the backend uses
// for validation errors, so the console renders both identically.
func ValidateSalaryRange(min, max float64) map[string][]string {
	errs := map[string][]string{}
	if min < 0 {
		errs["base_salary_min"] = append(errs["base_salary_min"], "minimum salary must be at least 0")
	}
	if max < 0 {
		errs["base_salary_max"] = append(errs["base_salary_max"], "maximum salary must be at least 0")
	}
	if min >= 0 && max >= 0 && max < min {
		errs["base_salary_max"] = append(errs["base_salary_max"], "maximum salary must be greater than or equal to minimum salary")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// DurationTypeFor resolves the duration type for a leave type: hourly
// leave types track hours, everything else tracks whole days. Unknown
// leave types default to days.
func DurationTypeFor(leaveType string, options []LeaveTypeOption) string {
	for _, opt := range options {
		if opt.Value == leaveType {
			if opt.IsHourlyBased {
				return DurationHours
			}
			return DurationDays
		}
	}
	return DurationDays
}

// FilterAttendances applies the local attendance search: a record matches
// when the term appears in the employee name, the employee id, or the
// notes. Matching is case-insensitive and NFC-normalized so composed and
// decomposed spellings of the same name compare equal. An empty term
// matches everything.
func FilterAttendances(records []Attendance, term string) []Attendance {
	needle := foldTerm(term)
	if needle == "" {
		return records
	}
	out := make([]Attendance, 0, len(records))
	for _, rec := range records {
		if attendanceMatches(rec, needle) {
			out = append(out, rec)
		}
	}
	return out
}

func attendanceMatches(rec Attendance, needle string) bool {
	if rec.Employee != nil {
		if strings.Contains(foldTerm(rec.Employee.Name), needle) {
			return true
		}
		if strings.Contains(strconv.Itoa(rec.Employee.ID), needle) {
			return true
		}
	}
	return strings.Contains(foldTerm(rec.Notes), needle)
}

func foldTerm(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
