package hr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDepartmentCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hr", "HR"},
		{"HR", "HR"},
		{" it ", "IT"},
		{"fin-01", "FIN-01"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDepartmentCode(tt.in))
		})
	}
}

func TestValidateSalaryRange_Valid(t *testing.T) {
	assert.Nil(t, ValidateSalaryRange(1000, 2000))
	assert.Nil(t, ValidateSalaryRange(0, 0))
	assert.Nil(t, ValidateSalaryRange(1500, 1500))
}

func TestValidateSalaryRange_MaxBelowMin(t *testing.T) {
	errs := ValidateSalaryRange(2000, 1000)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "base_salary_max")
	assert.NotContains(t, errs, "base_salary_min")
}

func TestValidateSalaryRange_Negative(t *testing.T) {
	errs := ValidateSalaryRange(-1, -5)
	require.NotNil(t, errs)
	assert.Len(t, errs["base_salary_min"], 1)
	// Only the non-negative message; the cross-field check is skipped
	// when either bound is already invalid.
	assert.Len(t, errs["base_salary_max"], 1)
}

func TestDurationTypeFor(t *testing.T) {
	options := []LeaveTypeOption{
		{Value: "annual", IsHourlyBased: false},
		{Value: "permission", IsHourlyBased: true},
	}

	assert.Equal(t, DurationDays, DurationTypeFor("annual", options))
	assert.Equal(t, DurationHours, DurationTypeFor("permission", options))
	assert.Equal(t, DurationDays, DurationTypeFor("unknown", options))
	assert.Equal(t, DurationDays, DurationTypeFor("annual", nil))
}

func TestFilterAttendances_EmptyTermKeepsAll(t *testing.T) {
	records := []Attendance{
		{ID: 1, IsCheckedIn: true, IsCheckedOut: false},
		{ID: 2, IsCheckedIn: true, IsCheckedOut: true},
	}

	got := FilterAttendances(records, "")
	require.Len(t, got, 2)
	assert.True(t, got[0].IsCheckedIn)
	assert.False(t, got[0].IsCheckedOut)
	assert.True(t, got[1].IsCheckedOut)
}

func TestFilterAttendances_MatchesNameIDNotes(t *testing.T) {
	records := []Attendance{
		{ID: 1, Employee: &AttendanceEmployee{ID: 101, Name: "Ali Hassan"}},
		{ID: 2, Employee: &AttendanceEmployee{ID: 202, Name: "Sara"}, Notes: "late arrival"},
		{ID: 3},
	}

	assert.Len(t, FilterAttendances(records, "ali"), 1)
	assert.Len(t, FilterAttendances(records, "202"), 1)
	assert.Len(t, FilterAttendances(records, "LATE"), 1)
	assert.Len(t, FilterAttendances(records, "nobody"), 0)
}

func TestFilterAttendances_NormalizesUnicode(t *testing.T) {
	// "é" composed vs decomposed ("e" + combining acute).
	records := []Attendance{
		{ID: 1, Employee: &AttendanceEmployee{ID: 1, Name: "René"}},
	}

	assert.Len(t, FilterAttendances(records, "René"), 1)
}
