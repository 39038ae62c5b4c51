package hr

// User is the account record behind an HR login.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Level     string `json:"level"`
	Status    string `json:"status"`
	AvatarURL string `json:"avatar_url,omitempty"`
	BranchID  int    `json:"branch_id,omitempty"`
	CityID    *int   `json:"city_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// EmployeeProfile is the slim employee view returned alongside a User
// by login and identity responses.
type EmployeeProfile struct {
	ID             int    `json:"id"`
	EmployeeID     string `json:"employee_id"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
	HireDate       string `json:"hire_date"`
	EmploymentType string `json:"employment_type"`
	Supervisor     string `json:"supervisor,omitempty"`
}

// DepartmentRef and PositionRef are the shallow references embedded in
// employee records.
type DepartmentRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PositionRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Employee is the full employee resource.
type Employee struct {
	ID                           int            `json:"id"`
	UserID                       int            `json:"user_id"`
	EmployeeID                   string         `json:"employee_id"`
	DepartmentID                 *int           `json:"department_id,omitempty"`
	PositionID                   *int           `json:"position_id,omitempty"`
	HireDate                     string         `json:"hire_date"`
	Salary                       *float64       `json:"salary,omitempty"`
	EmploymentType               string         `json:"employment_type"`
	WorkSchedule                 string         `json:"work_schedule,omitempty"`
	SupervisorID                 *int           `json:"supervisor_id,omitempty"`
	EmergencyContactName         string         `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone        string         `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelationship string         `json:"emergency_contact_relationship,omitempty"`
	BankAccountNumber            string         `json:"bank_account_number,omitempty"`
	TaxID                        string         `json:"tax_id,omitempty"`
	IsActive                     bool           `json:"is_active"`
	Notes                        string         `json:"notes,omitempty"`
	CreatedAt                    string         `json:"created_at"`
	UpdatedAt                    string         `json:"updated_at"`
	User                         *User          `json:"user,omitempty"`
	Department                   *DepartmentRef `json:"department,omitempty"`
	Position                     *PositionRef   `json:"position,omitempty"`
}

// CreateEmployee is the payload for creating an employee together with
// its backing user account.
type CreateEmployee struct {
	// Account fields.
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	CityID   int    `json:"city_id"`
	BranchID int    `json:"branch_id"`
	Level    string `json:"level,omitempty"`
	Status   string `json:"status,omitempty"`

	// Employment fields.
	DepartmentID   int    `json:"department_id"`
	PositionID     int    `json:"position_id"`
	HireDate       string `json:"hire_date"`
	EmploymentType string `json:"employment_type"`
	IsActive       *bool  `json:"is_active,omitempty"`

	// Optional detail.
	Salary                       *float64 `json:"salary,omitempty"`
	WorkSchedule                 string   `json:"work_schedule,omitempty"`
	SupervisorID                 *int     `json:"supervisor_id,omitempty"`
	EmergencyContactName         string   `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone        string   `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelationship string   `json:"emergency_contact_relationship,omitempty"`
	BankAccountNumber            string   `json:"bank_account_number,omitempty"`
	TaxID                        string   `json:"tax_id,omitempty"`
	Notes                        string   `json:"notes,omitempty"`
}

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// EmployeePage is the employees list response.
type EmployeePage struct {
	Employees  []Employee `json:"employees"`
	Pagination Pagination `json:"pagination"`
}

// Department is the department resource.
type Department struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Description    string `json:"description,omitempty"`
	IsActive       bool   `json:"is_active"`
	Color          string `json:"color,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	EmployeesCount *int   `json:"employees_count,omitempty"`
}

// CreateDepartment is the department create/update payload. Code is
// expected to be uppercase on the wire; see NormalizeDepartmentCode.
type CreateDepartment struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// DepartmentPage is the departments list response.
type DepartmentPage struct {
	Departments []Department `json:"departments"`
	Pagination  Pagination   `json:"pagination"`
}

// Position is the position resource. Salary bounds arrive as decimal
// strings from the backend.
type Position struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Code           string `json:"code"`
	Description    string `json:"description,omitempty"`
	BaseSalaryMin  string `json:"base_salary_min"`
	BaseSalaryMax  string `json:"base_salary_max"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	EmployeesCount *int   `json:"employees_count,omitempty"`
}

// CreatePosition is the position create/update payload.
type CreatePosition struct {
	Title         string  `json:"title"`
	Code          string  `json:"code"`
	Description   string  `json:"description,omitempty"`
	BaseSalaryMin float64 `json:"base_salary_min"`
	BaseSalaryMax float64 `json:"base_salary_max"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// PositionPage is the positions list response.
type PositionPage struct {
	Positions  []Position `json:"positions"`
	Pagination Pagination `json:"pagination"`
}

// LeaveRequest is the leave request resource.
type LeaveRequest struct {
	ID              int       `json:"id"`
	EmployeeID      int       `json:"employee_id"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	StartDatetime   string    `json:"start_datetime,omitempty"`
	EndDate         string    `json:"end_date"`
	EndDatetime     string    `json:"end_datetime,omitempty"`
	TotalDays       string    `json:"total_days"`
	TotalHours      string    `json:"total_hours"`
	DurationType    string    `json:"duration_type"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	ApprovedBy      *int      `json:"approved_by,omitempty"`
	ApprovedAt      string    `json:"approved_at,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       string    `json:"created_at"`
	UpdatedAt       string    `json:"updated_at"`
	Employee        *Employee `json:"employee,omitempty"`
	Approver        *User     `json:"approver,omitempty"`
}

// CreateLeaveRequest is the leave request create/update payload.
type CreateLeaveRequest struct {
	EmployeeID    int    `json:"employee_id"`
	LeaveType     string `json:"leave_type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartDatetime string `json:"start_datetime,omitempty"`
	EndDatetime   string `json:"end_datetime,omitempty"`
	DurationType  string `json:"duration_type"`
	Reason        string `json:"reason"`
	Notes         string `json:"notes,omitempty"`
}

// LeaveRequestPage is the paginator the backend returns for leave
// requests. It differs from the other list responses: records live under
// "data" and the page metadata is inlined.
type LeaveRequestPage struct {
	CurrentPage int            `json:"current_page"`
	Data        []LeaveRequest `json:"data"`
	From        int            `json:"from"`
	LastPage    int            `json:"last_page"`
	PerPage     int            `json:"per_page"`
	To          int            `json:"to"`
	Total       int            `json:"total"`
}

// LeaveTypeOption describes one selectable leave type, including whether
// its duration is tracked hourly rather than daily.
type LeaveTypeOption struct {
	Value         string `json:"value"`
	Label         string `json:"label"`
	ArabicLabel   string `json:"arabic_label"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	IsHourlyBased bool   `json:"is_hourly_based"`
}

// LeaveStatusOption describes one selectable leave status.
type LeaveStatusOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	ArabicLabel string `json:"arabic_label"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// LeaveEmployeeOption is the employee summary offered in leave filters.
type LeaveEmployeeOption struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
}

// LeaveFilterOptions is the option set backing the leave request filters.
type LeaveFilterOptions struct {
	LeaveTypes []LeaveTypeOption     `json:"leave_types"`
	Statuses   []LeaveStatusOption   `json:"statuses"`
	Employees  []LeaveEmployeeOption `json:"employees"`
}

// AttendanceLocation carries the geolocation detail recorded with a
// check-in or check-out.
type AttendanceLocation struct {
	Name                       string   `json:"name,omitempty"`
	Address                    string   `json:"address,omitempty"`
	DeviceInfo                 string   `json:"device_info,omitempty"`
	CheckInTime                string   `json:"check_in_time,omitempty"`
	CheckoutName               string   `json:"checkout_name,omitempty"`
	CheckoutTime               string   `json:"checkout_time,omitempty"`
	CheckoutAddress            string   `json:"checkout_address,omitempty"`
	CheckoutLatitude           string   `json:"checkout_latitude,omitempty"`
	CheckoutLongitude          string   `json:"checkout_longitude,omitempty"`
	CheckoutBranchName         string   `json:"checkout_branch_name,omitempty"`
	CheckoutDeviceInfo         string   `json:"checkout_device_info,omitempty"`
	CheckoutLocationStatus     string   `json:"checkout_location_status,omitempty"`
	CheckoutDistanceFromBranch *float64 `json:"checkout_distance_from_branch,omitempty"`
	CheckoutAtAssignedBranch   *bool    `json:"checkout_is_at_assigned_branch,omitempty"`
}

// AttendanceImage describes a stored check-in/check-out photo.
type AttendanceImage struct {
	ID           int    `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	MediumURL    string `json:"medium_url"`
	LargeURL     string `json:"large_url"`
	UploadedAt   string `json:"uploaded_at"`
	FileName     string `json:"file_name"`
	Size         int    `json:"size"`
	MimeType     string `json:"mime_type"`
}

// AttendanceImages groups the photos attached to an attendance record.
type AttendanceImages struct {
	CheckIn  *AttendanceImage `json:"check_in,omitempty"`
	CheckOut *AttendanceImage `json:"check_out,omitempty"`
}

// AttendanceEmployee is the employee summary embedded in attendance
// records.
type AttendanceEmployee struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Branch     *DepartmentRef `json:"branch,omitempty"`
	Department *DepartmentRef `json:"department,omitempty"`
	Position   *PositionRef   `json:"position,omitempty"`
}

// Attendance is one attendance record. TotalHours may arrive as a number
// or a decimal string depending on the backend code path, so it is kept
// raw and parsed on demand.
type Attendance struct {
	ID                        int                 `json:"id"`
	EmployeeID                int                 `json:"employee_id"`
	Date                      string              `json:"date"`
	CheckInTime               string              `json:"check_in_time,omitempty"`
	CheckOutTime              string              `json:"check_out_time,omitempty"`
	TotalHours                any                 `json:"total_hours,omitempty"`
	AttendanceType            string              `json:"attendance_type"`
	AttendanceTypeLabel       string              `json:"attendance_type_label"`
	AttendanceTypeDescription string              `json:"attendance_type_description"`
	AttendanceTypeColor       string              `json:"attendance_type_color"`
	AttendanceTypeIcon        string              `json:"attendance_type_icon"`
	Notes                     string              `json:"notes,omitempty"`
	Latitude                  *float64            `json:"latitude,omitempty"`
	Longitude                 *float64            `json:"longitude,omitempty"`
	Location                  *AttendanceLocation `json:"location,omitempty"`
	Images                    *AttendanceImages   `json:"images,omitempty"`
	CreatedAt                 string              `json:"created_at"`
	UpdatedAt                 string              `json:"updated_at"`
	IsCheckedIn               bool                `json:"is_checked_in"`
	IsCheckedOut              bool                `json:"is_checked_out"`
	Employee                  *AttendanceEmployee `json:"employee,omitempty"`
}

// CreateAttendance is the payload for an admin-entered attendance record.
// Photo is a base64-encoded image.
type CreateAttendance struct {
	EmployeeID     int      `json:"employee_id"`
	CheckInTime    string   `json:"check_in_time,omitempty"`
	CheckOutTime   string   `json:"check_out_time,omitempty"`
	AttendanceType string   `json:"attendance_type,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Photo          string   `json:"photo,omitempty"`
}

// AttendancePage is the attendances list response.
type AttendancePage struct {
	Attendances []Attendance `json:"attendances"`
	Pagination  Pagination   `json:"pagination"`
}

// AttendanceStatistics is the aggregate attendance report.
type AttendanceStatistics struct {
	TotalDays      int     `json:"total_days"`
	TotalEmployees int     `json:"total_employees"`
	TotalCheckins  int     `json:"total_checkins"`
	TotalCheckouts int     `json:"total_checkouts"`
	AverageHours   float64 `json:"average_hours"`
	TotalHours     float64 `json:"total_hours"`
}

// TodayStats is the live dashboard summary for the current day.
type TodayStats struct {
	TotalEmployees int `json:"total_employees"`
	CheckedIn      int `json:"checked_in"`
	CheckedOut     int `json:"checked_out"`
	WithLocation   int `json:"with_location"`
	LateArrivals   int `json:"late_arrivals"`
	Absent         int `json:"absent"`
}
