package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hrops/hrc/internal/api"
	"github.com/hrops/hrc/internal/hr"
)

// attendanceFilterFlags binds the attendance list filters to flags.
type attendanceFilterFlags struct {
	EmployeeID int
	Date       string
	StartDate  string
	EndDate    string
	Type       string
	Page       int
	PerPage    int
}

func (ff *attendanceFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ff.EmployeeID, "employee", 0, "filter by employee id")
	cmd.Flags().StringVar(&ff.Date, "date", "", "filter by exact date YYYY-MM-DD")
	cmd.Flags().StringVar(&ff.StartDate, "from", "", "range start YYYY-MM-DD")
	cmd.Flags().StringVar(&ff.EndDate, "to", "", "range end YYYY-MM-DD")
	cmd.Flags().StringVar(&ff.Type, "type", "", "filter by attendance type")
	cmd.Flags().IntVar(&ff.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&ff.PerPage, "per-page", 0, "records per page")
}

func (ff *attendanceFilterFlags) filters(cmd *cobra.Command) hr.AttendanceFilters {
	var f hr.AttendanceFilters
	if cmd.Flags().Changed("employee") {
		f.EmployeeID = hr.Int(ff.EmployeeID)
	}
	if cmd.Flags().Changed("date") {
		f.Date = hr.String(ff.Date)
	}
	if cmd.Flags().Changed("from") {
		f.StartDate = hr.String(ff.StartDate)
	}
	if cmd.Flags().Changed("to") {
		f.EndDate = hr.String(ff.EndDate)
	}
	if cmd.Flags().Changed("type") {
		f.AttendanceType = hr.String(ff.Type)
	}
	if cmd.Flags().Changed("page") {
		f.Page = hr.Int(ff.Page)
	}
	if cmd.Flags().Changed("per-page") {
		f.PerPage = hr.Int(ff.PerPage)
	}
	return f
}

// encodePhoto reads an image file and returns its base64 encoding, the
// form the attendance endpoints accept photos in.
func encodePhoto(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "read photo failed", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// NewAttendanceCommand creates the attendance command group.
func NewAttendanceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Manage attendance records and daily check-in",
	}

	cmd.AddCommand(newAttendanceListCommand(rootOpts))
	cmd.AddCommand(newAttendanceShowCommand(rootOpts))
	cmd.AddCommand(newAttendanceAddCommand(rootOpts))
	cmd.AddCommand(newAttendanceUpdateCommand(rootOpts))
	cmd.AddCommand(newAttendanceDeleteCommand(rootOpts))
	cmd.AddCommand(newAttendanceStatsCommand(rootOpts))
	cmd.AddCommand(newAttendanceTodayCommand(rootOpts))
	cmd.AddCommand(newAttendanceExportCommand(rootOpts))
	cmd.AddCommand(newCheckInCommand(rootOpts))
	cmd.AddCommand(newCheckOutCommand(rootOpts))
	cmd.AddCommand(newAttendanceStatusCommand(rootOpts))
	cmd.AddCommand(newAttendanceHistoryCommand(rootOpts))
	cmd.AddCommand(newBranchInfoCommand(rootOpts))
	cmd.AddCommand(newAdminCheckInCommand(rootOpts))
	cmd.AddCommand(newAdminCheckOutCommand(rootOpts))

	return cmd
}

func newAttendanceListCommand(rootOpts *RootOptions) *cobra.Command {
	ff := &attendanceFilterFlags{}
	var search string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List attendance records",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.ListAttendances(cmd.Context(), ff.filters(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "list attendances failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			// --search narrows the fetched page locally by employee name,
			// employee id, or notes.
			records := hr.FilterAttendances(resp.Data.Attendances, search)
			return emit(f, records, attendanceTable(records, resp.Data.Pagination))
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&search, "search", "", "narrow the page by name, employee id, or notes")
	return cmd
}

func newAttendanceShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one attendance record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.GetAttendance(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "get attendance failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			a := resp.Data
			d := &Details{}
			d.add("ID", fmt.Sprintf("%d", a.ID))
			d.add("Employee", fmt.Sprintf("%d", a.EmployeeID))
			if a.Employee != nil {
				d.add("Name", a.Employee.Name)
			}
			d.add("Date", a.Date)
			d.add("Type", a.AttendanceTypeLabel)
			d.add("Check-in", dash(a.CheckInTime))
			d.add("Check-out", dash(a.CheckOutTime))
			if a.TotalHours != nil {
				d.add("Hours", fmt.Sprintf("%v", a.TotalHours))
			}
			if a.Location != nil {
				d.add("Location", a.Location.Address)
			}
			d.add("Notes", dash(a.Notes))
			return emit(f, a, *d)
		},
	}
	return cmd
}

func newAttendanceAddCommand(rootOpts *RootOptions) *cobra.Command {
	var payload hr.CreateAttendance
	var lat, lng float64
	var photoPath string

	cmd := &cobra.Command{
		Use:           "add",
		Short:         "Record an attendance entry for an employee",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lat") {
				payload.Latitude = &lat
			}
			if cmd.Flags().Changed("lng") {
				payload.Longitude = &lng
			}
			photo, err := encodePhoto(photoPath)
			if err != nil {
				return err
			}
			payload.Photo = photo

			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.CreateAttendance(cmd.Context(), payload)
			if err != nil {
				return WrapExitError(ExitCommandError, "create attendance failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Recorded attendance %d for employee %d", resp.Data.ID, resp.Data.EmployeeID)))
		},
	}

	cmd.Flags().IntVar(&payload.EmployeeID, "employee", 0, "employee id (required)")
	cmd.Flags().StringVar(&payload.CheckInTime, "check-in", "", "check-in time")
	cmd.Flags().StringVar(&payload.CheckOutTime, "check-out", "", "check-out time")
	cmd.Flags().StringVar(&payload.AttendanceType, "type", "", "attendance type")
	cmd.Flags().StringVar(&payload.Notes, "notes", "", "notes")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().StringVar(&photoPath, "photo", "", "image file attached to the record")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newAttendanceUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		checkIn  string
		checkOut string
		attType  string
		notes    string
	)

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Update fields on an attendance record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}

			fields := map[string]any{}
			if cmd.Flags().Changed("check-in") {
				fields["check_in_time"] = checkIn
			}
			if cmd.Flags().Changed("check-out") {
				fields["check_out_time"] = checkOut
			}
			if cmd.Flags().Changed("type") {
				fields["attendance_type"] = attType
			}
			if cmd.Flags().Changed("notes") {
				fields["notes"] = notes
			}
			if len(fields) == 0 {
				return NewExitError(ExitCommandError, "nothing to update: set at least one field flag")
			}

			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.UpdateAttendance(cmd.Context(), id, fields)
			if err != nil {
				return WrapExitError(ExitCommandError, "update attendance failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Updated attendance %d", id)))
		},
	}

	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in time")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out time")
	cmd.Flags().StringVar(&attType, "type", "", "attendance type")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")

	return cmd
}

func newAttendanceDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete an attendance record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.DeleteAttendance(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "delete attendance failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, map[string]any{"deleted": id}, message(fmt.Sprintf("Deleted attendance %d", id)))
		},
	}
	return cmd
}

func newAttendanceStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats",
		Short:         "Show aggregate attendance statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.AttendanceStatistics(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "fetch statistics failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			s := resp.Data
			d := &Details{}
			d.add("Days", fmt.Sprintf("%d", s.TotalDays))
			d.add("Employees", fmt.Sprintf("%d", s.TotalEmployees))
			d.add("Check-ins", fmt.Sprintf("%d", s.TotalCheckins))
			d.add("Check-outs", fmt.Sprintf("%d", s.TotalCheckouts))
			d.add("Average hours", fmt.Sprintf("%.2f", s.AverageHours))
			d.add("Total hours", fmt.Sprintf("%.2f", s.TotalHours))
			return emit(f, s, *d)
		},
	}
	return cmd
}

func newAttendanceTodayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "today",
		Short:         "Show today's live attendance summary",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.TodayStats(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "fetch today stats failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			s := resp.Data
			d := &Details{}
			d.add("Employees", fmt.Sprintf("%d", s.TotalEmployees))
			d.add("Checked in", fmt.Sprintf("%d", s.CheckedIn))
			d.add("Checked out", fmt.Sprintf("%d", s.CheckedOut))
			d.add("With location", fmt.Sprintf("%d", s.WithLocation))
			d.add("Late arrivals", fmt.Sprintf("%d", s.LateArrivals))
			d.add("Absent", fmt.Sprintf("%d", s.Absent))
			return emit(f, s, *d)
		},
	}
	return cmd
}

func newAttendanceExportCommand(rootOpts *RootOptions) *cobra.Command {
	ff := &attendanceFilterFlags{}
	var out string

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Export the filtered attendance set to a workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.ExportAttendances(cmd.Context(), ff.filters(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "export attendances failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			if err := writeWorkbook(out, "Attendances", resp.Data); err != nil {
				return WrapExitError(ExitCommandError, "write workbook failed", err)
			}
			return emit(f,
				map[string]any{"file": out, "rows": len(resp.Data)},
				message(fmt.Sprintf("Exported %d rows to %s", len(resp.Data), out)))
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "attendances.xlsx", "output file")
	return cmd
}

func newCheckInCommand(rootOpts *RootOptions) *cobra.Command {
	var req api.CheckInRequest
	var lat, lng float64
	var photoPath string

	cmd := &cobra.Command{
		Use:           "checkin",
		Short:         "Check in for the day",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lat") {
				req.Latitude = &lat
			}
			if cmd.Flags().Changed("lng") {
				req.Longitude = &lng
			}
			photo, err := encodePhoto(photoPath)
			if err != nil {
				return err
			}
			req.Photo = photo

			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.CheckIn(cmd.Context(), req)
			if err != nil {
				return WrapExitError(ExitCommandError, "check-in failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Checked in at %s", resp.Data.CheckInTime)))
		},
	}

	cmd.Flags().IntVar(&req.EmployeeID, "employee", 0, "employee id (required)")
	cmd.Flags().StringVar(&req.CheckInTime, "time", "", "check-in time, defaults to now")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "notes")
	cmd.Flags().StringVar(&photoPath, "photo", "", "image file attached to the check-in")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newCheckOutCommand(rootOpts *RootOptions) *cobra.Command {
	var req api.CheckOutRequest
	var photoPath string

	cmd := &cobra.Command{
		Use:           "checkout",
		Short:         "Check out for the day",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			photo, err := encodePhoto(photoPath)
			if err != nil {
				return err
			}
			req.Photo = photo

			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.CheckOut(cmd.Context(), req)
			if err != nil {
				return WrapExitError(ExitCommandError, "check-out failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Checked out at %s", resp.Data.CheckOutTime)))
		},
	}

	cmd.Flags().IntVar(&req.EmployeeID, "employee", 0, "employee id (required)")
	cmd.Flags().StringVar(&req.CheckOutTime, "time", "", "check-out time, defaults to now")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "notes")
	cmd.Flags().StringVar(&photoPath, "photo", "", "image file attached to the check-out")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newAttendanceStatusCommand(rootOpts *RootOptions) *cobra.Command {
	var employeeID int

	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show an employee's check-in state for today",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.AttendanceStatus(cmd.Context(), employeeID)
			if err != nil {
				return WrapExitError(ExitCommandError, "fetch attendance status failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(string(resp.Data)))
		},
	}

	cmd.Flags().IntVar(&employeeID, "employee", 0, "employee id (required)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func newAttendanceHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var employeeID int
	var from, to string

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show an employee's attendance history",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.AttendanceHistory(cmd.Context(), employeeID, from, to)
			if err != nil {
				return WrapExitError(ExitCommandError, "fetch attendance history failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, attendanceTable(resp.Data, hr.Pagination{Total: len(resp.Data), PerPage: len(resp.Data), CurrentPage: 1, LastPage: 1}))
		},
	}

	cmd.Flags().IntVar(&employeeID, "employee", 0, "employee id (required)")
	cmd.Flags().StringVar(&from, "from", "", "range start YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "range end YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func newBranchInfoCommand(rootOpts *RootOptions) *cobra.Command {
	var employeeID int

	cmd := &cobra.Command{
		Use:           "branch-info",
		Short:         "Show the branch an employee checks in against",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.BranchInfo(cmd.Context(), employeeID)
			if err != nil {
				return WrapExitError(ExitCommandError, "fetch branch info failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(string(resp.Data)))
		},
	}

	cmd.Flags().IntVar(&employeeID, "employee", 0, "employee id (required)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func newAdminCheckCommand(rootOpts *RootOptions, use, short, action string,
	call func(app *App, cmd *cobra.Command, req api.AdminCheckRequest) (api.Response[hr.Attendance], error)) *cobra.Command {
	var req api.AdminCheckRequest

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := call(app, cmd, req)
			if err != nil {
				return WrapExitError(ExitCommandError, action+" failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Forced %s for employee %d", action, req.EmployeeID)))
		},
	}

	cmd.Flags().IntVar(&req.EmployeeID, "employee", 0, "employee id (required)")
	cmd.Flags().StringVar(&req.Date, "date", "", "date YYYY-MM-DD, defaults to today")
	cmd.Flags().StringVar(&req.Time, "time", "", "time, defaults to now")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newAdminCheckInCommand(rootOpts *RootOptions) *cobra.Command {
	return newAdminCheckCommand(rootOpts, "admin-checkin", "Force a check-in on behalf of an employee", "check-in",
		func(app *App, cmd *cobra.Command, req api.AdminCheckRequest) (api.Response[hr.Attendance], error) {
			return app.Client.AdminCheckIn(cmd.Context(), req)
		})
}

func newAdminCheckOutCommand(rootOpts *RootOptions) *cobra.Command {
	return newAdminCheckCommand(rootOpts, "admin-checkout", "Force a check-out on behalf of an employee", "check-out",
		func(app *App, cmd *cobra.Command, req api.AdminCheckRequest) (api.Response[hr.Attendance], error) {
			return app.Client.AdminCheckOut(cmd.Context(), req)
		})
}
