package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hrops/hrc/internal/hr"
)

// employeeFilterFlags binds the employees list filters to flags and
// converts only the flags the user actually set.
type employeeFilterFlags struct {
	Search         string
	DepartmentID   int
	PositionID     int
	EmploymentType string
	Active         bool
	Page           int
	PerPage        int
}

func (ff *employeeFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.Search, "search", "", "search by name, email, or employee id")
	cmd.Flags().IntVar(&ff.DepartmentID, "department", 0, "filter by department id")
	cmd.Flags().IntVar(&ff.PositionID, "position", 0, "filter by position id")
	cmd.Flags().StringVar(&ff.EmploymentType, "type", "", "filter by employment type")
	cmd.Flags().BoolVar(&ff.Active, "active", false, "filter by active state")
	cmd.Flags().IntVar(&ff.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&ff.PerPage, "per-page", 0, "records per page")
}

func (ff *employeeFilterFlags) filters(cmd *cobra.Command) hr.EmployeeFilters {
	var f hr.EmployeeFilters
	if cmd.Flags().Changed("search") {
		f.Search = hr.String(ff.Search)
	}
	if cmd.Flags().Changed("department") {
		f.DepartmentID = hr.Int(ff.DepartmentID)
	}
	if cmd.Flags().Changed("position") {
		f.PositionID = hr.Int(ff.PositionID)
	}
	if cmd.Flags().Changed("type") {
		f.EmploymentType = hr.String(ff.EmploymentType)
	}
	if cmd.Flags().Changed("active") {
		f.IsActive = hr.Bool(ff.Active)
	}
	if cmd.Flags().Changed("page") {
		f.Page = hr.Int(ff.Page)
	}
	if cmd.Flags().Changed("per-page") {
		f.PerPage = hr.Int(ff.PerPage)
	}
	return f
}

// idArg parses the positional resource id every show/update/delete
// subcommand takes.
func idArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q", args[0]))
	}
	return id, nil
}

// NewEmployeeCommand creates the employee command group.
func NewEmployeeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employee records",
	}

	cmd.AddCommand(newEmployeeListCommand(rootOpts))
	cmd.AddCommand(newEmployeeShowCommand(rootOpts))
	cmd.AddCommand(newEmployeeCreateCommand(rootOpts))
	cmd.AddCommand(newEmployeeUpdateCommand(rootOpts))
	cmd.AddCommand(newEmployeeDeleteCommand(rootOpts))
	cmd.AddCommand(newEmployeeOptionsCommand(rootOpts))
	cmd.AddCommand(newEmployeeExportCommand(rootOpts))

	return cmd
}

func newEmployeeListCommand(rootOpts *RootOptions) *cobra.Command {
	ff := &employeeFilterFlags{}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List employees",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.ListEmployees(cmd.Context(), ff.filters(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "list employees failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, employeeTable(resp.Data))
		},
	}

	ff.register(cmd)
	return cmd
}

func newEmployeeShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one employee",
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

			resp, err := app.Client.GetEmployee(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "get employee failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			e := resp.Data
			d := &Details{}
			d.add("ID", fmt.Sprintf("%d", e.ID))
			d.add("Employee", e.EmployeeID)
			if e.User != nil {
				d.add("Name", e.User.Name)
				d.add("Email", e.User.Email)
			}
			if e.Department != nil {
				d.add("Department", e.Department.Name)
			}
			if e.Position != nil {
				d.add("Position", e.Position.Title)
			}
			d.add("Hired", e.HireDate)
			d.add("Type", e.EmploymentType)
			d.add("Active", yesNo(e.IsActive))
			return emit(f, e, *d)
		},
	}
	return cmd
}

func newEmployeeCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var payload hr.CreateEmployee
	var salary float64

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Create an employee with its user account",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			if cmd.Flags().Changed("salary") {
				payload.Salary = &salary
			}

			resp, err := app.Client.CreateEmployee(cmd.Context(), payload)
			if err != nil {
				return WrapExitError(ExitCommandError, "create employee failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Created employee %s (id %d)", resp.Data.EmployeeID, resp.Data.ID)))
		},
	}

	cmd.Flags().StringVar(&payload.Name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&payload.Email, "email", "", "email (required)")
	cmd.Flags().StringVar(&payload.Username, "username", "", "username (required)")
	cmd.Flags().StringVar(&payload.Password, "password", "", "initial password (required)")
	cmd.Flags().StringVar(&payload.Phone, "phone", "", "phone number")
	cmd.Flags().IntVar(&payload.CityID, "city", 0, "city id (required)")
	cmd.Flags().IntVar(&payload.BranchID, "branch", 0, "branch id (required)")
	cmd.Flags().IntVar(&payload.DepartmentID, "department", 0, "department id (required)")
	cmd.Flags().IntVar(&payload.PositionID, "position", 0, "position id (required)")
	cmd.Flags().StringVar(&payload.HireDate, "hire-date", "", "hire date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&payload.EmploymentType, "type", "", "employment type (required)")
	cmd.Flags().Float64Var(&salary, "salary", 0, "salary")
	cmd.Flags().StringVar(&payload.Notes, "notes", "", "notes")
	for _, flag := range []string{"name", "email", "username", "password", "city", "branch", "department", "position", "hire-date", "type"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func newEmployeeUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		departmentID int
		positionID   int
		salary       float64
		empType      string
		active       bool
		notes        string
	)

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Update fields on an employee",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}

			fields := map[string]any{}
			if cmd.Flags().Changed("department") {
				fields["department_id"] = departmentID
			}
			if cmd.Flags().Changed("position") {
				fields["position_id"] = positionID
			}
			if cmd.Flags().Changed("salary") {
				fields["salary"] = salary
			}
			if cmd.Flags().Changed("type") {
				fields["employment_type"] = empType
			}
			if cmd.Flags().Changed("active") {
				fields["is_active"] = active
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

			resp, err := app.Client.UpdateEmployee(cmd.Context(), id, fields)
			if err != nil {
				return WrapExitError(ExitCommandError, "update employee failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Updated employee %d", id)))
		},
	}

	cmd.Flags().IntVar(&departmentID, "department", 0, "department id")
	cmd.Flags().IntVar(&positionID, "position", 0, "position id")
	cmd.Flags().Float64Var(&salary, "salary", 0, "salary")
	cmd.Flags().StringVar(&empType, "type", "", "employment type")
	cmd.Flags().BoolVar(&active, "active", false, "active state")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")

	return cmd
}

func newEmployeeDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete an employee",
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

			resp, err := app.Client.DeleteEmployee(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "delete employee failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, map[string]any{"deleted": id}, message(fmt.Sprintf("Deleted employee %d", id)))
		},
	}
	return cmd
}

func newEmployeeOptionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "options",
		Short:         "Show the option sets backing the employee filters",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.EmployeeFilterOptions(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "fetch filter options failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(string(resp.Data)))
		},
	}
	return cmd
}

func newEmployeeExportCommand(rootOpts *RootOptions) *cobra.Command {
	ff := &employeeFilterFlags{}
	var out string

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Export the filtered employee set to a workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.ExportEmployees(cmd.Context(), ff.filters(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "export employees failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			if err := writeWorkbook(out, "Employees", resp.Data); err != nil {
				return WrapExitError(ExitCommandError, "write workbook failed", err)
			}
			return emit(f,
				map[string]any{"file": out, "rows": len(resp.Data)},
				message(fmt.Sprintf("Exported %d rows to %s", len(resp.Data), out)))
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "employees.xlsx", "output file")
	return cmd
}
