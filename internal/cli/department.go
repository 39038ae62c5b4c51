package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrops/hrc/internal/hr"
)

// NewDepartmentCommand creates the department command group.
func NewDepartmentCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "department",
		Short: "Manage departments",
	}

	cmd.AddCommand(newDepartmentListCommand(rootOpts))
	cmd.AddCommand(newDepartmentShowCommand(rootOpts))
	cmd.AddCommand(newDepartmentCreateCommand(rootOpts))
	cmd.AddCommand(newDepartmentUpdateCommand(rootOpts))
	cmd.AddCommand(newDepartmentDeleteCommand(rootOpts))

	return cmd
}

func newDepartmentListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List departments",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.ListDepartments(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list departments failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, departmentTable(resp.Data))
		},
	}
	return cmd
}

func newDepartmentShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one department",
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

			resp, err := app.Client.GetDepartment(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "get department failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			dep := resp.Data
			d := &Details{}
			d.add("ID", fmt.Sprintf("%d", dep.ID))
			d.add("Code", dep.Code)
			d.add("Name", dep.Name)
			d.add("Description", dash(dep.Description))
			d.add("Active", yesNo(dep.IsActive))
			if dep.EmployeesCount != nil {
				d.add("Employees", fmt.Sprintf("%d", *dep.EmployeesCount))
			}
			return emit(f, dep, *d)
		},
	}
	return cmd
}

func newDepartmentCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var payload hr.CreateDepartment

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Create a department",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.CreateDepartment(cmd.Context(), payload)
			if err != nil {
				return WrapExitError(ExitCommandError, "create department failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Created department %s (id %d)", resp.Data.Code, resp.Data.ID)))
		},
	}

	cmd.Flags().StringVar(&payload.Code, "code", "", "department code, stored uppercased (required)")
	cmd.Flags().StringVar(&payload.Name, "name", "", "department name (required)")
	cmd.Flags().StringVar(&payload.Description, "description", "", "description")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newDepartmentUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		code        string
		name        string
		description string
		active      bool
	)

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Update fields on a department",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}

			fields := map[string]any{}
			if cmd.Flags().Changed("code") {
				fields["code"] = code
			}
			if cmd.Flags().Changed("name") {
				fields["name"] = name
			}
			if cmd.Flags().Changed("description") {
				fields["description"] = description
			}
			if cmd.Flags().Changed("active") {
				fields["is_active"] = active
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

			resp, err := app.Client.UpdateDepartment(cmd.Context(), id, fields)
			if err != nil {
				return WrapExitError(ExitCommandError, "update department failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Updated department %d", id)))
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "department code")
	cmd.Flags().StringVar(&name, "name", "", "department name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().BoolVar(&active, "active", false, "active state")

	return cmd
}

func newDepartmentDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a department",
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

			resp, err := app.Client.DeleteDepartment(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "delete department failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, map[string]any{"deleted": id}, message(fmt.Sprintf("Deleted department %d", id)))
		},
	}
	return cmd
}
