package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrops/hrc/internal/hr"
)

// NewPositionCommand creates the position command group.
func NewPositionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Manage positions",
	}

	cmd.AddCommand(newPositionListCommand(rootOpts))
	cmd.AddCommand(newPositionShowCommand(rootOpts))
	cmd.AddCommand(newPositionCreateCommand(rootOpts))
	cmd.AddCommand(newPositionUpdateCommand(rootOpts))
	cmd.AddCommand(newPositionDeleteCommand(rootOpts))

	return cmd
}

func newPositionListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List positions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.ListPositions(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list positions failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, positionTable(resp.Data))
		},
	}
	return cmd
}

func newPositionShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one position",
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

			resp, err := app.Client.GetPosition(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "get position failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			pos := resp.Data
			d := &Details{}
			d.add("ID", fmt.Sprintf("%d", pos.ID))
			d.add("Code", pos.Code)
			d.add("Title", pos.Title)
			d.add("Description", dash(pos.Description))
			d.add("Salary min", pos.BaseSalaryMin)
			d.add("Salary max", pos.BaseSalaryMax)
			d.add("Active", yesNo(pos.IsActive))
			if pos.EmployeesCount != nil {
				d.add("Employees", fmt.Sprintf("%d", *pos.EmployeesCount))
			}
			return emit(f, pos, *d)
		},
	}
	return cmd
}

func newPositionCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var payload hr.CreatePosition

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Create a position",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			if errs := hr.ValidateSalaryRange(payload.BaseSalaryMin, payload.BaseSalaryMax); errs != nil {
				return f.Failure("Validation failed", errs)
			}

			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := app.Client.CreatePosition(cmd.Context(), payload)
			if err != nil {
				return WrapExitError(ExitCommandError, "create position failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Created position %s (id %d)", resp.Data.Code, resp.Data.ID)))
		},
	}

	cmd.Flags().StringVar(&payload.Title, "title", "", "position title (required)")
	cmd.Flags().StringVar(&payload.Code, "code", "", "position code (required)")
	cmd.Flags().StringVar(&payload.Description, "description", "", "description")
	cmd.Flags().Float64Var(&payload.BaseSalaryMin, "salary-min", 0, "base salary minimum")
	cmd.Flags().Float64Var(&payload.BaseSalaryMax, "salary-max", 0, "base salary maximum")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newPositionUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		title       string
		code        string
		description string
		salaryMin   float64
		salaryMax   float64
		active      bool
	)

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Update fields on a position",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			f := formatter(rootOpts, cmd)

			if cmd.Flags().Changed("salary-min") || cmd.Flags().Changed("salary-max") {
				if !cmd.Flags().Changed("salary-min") || !cmd.Flags().Changed("salary-max") {
					return NewExitError(ExitCommandError, "set --salary-min and --salary-max together")
				}
				if errs := hr.ValidateSalaryRange(salaryMin, salaryMax); errs != nil {
					return f.Failure("Validation failed", errs)
				}
			}

			fields := map[string]any{}
			if cmd.Flags().Changed("title") {
				fields["title"] = title
			}
			if cmd.Flags().Changed("code") {
				fields["code"] = code
			}
			if cmd.Flags().Changed("description") {
				fields["description"] = description
			}
			if cmd.Flags().Changed("salary-min") {
				fields["base_salary_min"] = salaryMin
			}
			if cmd.Flags().Changed("salary-max") {
				fields["base_salary_max"] = salaryMax
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

			resp, err := app.Client.UpdatePosition(cmd.Context(), id, fields)
			if err != nil {
				return WrapExitError(ExitCommandError, "update position failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Updated position %d", id)))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "position title")
	cmd.Flags().StringVar(&code, "code", "", "position code")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().Float64Var(&salaryMin, "salary-min", 0, "base salary minimum")
	cmd.Flags().Float64Var(&salaryMax, "salary-max", 0, "base salary maximum")
	cmd.Flags().BoolVar(&active, "active", false, "active state")

	return cmd
}

func newPositionDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a position",
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

			resp, err := app.Client.DeletePosition(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "delete position failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, map[string]any{"deleted": id}, message(fmt.Sprintf("Deleted position %d", id)))
		},
	}
	return cmd
}
