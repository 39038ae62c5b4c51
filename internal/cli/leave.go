package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrops/hrc/internal/hr"
)

// leaveFilterFlags binds the leave request list filters to flags.
type leaveFilterFlags struct {
	EmployeeID int
	LeaveType  string
	Status     string
	StartDate  string
	EndDate    string
	Page       int
	PerPage    int
}

func (ff *leaveFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ff.EmployeeID, "employee", 0, "filter by employee id")
	cmd.Flags().StringVar(&ff.LeaveType, "type", "", "filter by leave type")
	cmd.Flags().StringVar(&ff.Status, "status", "", "filter by status")
	cmd.Flags().StringVar(&ff.StartDate, "from", "", "range start YYYY-MM-DD")
	cmd.Flags().StringVar(&ff.EndDate, "to", "", "range end YYYY-MM-DD")
	cmd.Flags().IntVar(&ff.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&ff.PerPage, "per-page", 0, "records per page")
}

func (ff *leaveFilterFlags) filters(cmd *cobra.Command) hr.LeaveRequestFilters {
	var f hr.LeaveRequestFilters
	if cmd.Flags().Changed("employee") {
		f.EmployeeID = hr.Int(ff.EmployeeID)
	}
	if cmd.Flags().Changed("type") {
		f.LeaveType = hr.String(ff.LeaveType)
	}
	if cmd.Flags().Changed("status") {
		f.Status = hr.String(ff.Status)
	}
	if cmd.Flags().Changed("from") {
		f.StartDate = hr.String(ff.StartDate)
	}
	if cmd.Flags().Changed("to") {
		f.EndDate = hr.String(ff.EndDate)
	}
	if cmd.Flags().Changed("page") {
		f.Page = hr.Int(ff.Page)
	}
	if cmd.Flags().Changed("per-page") {
		f.PerPage = hr.Int(ff.PerPage)
	}
	return f
}

// NewLeaveCommand creates the leave request command group.
func NewLeaveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Manage leave requests",
	}

	cmd.AddCommand(newLeaveListCommand(rootOpts))
	cmd.AddCommand(newLeaveShowCommand(rootOpts))
	cmd.AddCommand(newLeaveCreateCommand(rootOpts))
	cmd.AddCommand(newLeaveUpdateCommand(rootOpts))
	cmd.AddCommand(newLeaveDeleteCommand(rootOpts))
	cmd.AddCommand(newLeaveApproveCommand(rootOpts))
	cmd.AddCommand(newLeaveRejectCommand(rootOpts))
	cmd.AddCommand(newLeaveCancelCommand(rootOpts))
	cmd.AddCommand(newLeaveOptionsCommand(rootOpts))
	cmd.AddCommand(newLeaveCheckOverlapCommand(rootOpts))

	return cmd
}

func newLeaveListCommand(rootOpts *RootOptions) *cobra.Command {
	ff := &leaveFilterFlags{}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List leave requests",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.ListLeaveRequests(cmd.Context(), ff.filters(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "list leave requests failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, leaveTable(resp.Data))
		},
	}

	ff.register(cmd)
	return cmd
}

func newLeaveShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one leave request",
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

			resp, err := app.Client.GetLeaveRequest(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "get leave request failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			lr := resp.Data
			d := &Details{}
			d.add("ID", fmt.Sprintf("%d", lr.ID))
			d.add("Employee", fmt.Sprintf("%d", lr.EmployeeID))
			d.add("Type", lr.LeaveType)
			d.add("Status", lr.Status)
			if lr.DurationType == hr.DurationHours {
				d.add("From", dash(lr.StartDatetime))
				d.add("To", dash(lr.EndDatetime))
				d.add("Hours", lr.TotalHours)
			} else {
				d.add("From", lr.StartDate)
				d.add("To", lr.EndDate)
				d.add("Days", lr.TotalDays)
			}
			d.add("Reason", lr.Reason)
			if lr.RejectionReason != "" {
				d.add("Rejected because", lr.RejectionReason)
			}
			d.add("Notes", dash(lr.Notes))
			return emit(f, lr, *d)
		},
	}
	return cmd
}

func newLeaveCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var payload hr.CreateLeaveRequest

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "File a leave request",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			// The duration type follows the leave type definition, not
			// user input. Hourly leave types need datetime bounds.
			opts, err := app.Client.LeaveFilterOptions(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "fetch leave options failed", err)
			}
			if !opts.Success {
				return f.Failure(opts.Message, opts.Errors)
			}
			payload.DurationType = hr.DurationTypeFor(payload.LeaveType, opts.Data.LeaveTypes)
			if payload.DurationType == hr.DurationHours && (payload.StartDatetime == "" || payload.EndDatetime == "") {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("leave type %q is hourly: set --start-datetime and --end-datetime", payload.LeaveType))
			}

			resp, err := app.Client.CreateLeaveRequest(cmd.Context(), payload)
			if err != nil {
				return WrapExitError(ExitCommandError, "create leave request failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Created leave request %d (%s)", resp.Data.ID, resp.Data.Status)))
		},
	}

	cmd.Flags().IntVar(&payload.EmployeeID, "employee", 0, "employee id (required)")
	cmd.Flags().StringVar(&payload.LeaveType, "type", "", "leave type (required)")
	cmd.Flags().StringVar(&payload.StartDate, "from", "", "start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&payload.EndDate, "to", "", "end date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&payload.StartDatetime, "start-datetime", "", "start datetime for hourly leave")
	cmd.Flags().StringVar(&payload.EndDatetime, "end-datetime", "", "end datetime for hourly leave")
	cmd.Flags().StringVar(&payload.Reason, "reason", "", "reason (required)")
	cmd.Flags().StringVar(&payload.Notes, "notes", "", "notes")
	for _, flag := range []string{"employee", "type", "from", "to", "reason"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func newLeaveUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		leaveType string
		from      string
		to        string
		reason    string
		notes     string
	)

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Update fields on a pending leave request",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}

			fields := map[string]any{}
			if cmd.Flags().Changed("type") {
				fields["leave_type"] = leaveType
			}
			if cmd.Flags().Changed("from") {
				fields["start_date"] = from
			}
			if cmd.Flags().Changed("to") {
				fields["end_date"] = to
			}
			if cmd.Flags().Changed("reason") {
				fields["reason"] = reason
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

			resp, err := app.Client.UpdateLeaveRequest(cmd.Context(), id, fields)
			if err != nil {
				return WrapExitError(ExitCommandError, "update leave request failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Updated leave request %d", id)))
		},
	}

	cmd.Flags().StringVar(&leaveType, "type", "", "leave type")
	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD")
	cmd.Flags().StringVar(&reason, "reason", "", "reason")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")

	return cmd
}

func newLeaveDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a leave request",
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

			resp, err := app.Client.DeleteLeaveRequest(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "delete leave request failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, map[string]any{"deleted": id}, message(fmt.Sprintf("Deleted leave request %d", id)))
		},
	}
	return cmd
}

func newLeaveApproveCommand(rootOpts *RootOptions) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:           "approve <id>",
		Short:         "Approve a pending leave request",
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

			resp, err := app.Client.ApproveLeaveRequest(cmd.Context(), id, notes)
			if err != nil {
				return WrapExitError(ExitCommandError, "approve leave request failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Approved leave request %d", id)))
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "approval notes")
	return cmd
}

func newLeaveRejectCommand(rootOpts *RootOptions) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:           "reject <id>",
		Short:         "Reject a pending leave request",
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

			resp, err := app.Client.RejectLeaveRequest(cmd.Context(), id, reason)
			if err != nil {
				return WrapExitError(ExitCommandError, "reject leave request failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Rejected leave request %d", id)))
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "rejection reason (required)")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func newLeaveCancelCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cancel <id>",
		Short:         "Cancel an own pending leave request",
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

			resp, err := app.Client.CancelLeaveRequest(cmd.Context(), id)
			if err != nil {
				return WrapExitError(ExitCommandError, "cancel leave request failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(fmt.Sprintf("Cancelled leave request %d", id)))
		},
	}
	return cmd
}

func newLeaveOptionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "options",
		Short:         "Show leave types, statuses, and filterable employees",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.LeaveFilterOptions(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "fetch leave options failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}

			var b strings.Builder
			b.WriteString("Leave types:\n")
			for _, t := range resp.Data.LeaveTypes {
				unit := "days"
				if t.IsHourlyBased {
					unit = "hours"
				}
				fmt.Fprintf(&b, "  %-16s %s (%s)\n", t.Value, t.Label, unit)
			}
			b.WriteString("Statuses:\n")
			for _, s := range resp.Data.Statuses {
				fmt.Fprintf(&b, "  %-16s %s\n", s.Value, s.Label)
			}
			fmt.Fprintf(&b, "Employees: %d", len(resp.Data.Employees))
			return emit(f, resp.Data, message(b.String()))
		},
	}
	return cmd
}

func newLeaveCheckOverlapCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		employeeID int
		from       string
		to         string
		excludeID  int
	)

	cmd := &cobra.Command{
		Use:           "check-overlap",
		Short:         "Check a date range against existing leave requests",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]any{
				"employee_id": employeeID,
				"start_date":  from,
				"end_date":    to,
			}
			if cmd.Flags().Changed("exclude") {
				fields["exclude_id"] = excludeID
			}

			app, cleanup, err := openApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			f := formatter(rootOpts, cmd)

			resp, err := app.Client.CheckLeaveOverlap(cmd.Context(), fields)
			if err != nil {
				return WrapExitError(ExitCommandError, "check overlap failed", err)
			}
			if !resp.Success {
				return f.Failure(resp.Message, resp.Errors)
			}
			return emit(f, resp.Data, message(string(resp.Data)))
		},
	}

	cmd.Flags().IntVar(&employeeID, "employee", 0, "employee id (required)")
	cmd.Flags().StringVar(&from, "from", "", "range start YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "range end YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&excludeID, "exclude", 0, "leave request id to exclude")
	for _, flag := range []string{"employee", "from", "to"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}
