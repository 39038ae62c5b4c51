package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hrops/hrc/internal/hr"
)

// ListLeaveRequests fetches a page of leave requests narrowed by the
// filters.
func (c *Client) ListLeaveRequests(ctx context.Context, f hr.LeaveRequestFilters) (Response[hr.LeaveRequestPage], error) {
	endpoint := endpointWithQuery("/hr/leave-requests", f.Values())
	return request[hr.LeaveRequestPage](c, ctx, http.MethodGet, endpoint, nil, nil)
}

// GetLeaveRequest fetches one leave request by id.
func (c *Client) GetLeaveRequest(ctx context.Context, id int) (Response[hr.LeaveRequest], error) {
	return request[hr.LeaveRequest](c, ctx, http.MethodGet, fmt.Sprintf("/hr/leave-requests/%d", id), nil, nil)
}

// CreateLeaveRequest submits a new leave request.
func (c *Client) CreateLeaveRequest(ctx context.Context, payload hr.CreateLeaveRequest) (Response[hr.LeaveRequest], error) {
	return request[hr.LeaveRequest](c, ctx, http.MethodPost, "/hr/leave-requests", payload, nil)
}

// UpdateLeaveRequest applies a partial update. Keys are wire field names.
func (c *Client) UpdateLeaveRequest(ctx context.Context, id int, fields map[string]any) (Response[hr.LeaveRequest], error) {
	return request[hr.LeaveRequest](c, ctx, http.MethodPut, fmt.Sprintf("/hr/leave-requests/%d", id), fields, nil)
}

// DeleteLeaveRequest removes a leave request.
func (c *Client) DeleteLeaveRequest(ctx context.Context, id int) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodDelete, fmt.Sprintf("/hr/leave-requests/%d", id), nil, nil)
}

// ApproveLeaveRequest approves a pending request, with optional approver
// notes. Whether the transition is allowed is the server's call; an
// invalid transition comes back as a failed envelope.
func (c *Client) ApproveLeaveRequest(ctx context.Context, id int, notes string) (Response[hr.LeaveRequest], error) {
	body := map[string]any{"notes": notes}
	return request[hr.LeaveRequest](c, ctx, http.MethodPost, fmt.Sprintf("/hr/leave-requests/%d/approve", id), body, nil)
}

// RejectLeaveRequest rejects a pending request. The rejection reason is
// required by the backend.
func (c *Client) RejectLeaveRequest(ctx context.Context, id int, reason string) (Response[hr.LeaveRequest], error) {
	body := map[string]any{"rejection_reason": reason}
	return request[hr.LeaveRequest](c, ctx, http.MethodPost, fmt.Sprintf("/hr/leave-requests/%d/reject", id), body, nil)
}

// CancelLeaveRequest cancels a request.
func (c *Client) CancelLeaveRequest(ctx context.Context, id int) (Response[hr.LeaveRequest], error) {
	return request[hr.LeaveRequest](c, ctx, http.MethodPost, fmt.Sprintf("/hr/leave-requests/%d/cancel", id), nil, nil)
}

// LeaveFilterOptions fetches the option sets backing the leave request
// filters, including which leave types are hourly-based.
func (c *Client) LeaveFilterOptions(ctx context.Context) (Response[hr.LeaveFilterOptions], error) {
	return request[hr.LeaveFilterOptions](c, ctx, http.MethodGet, "/hr/leave-requests/filter-options", nil, nil)
}

// CheckLeaveOverlap asks the backend whether a draft request overlaps an
// existing one for the same employee. Overlap detection is server-side
// only; the client just relays the draft fields.
func (c *Client) CheckLeaveOverlap(ctx context.Context, fields map[string]any) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodPost, "/hr/leave-requests/check-overlap", fields, nil)
}
