package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hrops/hrc/internal/hr"
)

// ListDepartments fetches all departments.
func (c *Client) ListDepartments(ctx context.Context) (Response[hr.DepartmentPage], error) {
	return request[hr.DepartmentPage](c, ctx, http.MethodGet, "/hr/departments", nil, nil)
}

// GetDepartment fetches one department by id.
func (c *Client) GetDepartment(ctx context.Context, id int) (Response[hr.Department], error) {
	return request[hr.Department](c, ctx, http.MethodGet, fmt.Sprintf("/hr/departments/%d", id), nil, nil)
}

// CreateDepartment creates a department. The code is uppercased before
// submit regardless of server-side enforcement, matching what the
// operator sees echoed back.
func (c *Client) CreateDepartment(ctx context.Context, payload hr.CreateDepartment) (Response[hr.Department], error) {
	payload.Code = hr.NormalizeDepartmentCode(payload.Code)
	return request[hr.Department](c, ctx, http.MethodPost, "/hr/departments", payload, nil)
}

// UpdateDepartment applies a partial update. A "code" field, when
// present as a string, is uppercased the same way CreateDepartment does.
func (c *Client) UpdateDepartment(ctx context.Context, id int, fields map[string]any) (Response[hr.Department], error) {
	if code, ok := fields["code"].(string); ok {
		fields["code"] = hr.NormalizeDepartmentCode(code)
	}
	return request[hr.Department](c, ctx, http.MethodPut, fmt.Sprintf("/hr/departments/%d", id), fields, nil)
}

// DeleteDepartment removes a department.
func (c *Client) DeleteDepartment(ctx context.Context, id int) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodDelete, fmt.Sprintf("/hr/departments/%d", id), nil, nil)
}
