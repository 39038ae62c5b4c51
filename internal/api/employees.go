package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hrops/hrc/internal/hr"
)

// ListEmployees fetches a page of employees narrowed by the filters.
func (c *Client) ListEmployees(ctx context.Context, f hr.EmployeeFilters) (Response[hr.EmployeePage], error) {
	endpoint := endpointWithQuery("/hr/employees", f.Values())
	return request[hr.EmployeePage](c, ctx, http.MethodGet, endpoint, nil, nil)
}

// GetEmployee fetches one employee by id.
func (c *Client) GetEmployee(ctx context.Context, id int) (Response[hr.Employee], error) {
	return request[hr.Employee](c, ctx, http.MethodGet, fmt.Sprintf("/hr/employees/%d", id), nil, nil)
}

// CreateEmployee creates an employee with its backing user account.
func (c *Client) CreateEmployee(ctx context.Context, payload hr.CreateEmployee) (Response[hr.Employee], error) {
	return request[hr.Employee](c, ctx, http.MethodPost, "/hr/employees", payload, nil)
}

// UpdateEmployee applies a partial update. Keys are wire field names;
// only the provided fields change.
func (c *Client) UpdateEmployee(ctx context.Context, id int, fields map[string]any) (Response[hr.Employee], error) {
	return request[hr.Employee](c, ctx, http.MethodPut, fmt.Sprintf("/hr/employees/%d", id), fields, nil)
}

// DeleteEmployee removes an employee.
func (c *Client) DeleteEmployee(ctx context.Context, id int) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodDelete, fmt.Sprintf("/hr/employees/%d", id), nil, nil)
}

// EmployeeFilterOptions fetches the option sets backing the employee
// filters (departments, positions, employment types).
func (c *Client) EmployeeFilterOptions(ctx context.Context) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodGet, "/hr/employees/filter-options", nil, nil)
}

// ExportEmployees fetches the export rows for the filtered employee set.
// Rows come back as loosely-typed records; rendering to a spreadsheet is
// the caller's concern.
func (c *Client) ExportEmployees(ctx context.Context, f hr.EmployeeFilters) (Response[[]map[string]any], error) {
	endpoint := endpointWithQuery("/hr/employees/export", f.Values())
	return request[[]map[string]any](c, ctx, http.MethodGet, endpoint, nil, nil)
}
