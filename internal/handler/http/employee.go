package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jtx-people/employees-service-go/internal/domain/employee"
	"github.com/jtx-people/employees-service-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	SearchAdvanced(w http.ResponseWriter, r *http.Request)
	StatsSummary(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// ListEmployees implements EmployeeHandler - paginated, filtered, sorted
// listing with statistics and metadata
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := employee.ListRequest{
		Page:       q.Get("page"),
		Limit:      q.Get("limit"),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
		Department: q.Get("department"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
	}

	result, err := h.employeeService.ListEmployees(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		employee.ListEmployeesResponse
	}{true, result})
}

// GetEmployee implements EmployeeHandler - lookup by store id or employeeId
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.UpdateEmployee(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// DeleteEmployee implements EmployeeHandler - soft delete only
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee marked as inactive", nil)
}

// SearchAdvanced implements EmployeeHandler - multi-field search capped at
// 50 results
func (h *employeeHandlerImpl) SearchAdvanced(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := employee.AdvancedSearchRequest{
		Query:        q.Get("query"),
		Department:   q.Get("department"),
		MinSalary:    q.Get("minSalary"),
		MaxSalary:    q.Get("maxSalary"),
		HireDateFrom: q.Get("hireDateFrom"),
		HireDateTo:   q.Get("hireDateTo"),
	}

	result, err := h.employeeService.SearchEmployees(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		employee.SearchResult
	}{true, result})
}

// StatsSummary implements EmployeeHandler
func (h *employeeHandlerImpl) StatsSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.StatsSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, struct {
		Success     bool                  `json:"success"`
		Data        employee.SummaryStats `json:"data"`
		GeneratedAt string                `json:"generatedAt"`
	}{true, result, nowRFC3339()})
}

// ExportCSV implements EmployeeHandler
func (h *employeeHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := employee.ExportRequest{
		Department: q.Get("department"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
	}

	csvBytes, err := h.employeeService.ExportCSV(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=employees_export.csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csvBytes)
}
