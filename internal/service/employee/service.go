package employee

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/jtx-people/employees-service-go/internal/domain/employee"
	"github.com/jtx-people/employees-service-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, req employee.ListRequest) (employee.ListEmployeesResponse, error) {
	filter, page, err := req.Compile()
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	result, err := s.employeeRepo.List(ctx, filter, page)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = string(employee.StatusActive)
	}

	return employee.ListEmployeesResponse{
		Data: result.Employees,
		Pagination: employee.Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: result.Total,
			Pages: page.Pages(result.Total),
		},
		Filters: employee.FilterEcho{
			Department: req.Department,
			Status:     status,
			Search:     req.Search,
		},
		Statistics: result.Stats,
		Metadata: employee.ListMetadata{
			TotalEmployees:  result.Total,
			ActiveEmployees: result.ActiveCount,
			Departments:     result.Departments,
		},
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByIDOrCode(ctx, id)
}

// CreateEmployee implements employee.EmployeeService. The email pre-check
// is optimistic: under a genuine race the unique index rejects the insert
// and surfaces the same conflict error.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	email := normalizeEmail(req.Email)

	exists, err := s.employeeRepo.EmailExists(ctx, email, nil)
	if err != nil {
		return employee.Employee{}, err
	}
	if exists {
		return employee.Employee{}, employee.ErrEmailExists
	}

	now := time.Now().UTC()

	hireDate := now
	if req.HireDate != "" {
		if parsed, ok := validator.IsValidDate(req.HireDate); ok {
			hireDate = parsed
		}
	}

	status := employee.StatusActive
	if req.Status == string(employee.StatusInactive) {
		status = employee.StatusInactive
	}

	emp := employee.Employee{
		EmployeeID:       generateEmployeeID(),
		DNI:              req.DNI,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            email,
		Phone:            req.Phone,
		Department:       req.Department,
		Position:         req.Position,
		HireDate:         hireDate,
		Salary:           req.Salary,
		Status:           status,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return s.employeeRepo.Create(ctx, emp)
}

// UpdateEmployee implements employee.EmployeeService. Supplied fields are
// merged over the stored record, the merged result is re-validated, and a
// changed email is re-checked against all other records.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	existing, err := s.employeeRepo.GetByIDOrCode(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	merged := mergeEmployee(existing, req)
	if err := merged.ValidateCore(); err != nil {
		return employee.Employee{}, err
	}

	if merged.Email != existing.Email {
		exists, err := s.employeeRepo.EmailExists(ctx, merged.Email, &existing.ID)
		if err != nil {
			return employee.Employee{}, err
		}
		if exists {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	merged.UpdatedAt = time.Now().UTC()

	return s.employeeRepo.Update(ctx, existing.ID, merged)
}

// DeleteEmployee implements employee.EmployeeService. Soft delete only:
// the record is marked inactive, never removed.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	return s.employeeRepo.SoftDelete(ctx, id, time.Now().UTC())
}

// SearchEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SearchEmployees(ctx context.Context, req employee.AdvancedSearchRequest) (employee.SearchResult, error) {
	filter, err := req.Compile()
	if err != nil {
		return employee.SearchResult{}, err
	}

	matches, err := s.employeeRepo.Search(ctx, filter, employee.AdvancedSearchLimit)
	if err != nil {
		return employee.SearchResult{}, err
	}

	return employee.SearchResult{
		Employees:      matches,
		Count:          len(matches),
		FiltersApplied: filter.Constraints(),
	}, nil
}

// StatsSummary implements employee.EmployeeService.
func (s *EmployeeServiceImpl) StatsSummary(ctx context.Context) (employee.SummaryStats, error) {
	return s.employeeRepo.Summary(ctx)
}

func mergeEmployee(existing employee.Employee, req employee.UpdateEmployeeRequest) employee.Employee {
	merged := existing

	if req.FirstName != nil {
		merged.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		merged.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		merged.Email = normalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		merged.Phone = *req.Phone
	}
	if req.DNI != nil {
		merged.DNI = req.DNI
	}
	if req.Department != nil {
		merged.Department = *req.Department
	}
	if req.Position != nil {
		merged.Position = *req.Position
	}
	if req.HireDate != nil {
		if parsed, ok := validator.IsValidDate(*req.HireDate); ok {
			merged.HireDate = parsed
		}
	}
	if req.Salary != nil {
		merged.Salary = req.Salary
	}
	if req.Address != nil {
		merged.Address = req.Address
	}
	if req.EmergencyContact != nil {
		merged.EmergencyContact = req.EmergencyContact
	}

	return merged
}

// normalizeEmail keeps the case-insensitive uniqueness rule enforceable by
// a plain unique index: every persisted email is lower-cased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateEmployeeID builds the human-facing id from the millisecond clock
// tail plus a random suffix. Uniqueness is ultimately guaranteed by the
// unique index, not by this generator.
func generateEmployeeID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	ts = ts[len(ts)-6:]
	return fmt.Sprintf("EMP-%s%03d", ts, rand.Intn(1000))
}
