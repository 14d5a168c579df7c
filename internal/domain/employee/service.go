package employee

import "context"

// EmployeeService defines business logic for directory operations
type EmployeeService interface {
	// ListEmployees returns a paginated, filtered, sorted page plus
	// aggregation statistics and directory metadata.
	ListEmployees(ctx context.Context, req ListRequest) (ListEmployeesResponse, error)

	// GetEmployee retrieves a single employee by store id or employeeId
	GetEmployee(ctx context.Context, id string) (Employee, error)

	// CreateEmployee validates, deduplicates and persists a new employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// UpdateEmployee merges the supplied fields over the stored record
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)

	// DeleteEmployee soft-deletes: the record stays retrievable by id
	DeleteEmployee(ctx context.Context, id string) error

	// SearchEmployees runs the capped multi-field advanced search
	SearchEmployees(ctx context.Context, req AdvancedSearchRequest) (SearchResult, error)

	// StatsSummary computes the directory-wide facet summary
	StatsSummary(ctx context.Context) (SummaryStats, error)

	// ExportCSV renders the filtered directory as CSV
	ExportCSV(ctx context.Context, req ExportRequest) ([]byte, error)
}
