package employee

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jtx-people/employees-service-go/internal/pkg/validator"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 20
	DefaultSortBy = "lastName"
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"

	AdvancedSearchLimit = 50
)

// Filter is a compiled, request-scoped predicate over employee attributes.
// Empty string fields mean "no constraint"; nil bounds mean an open range.
type Filter struct {
	Department   string
	Status       string
	Search       string
	MinSalary    *float64
	MaxSalary    *float64
	HireDateFrom *time.Time
	HireDateTo   *time.Time
}

// Constraints counts the filter dimensions that are actually set.
func (f Filter) Constraints() int {
	n := 0
	if f.Department != "" {
		n++
	}
	if f.Status != "" {
		n++
	}
	if f.Search != "" {
		n++
	}
	if f.MinSalary != nil || f.MaxSalary != nil {
		n++
	}
	if f.HireDateFrom != nil || f.HireDateTo != nil {
		n++
	}
	return n
}

// PageRequest is a validated pagination window plus sort order.
type PageRequest struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Skip derives the zero-based offset for the requested page.
func (p PageRequest) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Pages computes the total page count for a match total.
func (p PageRequest) Pages(total int64) int {
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

// ListRequest carries the raw listing query parameters. Compile turns them
// into a store-evaluable predicate and a validated page window.
type ListRequest struct {
	Page       string
	Limit      string
	SortBy     string
	SortOrder  string
	Department string
	Status     string
	Search     string
}

func (r ListRequest) Compile() (Filter, PageRequest, error) {
	var errs validator.ValidationErrors

	page := parsePositiveInt("page", r.Page, DefaultPage, &errs)
	limit := parsePositiveInt("limit", r.Limit, DefaultLimit, &errs)

	sortBy := r.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	sortOrder := SortOrderAsc
	if r.SortOrder == SortOrderDesc {
		sortOrder = SortOrderDesc
	}

	filter := compileFilter(filterParams{
		Department: r.Department,
		Status:     r.Status,
		Search:     r.Search,
	}, string(StatusActive), &errs)

	if len(errs) > 0 {
		return Filter{}, PageRequest{}, errs
	}

	return filter, PageRequest{Page: page, Limit: limit, SortBy: sortBy, SortOrder: sortOrder}, nil
}

// AdvancedSearchRequest carries the raw multi-field search parameters.
// Unlike listing, it applies no implicit status constraint.
type AdvancedSearchRequest struct {
	Query        string
	Department   string
	MinSalary    string
	MaxSalary    string
	HireDateFrom string
	HireDateTo   string
}

func (r AdvancedSearchRequest) Compile() (Filter, error) {
	var errs validator.ValidationErrors
	filter := compileFilter(filterParams{
		Department:   r.Department,
		Status:       StatusAll,
		Search:       r.Query,
		MinSalary:    r.MinSalary,
		MaxSalary:    r.MaxSalary,
		HireDateFrom: r.HireDateFrom,
		HireDateTo:   r.HireDateTo,
	}, StatusAll, &errs)
	if len(errs) > 0 {
		return Filter{}, errs
	}
	return filter, nil
}

// ExportRequest carries the raw export parameters. With nothing set it
// selects the full directory: status defaults to "all", not "active".
type ExportRequest struct {
	Department string
	Status     string
	Search     string
}

func (r ExportRequest) Compile() (Filter, error) {
	var errs validator.ValidationErrors
	filter := compileFilter(filterParams{
		Department: r.Department,
		Status:     r.Status,
		Search:     r.Search,
	}, StatusAll, &errs)
	if len(errs) > 0 {
		return Filter{}, errs
	}
	return filter, nil
}

type filterParams struct {
	Department   string
	Status       string
	Search       string
	MinSalary    string
	MaxSalary    string
	HireDateFrom string
	HireDateTo   string
}

func compileFilter(p filterParams, defaultStatus string, errs *validator.ValidationErrors) Filter {
	var f Filter

	if p.Department != "" && p.Department != DepartmentAll {
		f.Department = p.Department
	}

	status := p.Status
	if status == "" {
		status = defaultStatus
	}
	if status != StatusAll {
		f.Status = status
	}

	if search := strings.TrimSpace(p.Search); search != "" {
		f.Search = search
	}

	f.MinSalary = parseOptionalFloat("minSalary", p.MinSalary, errs)
	f.MaxSalary = parseOptionalFloat("maxSalary", p.MaxSalary, errs)
	f.HireDateFrom = parseOptionalDate("hireDateFrom", p.HireDateFrom, errs)
	f.HireDateTo = parseOptionalDate("hireDateTo", p.HireDateTo, errs)

	return f
}

func parsePositiveInt(field, raw string, fallback int, errs *validator.ValidationErrors) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: "must be a number"})
		return 0
	}
	if n <= 0 {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: "must be greater than zero"})
		return 0
	}
	return n
}

func parseOptionalFloat(field, raw string, errs *validator.ValidationErrors) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: "must be a number"})
		return nil
	}
	return &v
}

func parseOptionalDate(field, raw string, errs *validator.ValidationErrors) *time.Time {
	if raw == "" {
		return nil
	}
	t, ok := validator.IsValidDate(raw)
	if !ok {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: "must be a date in YYYY-MM-DD format"})
		return nil
	}
	return &t
}

type CreateEmployeeRequest struct {
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone,omitempty"`
	DNI              *string           `json:"dni,omitempty"`
	Department       string            `json:"department"`
	Position         string            `json:"position"`
	HireDate         string            `json:"hireDate,omitempty"`
	Salary           *float64          `json:"salary,omitempty"`
	Status           string            `json:"status,omitempty"`
	Address          *Address          `json:"address,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	validateCoreFields(r.FirstName, r.LastName, r.Email, r.Department, r.Position, r.Salary, &errs)

	if r.HireDate != "" {
		if _, ok := validator.IsValidDate(r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hireDate", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if r.Status != "" && r.Status != string(StatusActive) && r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be active or inactive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest merges supplied fields over the stored record.
// Nil means "leave unchanged". The employee id is immutable and therefore
// not part of the request.
type UpdateEmployeeRequest struct {
	FirstName        *string           `json:"firstName,omitempty"`
	LastName         *string           `json:"lastName,omitempty"`
	Email            *string           `json:"email,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	DNI              *string           `json:"dni,omitempty"`
	Department       *string           `json:"department,omitempty"`
	Position         *string           `json:"position,omitempty"`
	HireDate         *string           `json:"hireDate,omitempty"`
	Salary           *float64          `json:"salary,omitempty"`
	Address          *Address          `json:"address,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hireDate", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateCore checks the invariants every persisted employee must satisfy.
// The mutation pipeline runs it against the merged result of an update.
func (e Employee) ValidateCore() error {
	var errs validator.ValidationErrors
	validateCoreFields(e.FirstName, e.LastName, e.Email, e.Department, e.Position, e.Salary, &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateCoreFields(firstName, lastName, email, department, position string, salary *float64, errs *validator.ValidationErrors) {
	if len(strings.TrimSpace(firstName)) < 2 {
		*errs = append(*errs, validator.ValidationError{Field: "firstName", Message: "must be at least 2 characters"})
	}
	if len(strings.TrimSpace(lastName)) < 2 {
		*errs = append(*errs, validator.ValidationError{Field: "lastName", Message: "must be at least 2 characters"})
	}
	if !validator.IsValidEmail(email) {
		*errs = append(*errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(department) {
		*errs = append(*errs, validator.ValidationError{Field: "department", Message: "is required"})
	}
	if validator.IsEmpty(position) {
		*errs = append(*errs, validator.ValidationError{Field: "position", Message: "is required"})
	}
	if salary != nil && *salary < 0 {
		*errs = append(*errs, validator.ValidationError{Field: "salary", Message: "must be a non-negative number"})
	}
}

// DepartmentStat is one per-department aggregation bucket over the
// filtered view.
type DepartmentStat struct {
	Department  string  `json:"department" bson:"_id"`
	Count       int64   `json:"count" bson:"count"`
	AvgSalary   float64 `json:"avgSalary" bson:"avgSalary"`
	TotalSalary float64 `json:"totalSalary" bson:"totalSalary"`
}

type StatusCount struct {
	Status string `json:"status" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

type SalaryStats struct {
	AvgSalary   float64 `json:"avgSalary" bson:"avgSalary"`
	MinSalary   float64 `json:"minSalary" bson:"minSalary"`
	MaxSalary   float64 `json:"maxSalary" bson:"maxSalary"`
	TotalSalary float64 `json:"totalSalary" bson:"totalSalary"`
}

// SummaryStats is the directory-wide facet summary. All facets come from a
// single aggregation pass, so they describe the same point-in-time set.
type SummaryStats struct {
	TotalEmployees int64            `json:"totalEmployees"`
	ByDepartment   []DepartmentStat `json:"byDepartment"`
	ByStatus       []StatusCount    `json:"byStatus"`
	SalaryStats    SalaryStats      `json:"salaryStats"`
	RecentHires    []Employee       `json:"recentHires"`
}

// ListResult is the repository output for one listing request: the page
// window, the pre-pagination total, and the aggregation facets computed
// over the same filter.
type ListResult struct {
	Employees   []Employee
	Total       int64
	Stats       []DepartmentStat
	ActiveCount int64
	Departments []string
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type FilterEcho struct {
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
	Search     string `json:"search,omitempty"`
}

type ListMetadata struct {
	TotalEmployees  int64    `json:"totalEmployees"`
	ActiveEmployees int64    `json:"activeEmployees"`
	Departments     []string `json:"departments"`
}

// ListEmployeesResponse is the listing envelope body past the success flag.
type ListEmployeesResponse struct {
	Data       []Employee       `json:"data"`
	Pagination Pagination       `json:"pagination"`
	Filters    FilterEcho       `json:"filters"`
	Statistics []DepartmentStat `json:"statistics"`
	Metadata   ListMetadata     `json:"metadata"`
}

type SearchResult struct {
	Employees      []Employee `json:"data"`
	Count          int        `json:"count"`
	FiltersApplied int        `json:"filtersApplied"`
}
