package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtx-people/employees-service-go/internal/pkg/validator"
)

func TestListRequestCompile_Defaults(t *testing.T) {
	filter, page, err := ListRequest{}.Compile()
	require.NoError(t, err)

	assert.Equal(t, DefaultPage, page.Page)
	assert.Equal(t, DefaultLimit, page.Limit)
	assert.Equal(t, DefaultSortBy, page.SortBy)
	assert.Equal(t, SortOrderAsc, page.SortOrder)

	// An unfiltered listing still constrains status to active
	assert.Equal(t, string(StatusActive), filter.Status)
	assert.Empty(t, filter.Department)
	assert.Empty(t, filter.Search)
}

func TestListRequestCompile_StatusAll(t *testing.T) {
	filter, _, err := ListRequest{Status: StatusAll}.Compile()
	require.NoError(t, err)
	assert.Empty(t, filter.Status, "status=all must lift the constraint")
}

func TestListRequestCompile_DepartmentAll(t *testing.T) {
	filter, _, err := ListRequest{Department: DepartmentAll}.Compile()
	require.NoError(t, err)
	assert.Empty(t, filter.Department)

	filter, _, err = ListRequest{Department: "Ventas"}.Compile()
	require.NoError(t, err)
	assert.Equal(t, "Ventas", filter.Department)
}

func TestListRequestCompile_SearchWhitespaceTreatedAsAbsent(t *testing.T) {
	filter, _, err := ListRequest{Search: "   "}.Compile()
	require.NoError(t, err)
	assert.Empty(t, filter.Search)

	filter, _, err = ListRequest{Search: "  ana  "}.Compile()
	require.NoError(t, err)
	assert.Equal(t, "ana", filter.Search)
}

func TestListRequestCompile_RejectsBadPagination(t *testing.T) {
	cases := []struct {
		name string
		req  ListRequest
	}{
		{"non-numeric page", ListRequest{Page: "abc"}},
		{"non-numeric limit", ListRequest{Limit: "ten"}},
		{"zero page", ListRequest{Page: "0"}},
		{"negative limit", ListRequest{Limit: "-5"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := c.req.Compile()
			require.Error(t, err)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
		})
	}
}

func TestListRequestCompile_SortOrder(t *testing.T) {
	_, page, err := ListRequest{SortOrder: "desc"}.Compile()
	require.NoError(t, err)
	assert.Equal(t, SortOrderDesc, page.SortOrder)

	// Anything other than desc sorts ascending
	_, page, err = ListRequest{SortOrder: "sideways"}.Compile()
	require.NoError(t, err)
	assert.Equal(t, SortOrderAsc, page.SortOrder)
}

func TestPageRequestSkipAndPages(t *testing.T) {
	page := PageRequest{Page: 3, Limit: 20}
	assert.Equal(t, int64(40), page.Skip())

	assert.Equal(t, 0, page.Pages(0))
	assert.Equal(t, 1, page.Pages(1))
	assert.Equal(t, 1, page.Pages(20))
	assert.Equal(t, 2, page.Pages(21))
	assert.Equal(t, 7, page.Pages(130))
}

func TestAdvancedSearchCompile(t *testing.T) {
	filter, err := AdvancedSearchRequest{
		Query:        "developer",
		Department:   "Tecnología",
		MinSalary:    "30000",
		MaxSalary:    "60000",
		HireDateFrom: "2021-01-01",
		HireDateTo:   "2023-12-31",
	}.Compile()
	require.NoError(t, err)

	assert.Equal(t, "developer", filter.Search)
	assert.Equal(t, "Tecnología", filter.Department)
	assert.Empty(t, filter.Status, "advanced search applies no status constraint")
	require.NotNil(t, filter.MinSalary)
	assert.Equal(t, 30000.0, *filter.MinSalary)
	require.NotNil(t, filter.MaxSalary)
	assert.Equal(t, 60000.0, *filter.MaxSalary)
	require.NotNil(t, filter.HireDateFrom)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), *filter.HireDateFrom)
	require.NotNil(t, filter.HireDateTo)

	assert.Equal(t, 4, filter.Constraints())
}

func TestAdvancedSearchCompile_RejectsInvalidBounds(t *testing.T) {
	_, err := AdvancedSearchRequest{MinSalary: "a lot"}.Compile()
	require.Error(t, err)

	_, err = AdvancedSearchRequest{HireDateFrom: "01/02/2023"}.Compile()
	require.Error(t, err)

	// Inverted ranges are the caller's problem, not a validation error
	_, err = AdvancedSearchRequest{MinSalary: "60000", MaxSalary: "30000"}.Compile()
	require.NoError(t, err)
}

func TestExportRequestCompile_DefaultsToFullDirectory(t *testing.T) {
	filter, err := ExportRequest{}.Compile()
	require.NoError(t, err)
	assert.Empty(t, filter.Status, "export without params covers the full directory")

	filter, err = ExportRequest{Status: string(StatusActive), Department: "Ventas"}.Compile()
	require.NoError(t, err)
	assert.Equal(t, string(StatusActive), filter.Status)
	assert.Equal(t, "Ventas", filter.Department)
}

func TestCreateEmployeeRequestValidate(t *testing.T) {
	valid := CreateEmployeeRequest{
		FirstName:  "Ana",
		LastName:   "García",
		Email:      "ana@x.com",
		Department: "Ventas",
		Position:   "Rep",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*CreateEmployeeRequest)
		field  string
	}{
		{"short first name", func(r *CreateEmployeeRequest) { r.FirstName = "A" }, "firstName"},
		{"whitespace last name", func(r *CreateEmployeeRequest) { r.LastName = "  " }, "lastName"},
		{"bad email", func(r *CreateEmployeeRequest) { r.Email = "not-an-email" }, "email"},
		{"missing department", func(r *CreateEmployeeRequest) { r.Department = "" }, "department"},
		{"missing position", func(r *CreateEmployeeRequest) { r.Position = " " }, "position"},
		{"negative salary", func(r *CreateEmployeeRequest) { s := -1.0; r.Salary = &s }, "salary"},
		{"bad hire date", func(r *CreateEmployeeRequest) { r.HireDate = "yesterday" }, "hireDate"},
		{"bad status", func(r *CreateEmployeeRequest) { r.Status = "retired" }, "status"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := valid
			c.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), c.field)
		})
	}

	t.Run("zero salary is allowed", func(t *testing.T) {
		req := valid
		s := 0.0
		req.Salary = &s
		require.NoError(t, req.Validate())
	})
}

func TestEmployeeValidateCore(t *testing.T) {
	emp := Employee{
		FirstName:  "Ana",
		LastName:   "García",
		Email:      "ana@x.com",
		Department: "Ventas",
		Position:   "Rep",
	}
	require.NoError(t, emp.ValidateCore())

	emp.Email = "broken"
	require.Error(t, emp.ValidateCore())
}
