package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtx-people/employees-service-go/internal/config"
	"github.com/jtx-people/employees-service-go/internal/domain/employee"
	"github.com/jtx-people/employees-service-go/internal/pkg/validator"
)

// stubEmployeeService lets each test pin the outcome of one operation.
type stubEmployeeService struct {
	listFn    func(employee.ListRequest) (employee.ListEmployeesResponse, error)
	getFn     func(string) (employee.Employee, error)
	createFn  func(employee.CreateEmployeeRequest) (employee.Employee, error)
	updateFn  func(string, employee.UpdateEmployeeRequest) (employee.Employee, error)
	deleteFn  func(string) error
	searchFn  func(employee.AdvancedSearchRequest) (employee.SearchResult, error)
	summaryFn func() (employee.SummaryStats, error)
	exportFn  func(employee.ExportRequest) ([]byte, error)
}

func (s *stubEmployeeService) ListEmployees(_ context.Context, req employee.ListRequest) (employee.ListEmployeesResponse, error) {
	return s.listFn(req)
}

func (s *stubEmployeeService) GetEmployee(_ context.Context, id string) (employee.Employee, error) {
	return s.getFn(id)
}

func (s *stubEmployeeService) CreateEmployee(_ context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	return s.createFn(req)
}

func (s *stubEmployeeService) UpdateEmployee(_ context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return s.updateFn(id, req)
}

func (s *stubEmployeeService) DeleteEmployee(_ context.Context, id string) error {
	return s.deleteFn(id)
}

func (s *stubEmployeeService) SearchEmployees(_ context.Context, req employee.AdvancedSearchRequest) (employee.SearchResult, error) {
	return s.searchFn(req)
}

func (s *stubEmployeeService) StatsSummary(_ context.Context) (employee.SummaryStats, error) {
	return s.summaryFn()
}

func (s *stubEmployeeService) ExportCSV(_ context.Context, req employee.ExportRequest) ([]byte, error) {
	return s.exportFn(req)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }
func (p stubPinger) Name() string               { return "jtx-people-test" }

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test", LogLevel: "error", FrontendURL: "http://localhost:8080"},
		RateLimit: config.RateLimitConfig{Window: time.Minute, Max: 1000},
	}
}

func testServer(t *testing.T, svc employee.EmployeeService, pingErr error) *httptest.Server {
	t.Helper()
	router := NewRouter(testConfig(), NewEmployeeHandler(svc), NewHealthHandler(stubPinger{err: pingErr}, "test-instance"))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestListEmployees_Envelope(t *testing.T) {
	svc := &stubEmployeeService{
		listFn: func(req employee.ListRequest) (employee.ListEmployeesResponse, error) {
			assert.Equal(t, "Ventas", req.Department)
			assert.Equal(t, "2", req.Page)
			return employee.ListEmployeesResponse{
				Data:       []employee.Employee{},
				Pagination: employee.Pagination{Page: 2, Limit: 20, Total: 45, Pages: 3},
				Filters:    employee.FilterEcho{Department: "Ventas", Status: "active"},
				Statistics: []employee.DepartmentStat{{Department: "Ventas", Count: 45}},
				Metadata:   employee.ListMetadata{TotalEmployees: 45, ActiveEmployees: 45, Departments: []string{"Ventas"}},
			}, nil
		},
	}
	srv := testServer(t, svc, nil)

	resp, err := http.Get(srv.URL + "/employees?department=Ventas&page=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(45), pagination["total"])
	assert.Equal(t, float64(3), pagination["pages"])
	assert.Contains(t, body, "statistics")
	assert.Contains(t, body, "metadata")
	assert.Contains(t, body, "filters")
}

func TestListEmployees_ValidationErrorIs400(t *testing.T) {
	svc := &stubEmployeeService{
		listFn: func(employee.ListRequest) (employee.ListEmployeesResponse, error) {
			return employee.ListEmployeesResponse{}, validator.ValidationErrors{
				{Field: "page", Message: "must be a number"},
			}
		},
	}
	srv := testServer(t, svc, nil)

	resp, err := http.Get(srv.URL + "/employees?page=abc")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	details := body["details"].(map[string]interface{})
	assert.Contains(t, details, "page")
}

func TestCreateEmployee_Created(t *testing.T) {
	svc := &stubEmployeeService{
		createFn: func(req employee.CreateEmployeeRequest) (employee.Employee, error) {
			return employee.Employee{
				EmployeeID: "EMP-123456789",
				FirstName:  req.FirstName,
				Email:      req.Email,
				Status:     employee.StatusActive,
			}, nil
		},
	}
	srv := testServer(t, svc, nil)

	payload := `{"firstName":"Ana","lastName":"García","email":"ana@x.com","department":"Ventas","position":"Rep","salary":30000}`
	resp, err := http.Post(srv.URL+"/employees", "application/json", bytes.NewBufferString(payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Regexp(t, `^EMP-\d+$`, data["employeeId"])
}

func TestCreateEmployee_Conflict409(t *testing.T) {
	svc := &stubEmployeeService{
		createFn: func(employee.CreateEmployeeRequest) (employee.Employee, error) {
			return employee.Employee{}, employee.ErrEmailExists
		},
	}
	srv := testServer(t, svc, nil)

	resp, err := http.Post(srv.URL+"/employees", "application/json",
		bytes.NewBufferString(`{"firstName":"Ana"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestCreateEmployee_MalformedBody400(t *testing.T) {
	svc := &stubEmployeeService{
		createFn: func(employee.CreateEmployeeRequest) (employee.Employee, error) {
			t.Fatal("service must not be called for malformed JSON")
			return employee.Employee{}, nil
		},
	}
	srv := testServer(t, svc, nil)

	resp, err := http.Post(srv.URL+"/employees", "application/json", bytes.NewBufferString(`{broken`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEmployee_NotFound404(t *testing.T) {
	svc := &stubEmployeeService{
		getFn: func(string) (employee.Employee, error) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		},
	}
	srv := testServer(t, svc, nil)

	resp, err := http.Get(srv.URL + "/employees/EMP-0000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteEmployee_SoftDeleteMessage(t *testing.T) {
	var deletedID string
	svc := &stubEmployeeService{
		deleteFn: func(id string) error {
			deletedID = id
			return nil
		},
	}
	srv := testServer(t, svc, nil)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/employees/EMP-1001", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "EMP-1001", deletedID)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
}

func TestSearchAdvanced_RoutesBeforeIDParam(t *testing.T) {
	svc := &stubEmployeeService{
		searchFn: func(req employee.AdvancedSearchRequest) (employee.SearchResult, error) {
			assert.Equal(t, "dev", req.Query)
			return employee.SearchResult{Employees: []employee.Employee{}, Count: 0, FiltersApplied: 1}, nil
		},
		getFn: func(string) (employee.Employee, error) {
			t.Fatal("advanced search must not resolve as an id lookup")
			return employee.Employee{}, nil
		},
	}
	srv := testServer(t, svc, nil)

	resp, err := http.Get(srv.URL + "/employees/search/advanced?query=dev")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["filtersApplied"])
	assert.Contains(t, body, "count")
}

func TestStatsSummary_Envelope(t *testing.T) {
	svc := &stubEmployeeService{
		summaryFn: func() (employee.SummaryStats, error) {
			return employee.SummaryStats{TotalEmployees: 7}, nil
		},
	}
	srv := testServer(t, svc, nil)

	resp, err := http.Get(srv.URL + "/employees/stats/summary")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["totalEmployees"])
	assert.NotEmpty(t, body["generatedAt"])
}

func TestExportCSV_Headers(t *testing.T) {
	svc := &stubEmployeeService{
		exportFn: func(req employee.ExportRequest) ([]byte, error) {
			return []byte("employeeId,firstName\n"), nil
		},
	}
	srv := testServer(t, svc, nil)

	resp, err := http.Get(srv.URL + "/employees/export/csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
}

func TestHealth(t *testing.T) {
	srv := testServer(t, &stubEmployeeService{}, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "jtx-people-test", body["database"])
	assert.Equal(t, "test-instance", body["instance"])
}

func TestHealth_StorePingFailure(t *testing.T) {
	srv := testServer(t, &stubEmployeeService{}, assert.AnError)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
