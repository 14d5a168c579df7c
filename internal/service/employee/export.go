package employee

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jtx-people/employees-service-go/internal/domain/employee"
)

// csvHeader fixes the export column order.
var csvHeader = []string{
	"employeeId", "firstName", "lastName", "email",
	"department", "position", "salary", "status", "hireDate",
}

// ExportCSV implements employee.EmployeeService. With no filter parameters
// it exports the full directory, inactive records included.
func (s *EmployeeServiceImpl) ExportCSV(ctx context.Context, req employee.ExportRequest) ([]byte, error) {
	filter, err := req.Compile()
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.Export(ctx, filter)
	if err != nil {
		return nil, err
	}

	return renderCSV(employees)
}

// renderCSV writes the tabular projection. encoding/csv quotes fields
// containing the delimiter; missing optional fields render as empty
// strings.
func renderCSV(employees []employee.Employee) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, emp := range employees {
		salary := ""
		if emp.Salary != nil {
			salary = strconv.FormatFloat(*emp.Salary, 'f', -1, 64)
		}
		hireDate := ""
		if !emp.HireDate.IsZero() {
			hireDate = emp.HireDate.Format("2006-01-02")
		}

		row := []string{
			emp.EmployeeID,
			emp.FirstName,
			emp.LastName,
			emp.Email,
			emp.Department,
			emp.Position,
			salary,
			string(emp.Status),
			hireDate,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
