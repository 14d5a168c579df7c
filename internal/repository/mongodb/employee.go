package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/jtx-people/employees-service-go/internal/domain/employee"
	"github.com/jtx-people/employees-service-go/internal/pkg/database"
)

const employeesCollection = "employees"

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func (e *employeeRepositoryImpl) coll() *mongo.Collection {
	return e.db.Collection(employeesCollection)
}

// GetByIDOrCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIDOrCode(ctx context.Context, id string) (employee.Employee, error) {
	var found employee.Employee
	err := e.coll().FindOne(ctx, idFilter(id)).Decode(&found)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, wrapStoreErr("failed to get employee", err)
	}
	return found, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	res, err := e.coll().InsertOne(ctx, emp)
	if err != nil {
		if conflict := conflictFromDuplicateKey(err); conflict != nil {
			return employee.Employee{}, conflict
		}
		return employee.Employee{}, wrapStoreErr("failed to create employee", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		emp.ID = oid
	}
	return emp, nil
}

// Update implements employee.EmployeeRepository. The caller supplies the
// fully merged entity; employeeId and createdAt are never rewritten.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, emp employee.Employee) (employee.Employee, error) {
	set := bson.M{
		"firstName":  emp.FirstName,
		"lastName":   emp.LastName,
		"email":      emp.Email,
		"phone":      emp.Phone,
		"department": emp.Department,
		"position":   emp.Position,
		"hireDate":   emp.HireDate,
		"updatedAt":  emp.UpdatedAt,
	}
	// Optional fields are merge-only: a nil here means "was never set",
	// and writing an explicit null would collide with the sparse dni index.
	if emp.DNI != nil {
		set["dni"] = *emp.DNI
	}
	if emp.Salary != nil {
		set["salary"] = *emp.Salary
	}
	if emp.Address != nil {
		set["address"] = emp.Address
	}
	if emp.EmergencyContact != nil {
		set["emergencyContact"] = emp.EmergencyContact
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated employee.Employee
	err := e.coll().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if conflict := conflictFromDuplicateKey(err); conflict != nil {
			return employee.Employee{}, conflict
		}
		return employee.Employee{}, wrapStoreErr("failed to update employee", err)
	}
	return updated, nil
}

// SoftDelete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := e.coll().UpdateOne(ctx, idFilter(id), bson.M{
		"$set": bson.M{
			"status":        employee.StatusInactive,
			"updatedAt":     at,
			"deactivatedAt": at,
		},
	})
	if err != nil {
		return wrapStoreErr("failed to soft-delete employee", err)
	}
	if res.MatchedCount == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// EmailExists implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) EmailExists(ctx context.Context, email string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"email": email}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	count, err := e.coll().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, wrapStoreErr("failed to check email uniqueness", err)
	}
	return count > 0, nil
}

// List implements employee.EmployeeRepository. The count, page window,
// statistics, and department roster are independent queries run
// concurrently; the statistics themselves come from a single aggregation
// pass and are therefore mutually consistent.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter, page employee.PageRequest) (employee.ListResult, error) {
	match := compileFilter(filter)

	var result employee.ListResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := e.coll().CountDocuments(gctx, match)
		if err != nil {
			return wrapStoreErr("failed to count employees", err)
		}
		result.Total = total
		return nil
	})

	g.Go(func() error {
		opts := options.Find().
			SetSort(compileSort(page)).
			SetSkip(page.Skip()).
			SetLimit(int64(page.Limit))
		cursor, err := e.coll().Find(gctx, match, opts)
		if err != nil {
			return wrapStoreErr("failed to list employees", err)
		}
		docs := []employee.Employee{}
		if err := cursor.All(gctx, &docs); err != nil {
			return wrapStoreErr("failed to decode employee page", err)
		}
		result.Employees = docs
		return nil
	})

	g.Go(func() error {
		stats, active, err := e.listStats(gctx, match)
		if err != nil {
			return err
		}
		result.Stats = stats
		result.ActiveCount = active
		return nil
	})

	g.Go(func() error {
		departments, err := e.distinctDepartments(gctx)
		if err != nil {
			return err
		}
		result.Departments = departments
		return nil
	})

	if err := g.Wait(); err != nil {
		return employee.ListResult{}, err
	}
	return result, nil
}

// listStats computes the per-department facet and the active count over the
// filtered view in one aggregation pass. The $match stage leads the
// pipeline so text-index predicates stay legal.
func (e *employeeRepositoryImpl) listStats(ctx context.Context, match bson.M) ([]employee.DepartmentStat, int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$facet", Value: bson.M{
			"byDepartment": bson.A{
				bson.M{"$group": bson.M{
					"_id":         "$department",
					"count":       bson.M{"$sum": 1},
					"avgSalary":   bson.M{"$avg": "$salary"},
					"totalSalary": bson.M{"$sum": "$salary"},
				}},
				bson.M{"$addFields": bson.M{"avgSalary": bson.M{"$ifNull": bson.A{"$avgSalary", 0}}}},
				bson.M{"$sort": bson.M{"count": -1, "_id": 1}},
			},
			"activeCount": bson.A{
				bson.M{"$match": bson.M{"status": employee.StatusActive}},
				bson.M{"$count": "count"},
			},
		}}},
	}

	cursor, err := e.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, wrapStoreErr("failed to aggregate listing statistics", err)
	}

	var facets []struct {
		ByDepartment []employee.DepartmentStat `bson:"byDepartment"`
		ActiveCount  []countDoc                `bson:"activeCount"`
	}
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, 0, wrapStoreErr("failed to decode listing statistics", err)
	}
	if len(facets) == 0 {
		return []employee.DepartmentStat{}, 0, nil
	}

	stats := facets[0].ByDepartment
	if stats == nil {
		stats = []employee.DepartmentStat{}
	}
	var active int64
	if len(facets[0].ActiveCount) > 0 {
		active = facets[0].ActiveCount[0].Count
	}
	return stats, active, nil
}

func (e *employeeRepositoryImpl) distinctDepartments(ctx context.Context) ([]string, error) {
	values, err := e.coll().Distinct(ctx, "department", bson.M{})
	if err != nil {
		return nil, wrapStoreErr("failed to list departments", err)
	}

	departments := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			departments = append(departments, s)
		}
	}
	sort.Strings(departments)
	return departments, nil
}

// Search implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Search(ctx context.Context, filter employee.Filter, limit int64) ([]employee.Employee, error) {
	cursor, err := e.coll().Find(ctx, compileFilter(filter), options.Find().SetLimit(limit))
	if err != nil {
		return nil, wrapStoreErr("failed to search employees", err)
	}
	docs := []employee.Employee{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapStoreErr("failed to decode search results", err)
	}
	return docs, nil
}

// Summary implements employee.EmployeeRepository. Every facet comes out of
// one aggregation pass over the whole directory, so the numbers describe a
// single point-in-time set.
func (e *employeeRepositoryImpl) Summary(ctx context.Context) (employee.SummaryStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$facet", Value: bson.M{
			"totalEmployees": bson.A{
				bson.M{"$count": "count"},
			},
			"byDepartment": bson.A{
				bson.M{"$group": bson.M{
					"_id":         "$department",
					"count":       bson.M{"$sum": 1},
					"avgSalary":   bson.M{"$avg": "$salary"},
					"totalSalary": bson.M{"$sum": "$salary"},
				}},
				bson.M{"$addFields": bson.M{"avgSalary": bson.M{"$ifNull": bson.A{"$avgSalary", 0}}}},
				bson.M{"$sort": bson.M{"count": -1, "_id": 1}},
			},
			"byStatus": bson.A{
				bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
				bson.M{"$sort": bson.M{"_id": 1}},
			},
			"salaryStats": bson.A{
				bson.M{"$group": bson.M{
					"_id":         nil,
					"avgSalary":   bson.M{"$avg": "$salary"},
					"minSalary":   bson.M{"$min": "$salary"},
					"maxSalary":   bson.M{"$max": "$salary"},
					"totalSalary": bson.M{"$sum": "$salary"},
				}},
				bson.M{"$addFields": bson.M{
					"avgSalary": bson.M{"$ifNull": bson.A{"$avgSalary", 0}},
					"minSalary": bson.M{"$ifNull": bson.A{"$minSalary", 0}},
					"maxSalary": bson.M{"$ifNull": bson.A{"$maxSalary", 0}},
				}},
			},
			"recentHires": bson.A{
				bson.M{"$sort": bson.M{"hireDate": -1}},
				bson.M{"$limit": 5},
			},
		}}},
	}

	cursor, err := e.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return employee.SummaryStats{}, wrapStoreErr("failed to aggregate summary statistics", err)
	}

	var facets []struct {
		TotalEmployees []countDoc                `bson:"totalEmployees"`
		ByDepartment   []employee.DepartmentStat `bson:"byDepartment"`
		ByStatus       []employee.StatusCount    `bson:"byStatus"`
		SalaryStats    []employee.SalaryStats    `bson:"salaryStats"`
		RecentHires    []employee.Employee       `bson:"recentHires"`
	}
	if err := cursor.All(ctx, &facets); err != nil {
		return employee.SummaryStats{}, wrapStoreErr("failed to decode summary statistics", err)
	}

	// An empty directory resolves every numeric aggregate to zero, never
	// an error.
	summary := employee.SummaryStats{
		ByDepartment: []employee.DepartmentStat{},
		ByStatus:     []employee.StatusCount{},
		RecentHires:  []employee.Employee{},
	}
	if len(facets) == 0 {
		return summary, nil
	}

	f := facets[0]
	if len(f.TotalEmployees) > 0 {
		summary.TotalEmployees = f.TotalEmployees[0].Count
	}
	if f.ByDepartment != nil {
		summary.ByDepartment = f.ByDepartment
	}
	if f.ByStatus != nil {
		summary.ByStatus = f.ByStatus
	}
	if len(f.SalaryStats) > 0 {
		summary.SalaryStats = f.SalaryStats[0]
	}
	if f.RecentHires != nil {
		summary.RecentHires = f.RecentHires
	}
	return summary, nil
}

// Export implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Export(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	opts := options.Find().SetProjection(bson.M{
		"employeeId": 1,
		"firstName":  1,
		"lastName":   1,
		"email":      1,
		"department": 1,
		"position":   1,
		"salary":     1,
		"status":     1,
		"hireDate":   1,
	})

	cursor, err := e.coll().Find(ctx, compileFilter(filter), opts)
	if err != nil {
		return nil, wrapStoreErr("failed to export employees", err)
	}
	docs := []employee.Employee{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapStoreErr("failed to decode export rows", err)
	}
	return docs, nil
}

type countDoc struct {
	Count int64 `bson:"count"`
}

// conflictFromDuplicateKey maps a unique-index rejection to the same
// sentinel the optimistic pre-checks use, so callers cannot tell which
// path caught the duplicate.
func conflictFromDuplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "idx_email_unique"):
		return employee.ErrEmailExists
	case strings.Contains(msg, "idx_dni_unique"):
		return employee.ErrDNIExists
	case strings.Contains(msg, "idx_employeeId_unique"):
		return employee.ErrEmployeeIDExists
	}
	return fmt.Errorf("unexpected duplicate key: %w", err)
}

// wrapStoreErr classifies store failures. Cancellation by the client is
// passed through untouched; timeouts and network failures become the
// retryable store-unavailable sentinel.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%s: %w: %s", op, employee.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
