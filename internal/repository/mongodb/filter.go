package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jtx-people/employees-service-go/internal/domain/employee"
)

// compileFilter translates a domain predicate into a store-evaluable bson
// document. Free-text search goes through the weighted text index, never a
// substring scan. An inverted salary or hire-date range is not rejected
// here; it simply matches nothing.
func compileFilter(f employee.Filter) bson.M {
	filter := bson.M{}

	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}

	if f.MinSalary != nil || f.MaxSalary != nil {
		salary := bson.M{}
		if f.MinSalary != nil {
			salary["$gte"] = *f.MinSalary
		}
		if f.MaxSalary != nil {
			salary["$lte"] = *f.MaxSalary
		}
		filter["salary"] = salary
	}

	if f.HireDateFrom != nil || f.HireDateTo != nil {
		hireDate := bson.M{}
		if f.HireDateFrom != nil {
			hireDate["$gte"] = *f.HireDateFrom
		}
		if f.HireDateTo != nil {
			hireDate["$lte"] = *f.HireDateTo
		}
		filter["hireDate"] = hireDate
	}

	return filter
}

// compileSort builds the sort document for a page request. A secondary _id
// key makes tie-breaks deterministic across pages; documents missing the
// sort field follow the store's null ordering (first ascending, last
// descending).
func compileSort(page employee.PageRequest) bson.D {
	dir := 1
	if page.SortOrder == employee.SortOrderDesc {
		dir = -1
	}
	sort := bson.D{{Key: page.SortBy, Value: dir}}
	if page.SortBy != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: 1})
	}
	return sort
}

// idFilter resolves a path parameter to a selector: a valid ObjectID hex
// targets _id, anything else the human-facing employeeId.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"employeeId": id}
}
