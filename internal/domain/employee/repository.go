package employee

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeeRepository is the store-facing contract of the directory.
//
// Sorting on a field that is absent from some documents follows the store's
// null-ordering: missing values sort first ascending and last descending.
// List runs its count, page window, and facet queries against a live
// collection, so the total may drift relative to the window under
// concurrent mutation; callers accept that.
type EmployeeRepository interface {
	// GetByIDOrCode resolves an employee by store id (hex ObjectID) or by
	// its human-facing employeeId.
	GetByIDOrCode(ctx context.Context, id string) (Employee, error)

	Create(ctx context.Context, emp Employee) (Employee, error)

	// Update replaces the mutable fields of the identified document and
	// returns the refreshed record.
	Update(ctx context.Context, id primitive.ObjectID, emp Employee) (Employee, error)

	// SoftDelete marks the employee inactive and stamps deactivatedAt.
	SoftDelete(ctx context.Context, id string, at time.Time) error

	// EmailExists reports whether another document already holds the
	// (lower-cased) email. excludeID skips the document being updated.
	EmailExists(ctx context.Context, email string, excludeID *primitive.ObjectID) (bool, error)

	List(ctx context.Context, filter Filter, page PageRequest) (ListResult, error)

	// Search returns up to limit matches of the filter, unpaginated.
	Search(ctx context.Context, filter Filter, limit int64) ([]Employee, error)

	// Summary computes the directory-wide facet statistics in one pass.
	Summary(ctx context.Context) (SummaryStats, error)

	// Export streams the tabular projection of the filtered directory.
	Export(ctx context.Context, filter Filter) ([]Employee, error)
}
