package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jtx-people/employees-service-go/internal/pkg/database"
)

// employeeIndexes is the full index set the directory depends on. The
// unique indexes are the authoritative enforcement of the duplicate-email
// and duplicate-DNI rules; the application-level pre-checks only exist to
// produce friendlier errors.
var employeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}},
		Options: options.Index().SetName("idx_employeeId_unique").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_email_unique").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "dni", Value: 1}},
		Options: options.Index().SetName("idx_dni_unique").SetUnique(true).SetSparse(true),
	},
	{
		Keys:    bson.D{{Key: "department", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_department_status"),
	},
	{
		Keys:    bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}},
		Options: options.Index().SetName("idx_name_sort"),
	},
	{
		Keys:    bson.D{{Key: "hireDate", Value: -1}},
		Options: options.Index().SetName("idx_hire_date"),
	},
	{
		Keys:    bson.D{{Key: "salary", Value: -1}},
		Options: options.Index().SetName("idx_salary"),
	},
	{
		Keys: bson.D{
			{Key: "firstName", Value: "text"},
			{Key: "lastName", Value: "text"},
			{Key: "email", Value: "text"},
			{Key: "department", Value: "text"},
			{Key: "position", Value: "text"},
		},
		Options: options.Index().SetName("idx_text_search").SetWeights(bson.M{
			"firstName":  3,
			"lastName":   3,
			"email":      2,
			"department": 1,
			"position":   1,
		}),
	},
}

// EnsureEmployeeIndexes creates the directory's index set. It is idempotent
// and runs on every startup; a failure (for example pre-existing data that
// conflicts with a unique index) must abort startup, because serving
// without the unique indexes turns the duplicate-email rule into a race.
func EnsureEmployeeIndexes(ctx context.Context, db *database.DB) error {
	coll := db.Collection(employeesCollection)
	if _, err := coll.Indexes().CreateMany(ctx, employeeIndexes); err != nil {
		return fmt.Errorf("failed to ensure employee indexes: %w", err)
	}
	return nil
}
