package employee

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID               primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	EmployeeID       string             `json:"employeeId" bson:"employeeId"`
	DNI              *string            `json:"dni,omitempty" bson:"dni,omitempty"`
	FirstName        string             `json:"firstName" bson:"firstName"`
	LastName         string             `json:"lastName" bson:"lastName"`
	Email            string             `json:"email" bson:"email"`
	Phone            string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Department       string             `json:"department" bson:"department"`
	Position         string             `json:"position" bson:"position"`
	HireDate         time.Time          `json:"hireDate" bson:"hireDate"`
	Salary           *float64           `json:"salary,omitempty" bson:"salary,omitempty"`
	Status           Status             `json:"status" bson:"status"`
	Address          *Address           `json:"address,omitempty" bson:"address,omitempty"`
	EmergencyContact *EmergencyContact  `json:"emergencyContact,omitempty" bson:"emergencyContact,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
	DeactivatedAt    *time.Time         `json:"deactivatedAt,omitempty" bson:"deactivatedAt,omitempty"`
}

type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty" bson:"relationship,omitempty"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// StatusAll lifts the status constraint when given as a query parameter.
// It is never a stored status.
const StatusAll = "all"

// DepartmentAll lifts the department constraint when given as a query parameter.
const DepartmentAll = "all"
