package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit"
	"golang.org/x/sync/errgroup"

	"github.com/jtx-people/employees-service-go/internal/config"
	"github.com/jtx-people/employees-service-go/internal/domain/employee"
	"github.com/jtx-people/employees-service-go/internal/fixtures"
	"github.com/jtx-people/employees-service-go/internal/pkg/database"
	"github.com/jtx-people/employees-service-go/internal/repository/mongodb"
)

const batchSize = 50

func main() {
	count := flag.Int("count", 130, "Number of employees to generate")
	clear := flag.Bool("clear", true, "Drop existing employees before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewMongoDB(cfg.Store.URI, database.Options{
		Database:       cfg.Store.Database,
		MaxPoolSize:    cfg.Store.MaxPoolSize,
		ConnectTimeout: cfg.Store.ConnectTimeout,
		SocketTimeout:  cfg.Store.SocketTimeout,
	})
	if err != nil {
		log.Fatal("Error connecting to store: ", err)
	}

	ctx := context.Background()
	coll := db.Collection("employees")

	if *clear {
		if err := coll.Drop(ctx); err != nil {
			log.Fatal("Error clearing collection: ", err)
		}
		fmt.Println("Collection cleared")
	}

	if err := mongodb.EnsureEmployeeIndexes(ctx, db); err != nil {
		log.Fatal("Error ensuring indexes: ", err)
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	for offset := 0; offset < *count; offset += batchSize {
		first, last := offset, min(offset+batchSize, *count)
		g.Go(func() error {
			batch := make([]interface{}, 0, last-first)
			for i := first; i < last; i++ {
				batch = append(batch, generateEmployee(i+1))
			}
			_, err := coll.InsertMany(gctx, batch)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal("Error inserting employees: ", err)
	}

	fmt.Printf("%d employees inserted in %s\n", *count, time.Since(start).Round(time.Millisecond))

	summary, err := mongodb.NewEmployeeRepository(db).Summary(ctx)
	if err != nil {
		log.Fatal("Error reading summary: ", err)
	}
	fmt.Println("Distribution by department:")
	for _, stat := range summary.ByDepartment {
		fmt.Printf("  %s: %d\n", stat.Department, stat.Count)
	}

	if err := db.Close(ctx); err != nil {
		log.Fatal("Error disconnecting: ", err)
	}
}

func generateEmployee(index int) employee.Employee {
	firstName := pick(fixtures.FirstNames)
	lastName := pick(fixtures.LastNames)
	dni := fmt.Sprintf("%d", 10000000+rand.Intn(90000000))
	salary := float64(30000 + rand.Intn(50000))
	hireDate := time.Date(2020+rand.Intn(4), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC)

	status := employee.StatusActive
	if rand.Intn(10) == 0 {
		status = employee.StatusInactive
	}

	now := time.Now().UTC()

	return employee.Employee{
		EmployeeID: fmt.Sprintf("EMP-%04d", 1000+index),
		DNI:        &dni,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      fmt.Sprintf("%s.%s%d@empresa.com", strings.ToLower(firstName), strings.ToLower(lastName), index),
		Phone:      gofakeit.Phone(),
		Department: pick(fixtures.Departments),
		Position:   pick(fixtures.Positions),
		HireDate:   hireDate,
		Salary:     &salary,
		Status:     status,
		Address: &employee.Address{
			Street:  gofakeit.Street(),
			City:    pick(fixtures.Cities),
			State:   "España",
			ZipCode: fmt.Sprintf("%d", 28000+rand.Intn(1000)),
		},
		EmergencyContact: &employee.EmergencyContact{
			Name:         fmt.Sprintf("Contacto %s", firstName),
			Phone:        gofakeit.Phone(),
			Relationship: pick(fixtures.Relationships),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func pick(pool []string) string {
	return pool[rand.Intn(len(pool))]
}
