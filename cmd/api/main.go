package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jtx-people/employees-service-go/internal/config"
	appHTTP "github.com/jtx-people/employees-service-go/internal/handler/http"
	"github.com/jtx-people/employees-service-go/internal/pkg/database"
	"github.com/jtx-people/employees-service-go/internal/repository/mongodb"
	employeeService "github.com/jtx-people/employees-service-go/internal/service/employee"
)

func main() {
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

	// Serving without the unique indexes would turn the duplicate-email
	// rule into a race, so index creation failure aborts startup.
	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
	if err := mongodb.EnsureEmployeeIndexes(indexCtx, db); err != nil {
		cancel()
		log.Fatal("Error ensuring indexes: ", err)
	}
	cancel()

	employeeRepo := mongodb.NewEmployeeRepository(db)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	healthHandler := appHTTP.NewHealthHandler(db, uuid.NewString())

	router := appHTTP.NewRouter(cfg, employeeHandler, healthHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Employees service running at http://localhost%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		fmt.Println("Store disconnect error:", err)
	}
}
