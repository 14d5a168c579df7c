package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jtx-people/employees-service-go/internal/handler/http/response"
)

// Pinger is the slice of the store the health check depends on.
type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	store      Pinger
	instanceID string
}

func NewHealthHandler(store Pinger, instanceID string) HealthHandler {
	return &healthHandlerImpl{store: store, instanceID: instanceID}
}

// Check implements HealthHandler - liveness plus a store ping
func (h *healthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		response.InternalServerError(w, "Database connection failed")
		return
	}

	response.JSON(w, http.StatusOK, struct {
		Status    string `json:"status"`
		Service   string `json:"service"`
		Database  string `json:"database"`
		Instance  string `json:"instance"`
		Timestamp string `json:"timestamp"`
	}{
		Status:    "OK",
		Service:   "Employees Service",
		Database:  h.store.Name(),
		Instance:  h.instanceID,
		Timestamp: nowRFC3339(),
	})
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
