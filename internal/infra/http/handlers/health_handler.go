package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	serviceVersion = "1.0.0"
	pingTimeout    = 2 * time.Second
	stateUnhealthy = "unhealthy"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type ConnectionState interface {
	IsClosed() bool
}

type HealthHandler struct {
	DB        Pinger
	RabbitMQ  ConnectionState
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler accepts a nil rabbitMQ when notifications run in-process.
func NewHealthHandler(db Pinger, rabbitMQ ConnectionState) *HealthHandler {
	return &HealthHandler{DB: db, RabbitMQ: rabbitMQ, StartTime: time.Now()}
}

// Handle serves GET /health. Any unhealthy dependency turns the answer into
// 503 so load balancers stop routing here.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{
		"database": h.databaseState(r.Context()),
		"rabbitmq": h.brokerState(),
	}

	resp := HealthResponse{
		Status:       "healthy",
		Version:      serviceVersion,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}
	status := http.StatusOK

	for _, state := range deps {
		if state == stateUnhealthy {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, resp)
}

func (h *HealthHandler) databaseState(ctx context.Context) string {
	if h.DB == nil {
		return "not configured"
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		slog.Warn("health check: database ping failed", "error", err)
		return stateUnhealthy
	}
	return "healthy"
}

func (h *HealthHandler) brokerState() string {
	switch {
	case h.RabbitMQ == nil:
		return "not configured"
	case h.RabbitMQ.IsClosed():
		slog.Warn("health check: rabbitmq connection closed")
		return stateUnhealthy
	default:
		return "healthy"
	}
}
