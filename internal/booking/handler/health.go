package handler

import (
	"context"
	"net/http"
	"time"

	httputil "securebook/pkg/http"
	kafka_middleware "securebook/pkg/kafka/middleware"
	"securebook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const readyTimeout = 2 * time.Second

// Pinger is satisfied by the draft repositories.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status     string                     `json:"status"`
	DraftStore string                     `json:"draftStore,omitempty"`
	Kafka      *kafka_middleware.Snapshot `json:"kafka,omitempty"`
}

type HealthHandler struct {
	store     Pinger
	storeName string
	metrics   *kafka_middleware.Metrics
	log       *logger.Logger
}

// NewHealthHandler reports on store in /ready. metrics may be nil when no
// Kafka pipeline is running.
func NewHealthHandler(store Pinger, storeName string, metrics *kafka_middleware.Metrics, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store:     store,
		storeName: storeName,
		metrics:   metrics,
		log:       log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ready", DraftStore: h.storeName + ": ok"}
	if h.metrics != nil {
		snapshot := h.metrics.Snapshot()
		resp.Kafka = &snapshot
	}

	status := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("Draft store health check failed",
			"store", h.storeName,
			"error", err,
			"path", r.URL.Path,
		)
		status = http.StatusServiceUnavailable
		resp.Status = "unavailable"
		resp.DraftStore = h.storeName + ": error"
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
