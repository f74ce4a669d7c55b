package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kaamsetu/backend/api/transport"
	"github.com/kaamsetu/backend/internal/infrastructure/monitor"
	"github.com/kaamsetu/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

type healthReport struct {
	Timestamp  time.Time `json:"timestamp"`
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Journal    struct {
		Online bool `json:"online"`
		Size   int  `json:"size"`
	} `json:"journal"`
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()

	report := healthReport{
		Timestamp:  time.Now().UTC(),
		PostgreSQL: status.PostgreSQL,
		Redis:      status.Redis,
	}
	report.Journal.Online = status.Journal
	report.Journal.Size = status.JournalSize

	// The journal is local and best-effort, so only the two hard
	// dependencies decide availability.
	if !status.PostgreSQL || !status.Redis {
		h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", report))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}
