package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Civic *civic.Client
	Log   *zap.Logger
}

// NewHandler constructs a health Handler with the civic client and logger.
func NewHandler(client *civic.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Civic: client,
		Log:   logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "upstream":"reachable" }
//
// On upstream failure: 503 and
//
//	{ "status":"error", "upstream":"unreachable", "message":"Civic API unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Upstream: "reachable",
	}

	if err := h.Civic.Ping(ctx); err != nil {
		h.Log.Error("health-check: civic ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Upstream = "unreachable"
		resp.Message = "Civic API unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
