package handler

import (
	"net/http"

	"github.com/lambda-feedback/simpleserver/handler/schema"
	"github.com/lambda-feedback/simpleserver/runtime"
)

type healthResponse struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`
	Timestamp string  `json:"timestamp"`
}

type HealthHandler struct {
	runtime *runtime.Runtime
	res     *Responder
}

func NewHealthHandler(rt *runtime.Runtime, res *Responder) *HealthHandler {
	return &HealthHandler{runtime: rt, res: res}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.res.JSON(w, r, http.StatusOK, schema.Health, healthResponse{
		Status:    "healthy",
		Uptime:    h.runtime.Uptime().Seconds(),
		Timestamp: h.res.Timestamp(),
	})
}
