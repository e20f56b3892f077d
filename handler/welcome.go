package handler

import (
	"net/http"

	"github.com/lambda-feedback/simpleserver/handler/schema"
	"github.com/lambda-feedback/simpleserver/runtime"
)

const welcomeMessage = "Welcome to Simple Server!"

type welcomeResponse struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type WelcomeHandler struct {
	runtime *runtime.Runtime
	res     *Responder
}

func NewWelcomeHandler(rt *runtime.Runtime, res *Responder) *WelcomeHandler {
	return &WelcomeHandler{runtime: rt, res: res}
}

func (h *WelcomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.res.JSON(w, r, http.StatusOK, schema.Welcome, welcomeResponse{
		Message:     welcomeMessage,
		Timestamp:   h.res.Timestamp(),
		Environment: h.runtime.Environment(),
	})
}
