package handler

import (
	"net/http"

	"github.com/lambda-feedback/simpleserver/handler/schema"
	"github.com/lambda-feedback/simpleserver/internal/server"
)

type echoResponse struct {
	Message      string      `json:"message"`
	ReceivedData server.Body `json:"receivedData"`
	Method       string      `json:"method"`
	Timestamp    string      `json:"timestamp"`
}

// EchoHandler returns the parsed request body untouched.
type EchoHandler struct {
	res *Responder
}

func NewEchoHandler(res *Responder) *EchoHandler {
	return &EchoHandler{res: res}
}

func (h *EchoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.res.JSON(w, r, http.StatusOK, schema.Echo, echoResponse{
		Message:      "Echo endpoint",
		ReceivedData: server.BodyFromContext(r.Context()),
		Method:       r.Method,
		Timestamp:    h.res.Timestamp(),
	})
}
