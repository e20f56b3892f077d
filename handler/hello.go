package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/lambda-feedback/simpleserver/handler/schema"
)

type helloResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type HelloHandler struct {
	res *Responder
}

func NewHelloHandler(res *Responder) *HelloHandler {
	return &HelloHandler{res: res}
}

func (h *HelloHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := httprouter.ParamsFromContext(r.Context()).ByName("name")

	h.res.JSON(w, r, http.StatusOK, schema.Hello, helloResponse{
		Message:   "Hello, " + name + "!",
		Timestamp: h.res.Timestamp(),
	})
}
