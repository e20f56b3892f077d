package handler

import (
	"net/http"

	"go.uber.org/fx"

	"github.com/lambda-feedback/simpleserver/handler/schema"
)

type notFoundResponse struct {
	Error     string `json:"error"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"`
}

// NotFoundHandler answers every request no route matched.
type NotFoundHandler struct {
	res *Responder
}

type NotFoundResult struct {
	fx.Out

	Handler http.Handler `name:"not_found"`
}

func NewNotFoundHandler(res *Responder) NotFoundResult {
	return NotFoundResult{
		Handler: &NotFoundHandler{res: res},
	}
}

func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.res.JSON(w, r, http.StatusNotFound, schema.NotFound, notFoundResponse{
		Error:     "Route not found",
		Path:      r.URL.RequestURI(),
		Method:    r.Method,
		Timestamp: h.res.Timestamp(),
	})
}
