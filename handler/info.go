package handler

import (
	"net/http"

	"github.com/lambda-feedback/simpleserver/handler/schema"
)

const (
	apiName    = "Simple Server API"
	apiVersion = "1.0.0"
)

// apiEndpoints is the static endpoint listing served by /api/info.
var apiEndpoints = []string{
	"GET /",
	"GET /health",
	"GET /hello/:name",
	"POST /echo",
	"GET /search?q=query&limit=10",
	"GET /random",
	"GET /api/info",
}

type infoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
	Timestamp string   `json:"timestamp"`
}

type InfoHandler struct {
	res *Responder
}

func NewInfoHandler(res *Responder) *InfoHandler {
	return &InfoHandler{res: res}
}

func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.res.JSON(w, r, http.StatusOK, schema.Info, infoResponse{
		Name:      apiName,
		Version:   apiVersion,
		Endpoints: apiEndpoints,
		Timestamp: h.res.Timestamp(),
	})
}
