package handler

import (
	"net/http"

	"github.com/lambda-feedback/simpleserver/internal/server"
)

func NewWelcomeRoute(handler *WelcomeHandler) server.RouteResult {
	return server.AsRoute(http.MethodGet, "/", handler)
}

func NewHealthRoute(handler *HealthHandler) server.RouteResult {
	return server.AsRoute(http.MethodGet, "/health", handler)
}

func NewHelloRoute(handler *HelloHandler) server.RouteResult {
	return server.AsRoute(http.MethodGet, "/hello/:name", handler)
}

func NewEchoRoute(handler *EchoHandler) server.RouteResult {
	return server.AsRoute(http.MethodPost, "/echo", handler)
}

func NewSearchRoute(handler *SearchHandler) server.RouteResult {
	return server.AsRoute(http.MethodGet, "/search", handler)
}

func NewRandomRoute(handler *RandomHandler) server.RouteResult {
	return server.AsRoute(http.MethodGet, "/random", handler)
}

func NewInfoRoute(handler *InfoHandler) server.RouteResult {
	return server.AsRoute(http.MethodGet, "/api/info", handler)
}
