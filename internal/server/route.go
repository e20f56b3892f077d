package server

import (
	"net/http"

	"go.uber.org/fx"
)

// Route binds a handler to a method and a path pattern. Patterns
// use httprouter syntax, e.g. /hello/:name.
type Route struct {
	Method  string
	Path    string
	Handler http.Handler
}

type RouteResult struct {
	fx.Out

	Route *Route `group:"routes"`
}

func AsRoute(
	method string,
	path string,
	handler http.Handler,
) RouteResult {
	return RouteResult{
		Route: &Route{
			Method:  method,
			Path:    path,
			Handler: handler,
		},
	}
}

// Signature returns the route in "METHOD /path" form.
func (r *Route) Signature() string {
	return r.Method + " " + r.Path
}
