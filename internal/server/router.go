package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FaultResponder writes the response for a request whose handler
// panicked. The recovered value is never part of the response.
type FaultResponder interface {
	RespondFault(w http.ResponseWriter, r *http.Request)
}

type RouterParams struct {
	fx.In

	Routes []*Route `group:"routes"`

	// NotFound handles every request no route matches.
	NotFound http.Handler `name:"not_found"`

	Fault FaultResponder

	Logger *zap.Logger
}

// Router dispatches requests to the registered routes, behind
// the global middleware chain.
type Router struct {
	handler http.Handler
}

func NewRouter(params RouterParams) *Router {
	log := params.Logger.Named("router")

	tree := httprouter.New()

	for _, route := range params.Routes {
		pattern := lowerStatic(route.Path)
		handle := routeHandle(route)

		tree.Handle(route.Method, pattern, handle)

		// GET routes answer HEAD as well, net/http drops the body
		if route.Method == http.MethodGet {
			tree.Handle(http.MethodHead, pattern, handle)
		}

		log.Debug("registered route", zap.String("route", route.Signature()))
	}

	chain := alice.New(
		requestID(log),
		accessLog,
		recoverFault(params.Fault),
		cors,
		parseBody(DefaultBodyLimit),
	)

	return &Router{
		handler: chain.Then(&dispatcher{
			tree:     tree,
			notFound: params.NotFound,
		}),
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// dispatcher matches the escaped request path against the route
// tree. Matching ignores ASCII case and a single trailing slash.
// Unmatched requests always end up in notFound, there are no
// redirects and no 405s.
type dispatcher struct {
	tree     *httprouter.Router
	notFound http.Handler
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := lowerASCII(routePath(r.URL))

	if handle, _, _ := d.tree.Lookup(r.Method, path); handle != nil {
		handle(w, r, nil)
		return
	}

	d.notFound.ServeHTTP(w, r)
}

// routeHandle wraps the route handler. Path params are taken from
// the request path as sent, so they keep their case, and are
// unescaped before they are stored in the request context.
func routeHandle(route *Route) httprouter.Handle {
	pattern := strings.Split(route.Path, "/")

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if params := pathParams(pattern, routePath(r.URL)); len(params) > 0 {
			ctx := context.WithValue(r.Context(), httprouter.ParamsKey, params)
			r = r.WithContext(ctx)
		}

		route.Handler.ServeHTTP(w, r)
	}
}

func pathParams(pattern []string, path string) httprouter.Params {
	segments := strings.Split(path, "/")

	var params httprouter.Params
	for i, part := range pattern {
		if part == "" || i >= len(segments) {
			continue
		}

		var value string
		switch part[0] {
		case ':':
			value = segments[i]
		case '*':
			value = "/" + strings.Join(segments[i:], "/")
		default:
			continue
		}

		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}

		params = append(params, httprouter.Param{Key: part[1:], Value: value})
	}

	return params
}

// routePath returns the escaped path with one trailing slash
// removed, so that %2F stays inside its segment.
func routePath(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		return "/"
	}

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	return path
}

// lowerStatic lowercases the static segments of a route pattern,
// leaving param names untouched.
func lowerStatic(pattern string) string {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if part != "" && part[0] != ':' && part[0] != '*' {
			parts[i] = lowerASCII(part)
		}
	}

	return strings.Join(parts, "/")
}

func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
