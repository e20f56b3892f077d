package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// --- Mock fault responder ---
type MockFaultResponder struct {
	mock.Mock
}

func (m *MockFaultResponder) RespondFault(w http.ResponseWriter, r *http.Request) {
	m.Called(w, r)
	w.WriteHeader(http.StatusInternalServerError)
}

func newTestRouter(t *testing.T, fault FaultResponder, routes ...*Route) *Router {
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "not found: "+r.Method+" "+r.URL.RequestURI())
	})

	if fault == nil {
		fault = new(MockFaultResponder)
	}

	return NewRouter(RouterParams{
		Routes:   routes,
		NotFound: notFound,
		Fault:    fault,
		Logger:   zaptest.NewLogger(t),
	})
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_PathParams(t *testing.T) {
	route := AsRoute(http.MethodGet, "/hello/:name", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, httprouter.ParamsFromContext(r.Context()).ByName("name"))
	})).Route

	router := newTestRouter(t, nil, route)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/hello/gopher", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gopher", w.Body.String())
}

func TestRouter_HeadForGet(t *testing.T) {
	route := AsRoute(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).Route

	router := newTestRouter(t, nil, route)

	w := serve(router, httptest.NewRequest(http.MethodHead, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_NotFound(t *testing.T) {
	route := AsRoute(http.MethodPost, "/echo", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).Route

	router := newTestRouter(t, nil, route)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/echo"},
		{http.MethodPost, "/echo//"},
		{http.MethodPost, "/ech"},
		{http.MethodGet, "/missing?q=1"},
		{http.MethodGet, "/Missing/?q=1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := serve(router, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "not found: "+tt.method+" "+tt.target, w.Body.String())
		})
	}
}

func TestRouter_IgnoresCaseAndTrailingSlash(t *testing.T) {
	echo := AsRoute(http.MethodPost, "/echo", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "echo")
	})).Route
	hello := AsRoute(http.MethodGet, "/hello/:name", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, httprouter.ParamsFromContext(r.Context()).ByName("name"))
	})).Route

	router := newTestRouter(t, nil, echo, hello)

	tests := []struct {
		method   string
		target   string
		expected string
	}{
		{http.MethodPost, "/echo/", "echo"},
		{http.MethodPost, "/ECHO", "echo"},
		{http.MethodPost, "/Echo/?x=1", "echo"},
		{http.MethodGet, "/HELLO/Gopher", "Gopher"},
		{http.MethodGet, "/hello/Gopher/", "Gopher"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := serve(router, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, w.Body.String())
		})
	}
}

func TestRouter_EscapedParams(t *testing.T) {
	route := AsRoute(http.MethodGet, "/hello/:name", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, httprouter.ParamsFromContext(r.Context()).ByName("name"))
	})).Route

	router := newTestRouter(t, nil, route)

	tests := []struct {
		target   string
		expected string
	}{
		{"/hello/a%2Fb", "a/b"},
		{"/hello/a%2fb/", "a/b"},
		{"/hello/John%20Doe", "John Doe"},
		{"/hello/100%25", "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := serve(router, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, w.Body.String())
		})
	}

	w := serve(router, httptest.NewRequest(http.MethodGet, "/hello/a/b", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	fault := new(MockFaultResponder)
	fault.On("RespondFault", mock.Anything, mock.Anything).Return()

	route := AsRoute(http.MethodGet, "/panic", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})).Route

	router := newTestRouter(t, fault, route)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
	assert.NotContains(t, w.Body.String(), "boom")

	fault.AssertNumberOfCalls(t, "RespondFault", 1)
}

func TestRouter_LogsPanics(t *testing.T) {
	fault := new(MockFaultResponder)
	fault.On("RespondFault", mock.Anything, mock.Anything).Return()

	core, logs := observer.New(zapcore.DebugLevel)

	route := AsRoute(http.MethodGet, "/panic", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})).Route

	router := NewRouter(RouterParams{
		Routes:   []*Route{route},
		NotFound: http.NotFoundHandler(),
		Fault:    fault,
		Logger:   zap.New(core),
	})

	serve(router, httptest.NewRequest(http.MethodGet, "/panic", nil))

	entries := logs.FilterMessage("handler panicked").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "boom", fields["panic"])
	assert.Equal(t, "/panic", fields["path"])
	assert.NotEmpty(t, fields["stack"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRouter_PanicAfterWrite(t *testing.T) {
	fault := new(MockFaultResponder)

	route := AsRoute(http.MethodGet, "/partial", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("boom")
	})).Route

	router := newTestRouter(t, fault, route)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/partial", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)

	fault.AssertNotCalled(t, "RespondFault", mock.Anything, mock.Anything)
}

func TestRouter_CORS(t *testing.T) {
	route := AsRoute(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).Route

	router := newTestRouter(t, nil, route)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")

	w := serve(router, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-custom")

	w := serve(router, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,HEAD,PUT,PATCH,POST,DELETE", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "content-type,x-custom", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, w.Body.String())
}

func TestRouter_RequestID(t *testing.T) {
	var seen string

	route := AsRoute(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})).Route

	router := newTestRouter(t, nil, route)

	t.Run("generated", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Equal(t, id, seen)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")

		w := serve(router, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seen)
	})
}

func TestRouter_ParsesBody(t *testing.T) {
	var body Body

	route := AsRoute(http.MethodPost, "/echo", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body = BodyFromContext(r.Context())
	})).Route

	router := newTestRouter(t, nil, route)

	req := newBodyRequest(`{"a":1}`, "application/json")
	req.URL.Path = "/echo"

	serve(router, req)
	assert.Equal(t, BodyObject, body.Kind())
}

func TestRoute_Signature(t *testing.T) {
	route := AsRoute(http.MethodGet, "/hello/:name", nil).Route
	assert.Equal(t, "GET /hello/:name", route.Signature())
}
