package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHttpServer_ServeAndShutdown(t *testing.T) {
	route := AsRoute(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})).Route

	server := NewHttpServer(HttpServerParams{
		Context: context.Background(),
		Config:  HttpConfig{Host: "127.0.0.1", Port: 0},
		Router:  newTestRouter(t, nil, route),
		Logger:  zaptest.NewLogger(t),
	})

	listener, err := server.Listen(context.Background())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- server.Serve(listener)
	}()

	res, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(ctx))
	assert.NoError(t, <-done)
}

func TestHttpServer_ListenFails(t *testing.T) {
	server := NewHttpServer(HttpServerParams{
		Context: context.Background(),
		Config:  HttpConfig{Host: "256.0.0.1", Port: 0},
		Router:  newTestRouter(t, nil),
		Logger:  zaptest.NewLogger(t),
	})

	_, err := server.Listen(context.Background())
	assert.Error(t, err)
}
