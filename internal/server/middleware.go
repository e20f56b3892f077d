package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lambda-feedback/simpleserver/util/logging"
)

const RequestIDHeader = "X-Request-ID"

type contextKey int

const (
	requestIDKey contextKey = iota
	bodyKey
)

// RequestIDFromContext returns the id assigned to the current request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID propagates the caller's request id, or assigns a new
// one, and stores a request-scoped logger in the context.
func requestID(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)

			reqLog := log.With(zap.String("request_id", id))

			ctx := context.WithValue(r.Context(), requestIDKey, id)
			ctx = logging.ContextWithLogger(ctx, reqLog)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// responseWriter records the status and size of a response.
type responseWriter struct {
	http.ResponseWriter

	status      int
	written     int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	if rw.wroteHeader {
		return
	}

	rw.status = status
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}

	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		log := logging.LoggerFromContextOr(r.Context(), zap.NewNop())

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rw.status),
			zap.Int("bytes", rw.written),
			zap.Duration("duration", time.Since(start)),
		}

		switch {
		case rw.status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case rw.status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	})
}

// recoverFault turns a panicking handler into a fault response.
// The panic is logged with its stack and reported to sentry.
func recoverFault(fault FaultResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}

				// let net/http abort the connection as usual
				if v == http.ErrAbortHandler {
					panic(v)
				}

				log := logging.LoggerFromContextOr(r.Context(), zap.NewNop())
				log.Error("handler panicked",
					zap.String("panic", fmt.Sprint(v)),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.StackSkip("stack", 2),
				)

				hub := sentry.GetHubFromContext(r.Context())
				if hub == nil {
					hub = sentry.CurrentHub().Clone()
				}
				hub.RecoverWithContext(r.Context(), v)

				if rw, ok := w.(*responseWriter); ok && rw.wroteHeader {
					// too late for a clean response
					return
				}

				w.Header().Set("Connection", "close")
				fault.RespondFault(w, r)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

const corsAllowMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

// cors allows every origin. OPTIONS requests are answered as
// preflights and never reach the router.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", "*")

		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header.Set("Access-Control-Allow-Methods", corsAllowMethods)

		header.Add("Vary", "Access-Control-Request-Headers")
		if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
			header.Set("Access-Control-Allow-Headers", strings.TrimSpace(requested))
		}

		header.Set("Content-Length", "0")
		w.WriteHeader(http.StatusNoContent)
	})
}

func parseBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := ReadBody(r, limit)

			ctx := context.WithValue(r.Context(), bodyKey, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
