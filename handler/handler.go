package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/simpleserver/config"
	"github.com/lambda-feedback/simpleserver/handler/schema"
	"github.com/lambda-feedback/simpleserver/runtime"
	"github.com/lambda-feedback/simpleserver/util/logging"
)

// TimestampLayout renders timestamps as ISO-8601 UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp formats t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type ResponderParams struct {
	fx.In

	Config  config.Config
	Runtime *runtime.Runtime
	Schemas *schema.Schemas
	Log     *zap.Logger
}

// Responder writes JSON responses and optionally checks them
// against the response schema of their route.
type Responder struct {
	runtime  *runtime.Runtime
	schemas  *schema.Schemas
	validate bool
	log      *zap.Logger
}

func NewResponder(params ResponderParams) *Responder {
	return &Responder{
		runtime:  params.Runtime,
		schemas:  params.Schemas,
		validate: params.Config.ValidateResponses,
		log:      params.Log,
	}
}

// Timestamp returns the current time in TimestampLayout.
func (res *Responder) Timestamp() string {
	return FormatTimestamp(res.runtime.Now())
}

// JSON encodes data and writes it with the given status code.
func (res *Responder) JSON(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	name schema.Name,
	data any,
) {
	log := logging.LoggerFromContextOr(r.Context(), res.log).With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	body, err := json.Marshal(data)
	if err != nil {
		log.Error("failed to encode response", zap.Error(err))
		res.RespondFault(w, r)
		return
	}

	if res.validate {
		res.check(log, name, body)
	}

	res.write(w, log, status, body)
}

// RespondFault writes the generic fault response.
func (res *Responder) RespondFault(w http.ResponseWriter, r *http.Request) {
	log := logging.LoggerFromContextOr(r.Context(), res.log)

	body, err := json.Marshal(faultResponse{
		Error:     faultMessage,
		Timestamp: res.Timestamp(),
	})
	if err != nil {
		log.Error("failed to encode fault response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	res.write(w, log, http.StatusInternalServerError, body)
}

func (res *Responder) write(w http.ResponseWriter, log *zap.Logger, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}
}

// check validates body against the named schema. Mismatches are
// logged only, the response is sent unchanged.
func (res *Responder) check(log *zap.Logger, name schema.Name, body []byte) {
	log = log.With(zap.String("schema", string(name)))

	result, err := res.schemas.Validate(name, body)
	if err != nil {
		log.Warn("response validation failed", zap.Error(err))
		return
	}

	if result.Valid() {
		return
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}

	log.Warn("invalid response", zap.Strings("errors", errs))
}
