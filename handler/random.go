package handler

import (
	"math/rand/v2"
	"net/http"

	"go.uber.org/zap"

	"github.com/lambda-feedback/simpleserver/handler/schema"
	"github.com/lambda-feedback/simpleserver/random"
	"github.com/lambda-feedback/simpleserver/util/logging"
)

const randomNumberBound = 1000

var randomColors = []string{"red", "blue", "green", "yellow", "purple", "orange"}

type randomResponse struct {
	RandomNumber int    `json:"randomNumber"`
	RandomColor  string `json:"randomColor"`
	UUID         string `json:"uuid"`
	Timestamp    string `json:"timestamp"`
}

// RandomHandler returns non-cryptographic random values. The uuid
// field is a short base-36 token, not an RFC 4122 UUID.
type RandomHandler struct {
	pool *random.Pool
	res  *Responder
	log  *zap.Logger
}

func NewRandomHandler(pool *random.Pool, res *Responder, log *zap.Logger) *RandomHandler {
	return &RandomHandler{pool: pool, res: res, log: log}
}

func (h *RandomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var resp randomResponse

	err := h.pool.Draw(r.Context(), func(rng *rand.Rand) {
		resp.RandomNumber = random.Int(rng, randomNumberBound)
		resp.RandomColor = random.Pick(rng, randomColors)
		resp.UUID = random.Token(rng)
	})
	if err != nil {
		log := logging.LoggerFromContextOr(r.Context(), h.log)
		log.Error("failed to draw random values", zap.Error(err))
		h.res.RespondFault(w, r)
		return
	}

	resp.Timestamp = h.res.Timestamp()

	h.res.JSON(w, r, http.StatusOK, schema.Random, resp)
}
