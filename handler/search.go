package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/lambda-feedback/simpleserver/handler/schema"
)

const (
	defaultSearchLimit = "10"
	searchResultCount  = 3
)

// undefinedQuery is interpolated into result titles when no
// query was given.
const undefinedQuery = "undefined"

// Limit is a parsed integer that may be NaN. NaN and infinities
// encode as JSON null.
type Limit float64

func (l Limit) IsNaN() bool {
	return math.IsNaN(float64(l))
}

func (l Limit) MarshalJSON() ([]byte, error) {
	f := float64(l)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}

	return json.Marshal(f)
}

// ParseLimit parses the leading base-10 integer of s. Leading
// whitespace and a sign are accepted and trailing garbage is
// ignored, so "12abc" is 12. Input without leading digits is NaN.
func ParseLimit(s string) Limit {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == 0 {
		return Limit(math.NaN())
	}

	// out of range values come back as ±Inf
	f, _ := strconv.ParseFloat(s[:end], 64)
	if f == 0 {
		return 0
	}

	return Limit(sign * f)
}

type searchResult struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type searchResponse struct {
	Query     any            `json:"query,omitempty"`
	Limit     Limit          `json:"limit"`
	Results   []searchResult `json:"results"`
	Timestamp string         `json:"timestamp"`
}

// SearchHandler returns a fixed number of synthetic results. The
// limit is reported back but never bounds the results.
type SearchHandler struct {
	res *Responder
}

func NewSearchHandler(res *Responder) *SearchHandler {
	return &SearchHandler{res: res}
}

func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query, text := searchQuery(params["q"])

	limit := defaultSearchLimit
	if values, ok := params["limit"]; ok {
		limit = strings.Join(values, ",")
	}

	results := make([]searchResult, searchResultCount)
	for i := range results {
		results[i] = searchResult{
			ID:    i + 1,
			Title: fmt.Sprintf("Result %d for \"%s\"", i+1, text),
		}
	}

	h.res.JSON(w, r, http.StatusOK, schema.Search, searchResponse{
		Query:     query,
		Limit:     ParseLimit(limit),
		Results:   results,
		Timestamp: h.res.Timestamp(),
	})
}

// searchQuery returns the value reported as query, nil when
// absent, and the text interpolated into result titles.
func searchQuery(values []string) (any, string) {
	switch len(values) {
	case 0:
		return nil, undefinedQuery
	case 1:
		return values[0], values[0]
	default:
		return values, strings.Join(values, ",")
	}
}
