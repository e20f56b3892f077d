package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DefaultBodyLimit is the maximum number of body bytes parsed.
// Larger bodies are treated as absent.
const DefaultBodyLimit int64 = 100 << 10

// BodyKind tags the variants of a parsed request body.
type BodyKind int

const (
	BodyAbsent BodyKind = iota
	BodyObject
	BodyArray
	BodyScalar
)

func (k BodyKind) String() string {
	switch k {
	case BodyAbsent:
		return "absent"
	case BodyObject:
		return "object"
	case BodyArray:
		return "array"
	case BodyScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Body is a loosely typed request body. Numbers keep their
// literal representation so the body can be echoed verbatim.
type Body struct {
	kind  BodyKind
	value any
}

// NewBody classifies a decoded JSON value.
func NewBody(value any) Body {
	switch value.(type) {
	case map[string]any:
		return Body{kind: BodyObject, value: value}
	case []any:
		return Body{kind: BodyArray, value: value}
	default:
		return Body{kind: BodyScalar, value: value}
	}
}

func (b Body) Kind() BodyKind {
	return b.kind
}

// Value returns the decoded body. An absent body is an empty object.
func (b Body) Value() any {
	if b.kind == BodyAbsent {
		return map[string]any{}
	}

	return b.value
}

func (b Body) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Value())
}

// BodyFromContext returns the body parsed by the body middleware.
func BodyFromContext(ctx context.Context) Body {
	body, _ := ctx.Value(bodyKey).(Body)
	return body
}

// ReadBody parses the request body according to its content type.
// JSON and URL-encoded form bodies are supported; anything else,
// including bodies that fail to parse or exceed limit, is absent.
// The request body is replaced so it can still be read downstream.
func ReadBody(r *http.Request, limit int64) Body {
	if r.Body == nil || r.Body == http.NoBody {
		return Body{}
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))

	if err != nil || int64(len(data)) > limit {
		return Body{}
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return Body{}
	}

	switch {
	case isJSON(mediaType):
		return decodeJSON(data)
	case mediaType == "application/x-www-form-urlencoded":
		return decodeForm(data)
	default:
		return Body{}
	}
}

func isJSON(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func decodeJSON(data []byte) Body {
	if len(bytes.TrimSpace(data)) == 0 || !json.Valid(data) {
		return Body{}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return Body{}
	}

	return NewBody(value)
}

// formArrayLimit is the highest bracket index turned into an
// array position; larger indices stay object keys.
const formArrayLimit = 20

// decodeForm parses urlencoded pairs in order. Bracketed keys nest,
// so a[b]=1 is {"a":{"b":"1"}}, a[]=1 appends to an array and
// a[0]=x&a[1]=y become an array too. Repeated plain keys collect
// their values into an array. Malformed pairs are skipped.
func decodeForm(data []byte) Body {
	obj := make(map[string]any)

	for _, pair := range strings.Split(string(data), "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		setFormValue(obj, formKeyPath(key), value)
	}

	for key, val := range obj {
		obj[key] = compactFormArrays(val)
	}

	return Body{kind: BodyObject, value: obj}
}

// formKeyPath splits a[b][c] into [a b c]. Keys without a leading
// name or with unbalanced brackets are taken literally.
func formKeyPath(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return []string{key}
	}

	path := []string{key[:open]}
	rest := key[open:]

	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}

		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}

	if rest != "" {
		if len(path) == 1 {
			return []string{key}
		}
		path = append(path, rest)
	}

	return path
}

func setFormValue(obj map[string]any, path []string, value string) {
	key := path[0]

	if len(path) == 1 {
		switch existing := obj[key].(type) {
		case nil:
			obj[key] = value
		case string:
			obj[key] = []any{existing, value}
		case []any:
			obj[key] = append(existing, value)
		}
		return
	}

	// a[] appends
	if path[1] == "" && len(path) == 2 {
		switch existing := obj[key].(type) {
		case nil:
			obj[key] = []any{value}
		case string:
			obj[key] = []any{existing, value}
		case []any:
			obj[key] = append(existing, value)
		}
		return
	}

	child, ok := obj[key].(map[string]any)
	if !ok {
		child = make(map[string]any)
		obj[key] = child
	}

	setFormValue(child, path[1:], value)
}

// compactFormArrays turns nested objects whose keys are all small
// indices into arrays, ordered by index.
func compactFormArrays(value any) any {
	obj, ok := value.(map[string]any)
	if !ok {
		return value
	}

	for key, val := range obj {
		obj[key] = compactFormArrays(val)
	}

	indices := make([]int, 0, len(obj))
	for key := range obj {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx > formArrayLimit || strconv.Itoa(idx) != key {
			return obj
		}
		indices = append(indices, idx)
	}

	if len(indices) == 0 {
		return obj
	}

	sort.Ints(indices)

	arr := make([]any, len(indices))
	for i, idx := range indices {
		arr[i] = obj[strconv.Itoa(idx)]
	}

	return arr
}
