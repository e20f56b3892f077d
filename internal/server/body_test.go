package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestReadBody_Kinds(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		kind        BodyKind
	}{
		{"object", `{"a":1}`, "application/json", BodyObject},
		{"array", `[1]`, "application/json; charset=utf-8", BodyArray},
		{"string", `"a"`, "application/json", BodyScalar},
		{"number", `1`, "application/json", BodyScalar},
		{"null", `null`, "application/json", BodyScalar},
		{"vendor json", `{"a":1}`, "application/vnd.api+json", BodyObject},
		{"form", `a=1`, "application/x-www-form-urlencoded", BodyObject},
		{"empty json", ``, "application/json", BodyAbsent},
		{"whitespace json", "  \n", "application/json", BodyAbsent},
		{"invalid json", `{`, "application/json", BodyAbsent},
		{"unknown type", `{"a":1}`, "text/plain", BodyAbsent},
		{"missing type", `{"a":1}`, "", BodyAbsent},
		{"malformed type", `{"a":1}`, "application/json; =", BodyAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := ReadBody(newBodyRequest(tt.body, tt.contentType), DefaultBodyLimit)
			assert.Equal(t, tt.kind, body.Kind(), body.Kind().String())
		})
	}
}

func TestReadBody_NoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	body := ReadBody(req, DefaultBodyLimit)
	assert.Equal(t, BodyAbsent, body.Kind())
	assert.Equal(t, map[string]any{}, body.Value())
}

func TestReadBody_ExceedsLimit(t *testing.T) {
	req := newBodyRequest(`{"a":"0123456789"}`, "application/json")

	body := ReadBody(req, 8)
	assert.Equal(t, BodyAbsent, body.Kind())
}

func TestReadBody_RestoresRequestBody(t *testing.T) {
	req := newBodyRequest(`{"a":1}`, "application/json")

	ReadBody(req, DefaultBodyLimit)

	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestReadBody_Form(t *testing.T) {
	req := newBodyRequest(`a=1&b=x&b=y&c=`, "application/x-www-form-urlencoded")

	body := ReadBody(req, DefaultBodyLimit)
	assert.Equal(t, map[string]any{
		"a": "1",
		"b": []any{"x", "y"},
		"c": "",
	}, body.Value())
}

func TestReadBody_FormBrackets(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected map[string]any
	}{
		{
			"nested object",
			`a%5Bb%5D=1&a[c]=2`,
			map[string]any{"a": map[string]any{"b": "1", "c": "2"}},
		},
		{
			"deeply nested",
			`user[address][city]=Berlin`,
			map[string]any{"user": map[string]any{"address": map[string]any{"city": "Berlin"}}},
		},
		{
			"appended array",
			`tags[]=go&tags[]=http`,
			map[string]any{"tags": []any{"go", "http"}},
		},
		{
			"indexed array",
			`list[1]=y&list[0]=x`,
			map[string]any{"list": []any{"x", "y"}},
		},
		{
			"index above limit",
			`list[21]=x`,
			map[string]any{"list": map[string]any{"21": "x"}},
		},
		{
			"unbalanced bracket",
			`a[b=1&c]=2`,
			map[string]any{"a[b": "1", "c]": "2"},
		},
		{
			"plus and escapes",
			`msg=hello+world&sym=%26%3D`,
			map[string]any{"msg": "hello world", "sym": "&="},
		},
		{
			"malformed pair",
			`a=%zz&b=ok`,
			map[string]any{"b": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newBodyRequest(tt.body, "application/x-www-form-urlencoded")

			body := ReadBody(req, DefaultBodyLimit)
			assert.Equal(t, BodyObject, body.Kind())
			assert.Equal(t, tt.expected, body.Value())
		})
	}
}

func TestBody_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     Body
		expected string
	}{
		{"absent", Body{}, `{}`},
		{"object", NewBody(map[string]any{"a": json.Number("1.50")}), `{"a":1.50}`},
		{"array", NewBody([]any{"x"}), `["x"]`},
		{"scalar", NewBody(true), `true`},
		{"null", NewBody(nil), `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestBodyFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	body := BodyFromContext(req.Context())
	assert.Equal(t, BodyAbsent, body.Kind())
}
