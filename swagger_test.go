package swagger_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/swagger"
)

// request issues a method request against srv and returns the response.
// The caller owns the body.
func request(t *testing.T, srv *httptest.Server, method, path string) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// readBody drains and closes the response body.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return string(body)
}

// decodeSpec parses the response body as a JSON document.
func decodeSpec(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &doc))
	return doc
}

func TestNew_serves_docs_page(t *testing.T) {
	t.Parallel()

	handler := swagger.New()(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	body := readBody(t, resp)
	assert.Contains(t, body, `id="api-reference"`)
	assert.Contains(t, body, `data-url="/swagger/json"`)
	assert.Contains(t, body, "cdn.jsdelivr.net/npm/@scalar/api-reference@latest")
	assert.Contains(t, body, "<title>API Documentation</title>")
}

func TestNew_serves_spec(t *testing.T) {
	t.Parallel()

	handler := swagger.New()(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger/json")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	doc := decodeSpec(t, resp)
	assert.Equal(t, "3.0.3", doc["openapi"])

	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "API Documentation", info["title"])
	assert.Equal(t, "1.0.0", info["version"])

	for _, key := range []string{"openapi", "info", "paths", "components", "tags"} {
		assert.Contains(t, doc, key)
	}
}

func TestNew_spec_is_idempotent(t *testing.T) {
	t.Parallel()

	handler := swagger.New(swagger.Config{
		Documentation: swagger.Documentation{
			Info: swagger.Info{Title: "Stable API"},
			Paths: swagger.Paths{
				"/things": swagger.PathItem{"get": {Summary: "List things"}},
			},
		},
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	first := decodeSpec(t, request(t, srv, http.MethodGet, "/swagger/json"))
	second := decodeSpec(t, request(t, srv, http.MethodGet, "/swagger/json"))

	assert.Equal(t, first, second)
}

func TestNew_passes_through_other_paths(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Downstream", "yes")
		w.WriteHeader(http.StatusTeapot)
		//nolint:errcheck,gosec // test handler
		w.Write([]byte("downstream body"))
	})

	srv := httptest.NewServer(swagger.New()(next))
	t.Cleanup(srv.Close)

	tests := map[string]struct {
		method string
		path   string
	}{
		"unmatched path":        {method: http.MethodGet, path: "/other"},
		"post to unmatched":     {method: http.MethodPost, path: "/api/users"},
		"near miss with suffix": {method: http.MethodGet, path: "/swagger2"},
		"trailing slash":        {method: http.MethodGet, path: "/swagger/"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := request(t, srv, tc.method, tc.path)

			assert.Equal(t, http.StatusTeapot, resp.StatusCode)
			assert.Equal(t, "yes", resp.Header.Get("X-Downstream"))
			assert.Equal(t, "downstream body", readBody(t, resp))
		})
	}
}

func TestNew_does_not_invoke_next_for_docs_paths(t *testing.T) {
	t.Parallel()

	var called atomic.Bool
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called.Store(true)
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(swagger.New()(next))
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger")
	readBody(t, resp)
	resp = request(t, srv, http.MethodGet, "/swagger/json")
	readBody(t, resp)

	assert.False(t, called.Load())
}

func TestNew_custom_paths(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		//nolint:errcheck,gosec // test handler
		w.Write([]byte("fell through"))
	})

	handler := swagger.New(swagger.Config{
		Path:     "/api-docs",
		SpecPath: "/api-docs/spec",
	})(next)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/api-docs")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `data-url="/api-docs/spec"`)

	resp = request(t, srv, http.MethodGet, "/api-docs/spec")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3.0.3", decodeSpec(t, resp)["openapi"])

	// The old defaults are no longer intercepted.
	for _, path := range []string{"/swagger", "/swagger/json"} {
		resp = request(t, srv, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "fell through", readBody(t, resp))
	}
}

func TestNew_matches_any_method(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(swagger.New()(http.NotFoundHandler()))
	t.Cleanup(srv.Close)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		resp := request(t, srv, method, "/swagger")
		assert.Equal(t, http.StatusOK, resp.StatusCode, "method %s", method)
		assert.Contains(t, readBody(t, resp), `id="api-reference"`)
	}
}

func TestNew_ignores_query_string(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(swagger.New()(http.NotFoundHandler()))
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger?tag=users&expanded=true")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `id="api-reference"`)
}

func TestNew_merges_documentation(t *testing.T) {
	t.Parallel()

	handler := swagger.New(swagger.Config{
		Documentation: swagger.Documentation{
			Info: swagger.Info{Title: "Custom API", Version: "2.0.0"},
			Tags: []swagger.Tag{{Name: "Users"}},
		},
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	doc := decodeSpec(t, request(t, srv, http.MethodGet, "/swagger/json"))

	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Custom API", info["title"])
	assert.Equal(t, "2.0.0", info["version"])

	tags, ok := doc["tags"].([]any)
	require.True(t, ok)
	assert.Len(t, tags, 1)
}

func TestNew_provider_swagger_ui(t *testing.T) {
	t.Parallel()

	handler := swagger.New(swagger.Config{
		Provider: swagger.ProviderSwaggerUI,
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	body := readBody(t, resp)
	assert.Contains(t, body, "swagger-ui-bundle.js")
	assert.Contains(t, body, "SwaggerUIBundle")
	assert.Contains(t, body, `"url":"/swagger/json"`)
	assert.NotContains(t, body, `id="api-reference"`)
}

func TestNew_unknown_provider(t *testing.T) {
	t.Parallel()

	handler := swagger.New(swagger.Config{
		Provider: "redoc",
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var problem swagger.ProblemDetail
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &problem))
	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Contains(t, problem.Detail, "redoc")
}

func TestNew_non_serializable_scalar_config(t *testing.T) {
	t.Parallel()

	cycle := map[string]any{}
	cycle["self"] = cycle

	handler := swagger.New(swagger.Config{
		ScalarConfig: cycle,
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	readBody(t, resp)

	// The spec endpoint is unaffected by a broken page configuration.
	resp = request(t, srv, http.MethodGet, "/swagger/json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3.0.3", decodeSpec(t, resp)["openapi"])
}

func TestNew_non_serializable_swagger_options(t *testing.T) {
	t.Parallel()

	handler := swagger.New(swagger.Config{
		Provider:       swagger.ProviderSwaggerUI,
		SwaggerOptions: map[string]any{"onComplete": make(chan int)},
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var problem swagger.ProblemDetail
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &problem))
	assert.Contains(t, problem.Detail, "chan")
}

func TestNew_spec_encoding_failure(t *testing.T) {
	t.Parallel()

	handler := swagger.New(swagger.Config{
		Documentation: swagger.Documentation{
			Paths: swagger.Paths{
				"/broken": swagger.PathItem{
					"get": {
						Responses: map[string]swagger.Response{
							"200": {
								Description: "ok",
								Content: map[string]swagger.MediaType{
									"application/json": {Example: make(chan int)},
								},
							},
						},
					},
				},
			},
		},
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger/json")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var problem swagger.ProblemDetail
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &problem))
	assert.Contains(t, problem.Detail, "chan")
}

func TestNew_yaml_path(t *testing.T) {
	t.Parallel()

	handler := swagger.New(swagger.Config{
		YAMLPath: "/swagger/yaml",
		Documentation: swagger.Documentation{
			Info: swagger.Info{Title: "YAML API"},
		},
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger/yaml")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(readBody(t, resp)), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "YAML API", info["title"])
}

func TestNew_yaml_path_disabled_by_default(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(swagger.New()(http.NotFoundHandler()))
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger/yaml")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	readBody(t, resp)
}

func TestNew_yaml_encoding_failure(t *testing.T) {
	t.Parallel()

	handler := swagger.New(swagger.Config{
		YAMLPath: "/swagger/yaml",
		Documentation: swagger.Documentation{
			Paths: swagger.Paths{
				"/broken": swagger.PathItem{
					"get": {
						Responses: map[string]swagger.Response{
							"200": {
								Description: "ok",
								Content: map[string]swagger.MediaType{
									"application/json": {Example: make(chan int)},
								},
							},
						},
					},
				},
			},
		},
	})(http.NotFoundHandler())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	// yaml.v3 panics on channel values instead of returning an error. The
	// client must still get a complete problem response, not a dropped
	// connection.
	resp := request(t, srv, http.MethodGet, "/swagger/yaml")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var problem swagger.ProblemDetail
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &problem))
	assert.Contains(t, problem.Detail, "chan")
}

func TestNew_instances_are_independent(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	inner := swagger.New(swagger.Config{
		Path: "/inner",
		Documentation: swagger.Documentation{
			Info: swagger.Info{Title: "Inner API"},
		},
	})
	outer := swagger.New(swagger.Config{
		Path: "/outer",
		Documentation: swagger.Documentation{
			Info: swagger.Info{Title: "Outer API"},
		},
	})

	srv := httptest.NewServer(outer(inner(next)))
	t.Cleanup(srv.Close)

	doc := decodeSpec(t, request(t, srv, http.MethodGet, "/outer/json"))
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Outer API", info["title"])

	doc = decodeSpec(t, request(t, srv, http.MethodGet, "/inner/json"))
	info, ok = doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Inner API", info["title"])

	resp := request(t, srv, http.MethodGet, "/neither")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func TestHandler_standalone(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(swagger.Handler())
	t.Cleanup(srv.Close)

	resp := request(t, srv, http.MethodGet, "/swagger")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	readBody(t, resp)

	resp = request(t, srv, http.MethodGet, "/anything-else")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	readBody(t, resp)
}
