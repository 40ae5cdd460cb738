package swagger

import (
	"encoding/json"
	"net/http"
)

// Middleware is the standard middleware signature compatible with the entire
// Go middleware ecosystem.
type Middleware func(next http.Handler) http.Handler

// New returns middleware that serves the documentation page at Config.Path
// and the OpenAPI document at Config.SpecPath (and Config.YAMLPath when
// set). Every other request is delegated to next untouched: same status,
// same headers, same body.
//
// Paths are compared by exact string equality against the request's URL
// path — no prefix matching, no trailing-slash normalization. Any HTTP
// method is served.
func New(cfg ...Config) Middleware {
	c := resolve(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == c.Path:
				c.servePage(w)
			case r.URL.Path == c.SpecPath:
				c.serveSpec(w)
			case c.YAMLPath != "" && r.URL.Path == c.YAMLPath:
				c.serveSpecYAML(w)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// Handler returns a standalone handler for the documentation endpoints.
// Requests outside the configured paths receive 404.
func Handler(cfg ...Config) http.Handler {
	return New(cfg...)(http.NotFoundHandler())
}

// servePage renders the documentation page. A render failure (broken
// provider value, non-serializable options) surfaces as a problem response
// instead of a half-written page.
func (c Config) servePage(w http.ResponseWriter) {
	page, err := c.renderPage()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck,gosec // best-effort after header write
	w.Write([]byte(page))
}

// serveSpec writes the OpenAPI document as JSON. The document is marshaled
// before any byte is written so a broken configuration fails loudly with a
// problem response rather than a truncated 200.
func (c Config) serveSpec(w http.ResponseWriter) {
	body, err := json.Marshal(c.document())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort after header write
	w.Write(body)
}

// serveSpecYAML writes the OpenAPI document as YAML, under the same
// marshal-first rule as serveSpec. marshalYAML absorbs the yaml.v3 panic
// for unmarshalable values, so a broken fragment gets the same problem
// response here as on the JSON path.
func (c Config) serveSpecYAML(w http.ResponseWriter) {
	body, err := marshalYAML(c.document())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	//nolint:errcheck,gosec // best-effort after header write
	w.Write(body)
}
