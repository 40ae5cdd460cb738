package swagger

import (
	"encoding/json"
	"net/http"
)

// ProblemDetail is an RFC 9457 problem details response body. The middleware
// responds with one when rendering or encoding fails, which only happens
// when the configuration itself is broken, such as a channel value in
// SwaggerOptions or a cycle in ScalarConfig.
//
//nolint:errname // RFC 9457 standard name
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Error returns the detail message (or title if detail is empty).
func (p *ProblemDetail) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// StatusCode returns the HTTP status code.
func (p *ProblemDetail) StatusCode() int { return p.Status }

// writeError writes err as an RFC 9457 problem details response.
func writeError(w http.ResponseWriter, status int, err error) {
	problem := &ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: err.Error(),
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(problem)
}
