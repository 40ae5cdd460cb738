// Package swagger is a documentation middleware for net/http. It intercepts
// two configurable paths — one serving an interactive API reference page,
// one serving an OpenAPI 3.0.3 document as JSON — and passes every other
// request through to the wrapped handler untouched. A third path serving
// the document as YAML can be enabled with Config.YAMLPath.
//
// The middleware uses the standard func(http.Handler) http.Handler signature,
// so the entire Go middleware ecosystem works natively:
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("GET /v1/users", listUsers)
//
//	docs := swagger.New(swagger.Config{
//	    Documentation: swagger.Documentation{
//	        Info: swagger.Info{Title: "Users API", Version: "2.0.0"},
//	    },
//	})
//
//	http.ListenAndServe(":8080", docs(mux))
//
// Two viewers are supported: Scalar (the default) and classic Swagger UI,
// selected with Config.Provider. Both are loaded from public CDNs; the
// middleware serves only the HTML shell and the generated document.
//
// The document is built from the caller-supplied Documentation fragment
// merged with defaults — paths are taken verbatim, no route introspection —
// and is rebuilt on every request, never cached.
package swagger
