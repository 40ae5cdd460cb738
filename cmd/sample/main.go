// Command sample runs a small users API with the documentation middleware
// mounted in front of it.
//
// Run:
//
//	go run ./cmd/sample
//	go run ./cmd/sample -provider swagger-ui
//
// Generate the OpenAPI document without starting the server:
//
//	go run ./cmd/sample -spec                 — print to stdout
//	go run ./cmd/sample -spec -o openapi.json — write to file
//
// Then explore:
//
//	GET  http://localhost:8080/swagger            — documentation page
//	GET  http://localhost:8080/swagger/json       — OpenAPI document (JSON)
//	GET  http://localhost:8080/swagger/yaml       — OpenAPI document (YAML)
//	GET  http://localhost:8080/v1/health          — health check
//	GET  http://localhost:8080/v1/users           — list users
//	POST http://localhost:8080/v1/users           — create user
//	GET  http://localhost:8080/v1/users/{id}      — get user
//	DELETE http://localhost:8080/v1/users/{id}    — delete user
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bjaus/swagger"
)

func main() {
	addrFlag := flag.String("addr", ":8080", "Listen address")
	providerFlag := flag.String("provider", "scalar", "Documentation viewer (scalar or swagger-ui)")
	specFlag := flag.Bool("spec", false, "Print the OpenAPI document to stdout and exit")
	outFlag := flag.String("o", "", "Output file for the document (requires -spec)")
	flag.Parse()

	cfg := docsConfig(swagger.Provider(*providerFlag))

	if *specFlag {
		if err := writeSpec(cfg, *outFlag); err != nil {
			slog.Error("spec generation failed", "err", err)
			os.Exit(1)
		}
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	handler := swagger.New(cfg)(newMux())
	handler = rateLimit(50, 100)(handler)
	handler = requestLogger()(handler)

	slog.Info("starting server", "addr", *addrFlag, "docs", "http://localhost"+*addrFlag+"/swagger")

	if err := serve(ctx, *addrFlag, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
	}

	slog.Info("server stopped")
}

// serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeSpec(cfg swagger.Config, outFile string) error {
	w := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile) //nolint:gosec // user-provided CLI flag
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				slog.Error("failed to close output file", "err", err)
			}
		}()
		w = f
	}
	return swagger.WriteSpec(w, cfg)
}

// docsConfig describes the users API. The middleware takes the paths
// verbatim, so this fragment is the single place the documentation is
// maintained.
func docsConfig(provider swagger.Provider) swagger.Config {
	return swagger.Config{
		Provider: provider,
		YAMLPath: "/swagger/yaml",
		Documentation: swagger.Documentation{
			Info: swagger.Info{
				Title:       "Users API",
				Description: "A small in-memory users service.",
				Version:     "1.0.0",
				Contact:     &swagger.Contact{Name: "API Support", Email: "support@example.com"},
				License:     &swagger.License{Name: "MIT"},
			},
			Tags: []swagger.Tag{
				{Name: "users", Description: "User management"},
				{Name: "ops", Description: "Operational endpoints"},
			},
			Components: swagger.Components{
				Schemas: map[string]*swagger.Schema{
					"User": {
						Type: "object",
						Properties: map[string]*swagger.Schema{
							"id":         {Type: "string"},
							"name":       {Type: "string"},
							"email":      {Type: "string", Format: "email"},
							"created_at": {Type: "string", Format: "date-time"},
						},
						Required: []string{"id", "name", "email"},
					},
					"NewUser": {
						Type: "object",
						Properties: map[string]*swagger.Schema{
							"name":  {Type: "string"},
							"email": {Type: "string", Format: "email"},
						},
						Required: []string{"name", "email"},
					},
				},
			},
			Paths: swagger.Paths{
				"/v1/health": swagger.PathItem{
					"get": {
						Summary:     "Health check",
						OperationID: "getHealth",
						Tags:        []string{"ops"},
						Responses: map[string]swagger.Response{
							"200": {Description: "Server is healthy"},
						},
					},
				},
				"/v1/users": swagger.PathItem{
					"get": {
						Summary:     "List users",
						OperationID: "listUsers",
						Tags:        []string{"users"},
						Responses: map[string]swagger.Response{
							"200": {
								Description: "All users",
								Content: map[string]swagger.MediaType{
									"application/json": {
										Schema: &swagger.Schema{
											Type:  "array",
											Items: &swagger.Schema{Ref: "#/components/schemas/User"},
										},
									},
								},
							},
						},
					},
					"post": {
						Summary:     "Create user",
						OperationID: "createUser",
						Tags:        []string{"users"},
						RequestBody: &swagger.RequestBody{
							Required: true,
							Content: map[string]swagger.MediaType{
								"application/json": {
									Schema: &swagger.Schema{Ref: "#/components/schemas/NewUser"},
								},
							},
						},
						Responses: map[string]swagger.Response{
							"201": {
								Description: "Created user",
								Content: map[string]swagger.MediaType{
									"application/json": {
										Schema: &swagger.Schema{Ref: "#/components/schemas/User"},
									},
								},
							},
							"400": {Description: "Invalid body"},
						},
					},
				},
				"/v1/users/{id}": swagger.PathItem{
					"get": {
						Summary:     "Get user by ID",
						OperationID: "getUser",
						Tags:        []string{"users"},
						Parameters: []swagger.Parameter{
							{Name: "id", In: "path", Required: true, Schema: &swagger.Schema{Type: "string"}},
						},
						Responses: map[string]swagger.Response{
							"200": {
								Description: "The user",
								Content: map[string]swagger.MediaType{
									"application/json": {
										Schema: &swagger.Schema{Ref: "#/components/schemas/User"},
									},
								},
							},
							"404": {Description: "User not found"},
						},
					},
					"delete": {
						Summary:     "Delete user",
						OperationID: "deleteUser",
						Tags:        []string{"users"},
						Parameters: []swagger.Parameter{
							{Name: "id", In: "path", Required: true, Schema: &swagger.Schema{Type: "string"}},
						},
						Responses: map[string]swagger.Response{
							"204": {Description: "Deleted"},
							"404": {Description: "User not found"},
						},
					},
				},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// HTTP handlers
// ---------------------------------------------------------------------------

func newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "time": time.Now()})
	})

	mux.HandleFunc("GET /v1/users", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, store.list())
	})

	mux.HandleFunc("POST /v1/users", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		if strings.TrimSpace(body.Name) == "" || !strings.Contains(body.Email, "@") {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and a valid email are required"})
			return
		}
		writeJSON(w, http.StatusCreated, store.create(body.Name, body.Email))
	})

	mux.HandleFunc("GET /v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		user, ok := store.get(r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		writeJSON(w, http.StatusOK, user)
	})

	mux.HandleFunc("DELETE /v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !store.delete(r.PathValue("id")) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(v)
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

func requestLogger() swagger.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}

func rateLimit(limit rate.Limit, burst int) swagger.Middleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ---------------------------------------------------------------------------
// In-memory store
// ---------------------------------------------------------------------------

var store = &userStore{
	users: map[string]*User{
		"1": {ID: "1", Name: "Alice", Email: "alice@example.com", CreatedAt: time.Now()},
		"2": {ID: "2", Name: "Bob", Email: "bob@example.com", CreatedAt: time.Now()},
	},
	nextID: 3,
}

// User is the core domain entity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type userStore struct {
	mu     sync.RWMutex
	users  map[string]*User
	nextID int
}

func (s *userStore) list() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

func (s *userStore) get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (s *userStore) create(name, email string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{
		ID:        fmt.Sprintf("%d", s.nextID),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.users[u.ID] = u
	cp := *u
	return &cp
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}
