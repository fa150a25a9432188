// Package handlers provides HTTP handlers for the voucher distribution service.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// route binds one method and exact path to a handler.
type route struct {
	method  string
	path    string
	handler http.HandlerFunc
}

// routes is the declarative route table.
func (s *Server) routes() []route {
	return []route{
		{http.MethodGet, "/api/health", s.handleHealth},
		{http.MethodPost, "/api/webhook/winner", s.handleWinnerWebhook},
		{http.MethodGet, "/api/classes", s.handleListClasses},
		{http.MethodPost, "/api/classes", s.handleCreateClass},
		{http.MethodGet, "/api/vouchers", s.handleListVouchers},
		{http.MethodPost, "/api/vouchers", s.handleCreateVoucher},
		{http.MethodGet, "/api/distributions", s.handleListDistributions},
		{http.MethodGet, "/api/stats", s.handleStats},
	}
}

// Handler builds the full HTTP handler: route table dispatch wrapped in
// panic recovery and permissive CORS. Any unmatched method+path pair falls
// through to the uniform 404.
func (s *Server) Handler() http.Handler {
	table := s.routes()

	dispatch := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Bare OPTIONS (no preflight headers) bypasses the cors middleware;
		// acknowledge it for any path.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		for _, rt := range table {
			if r.Method == rt.method && r.URL.Path == rt.path {
				rt.handler(w, r)
				return
			}
		}
		s.handleNotFound(w, r)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(s.recoverPanics(dispatch))
}

// handleNotFound answers any unrouted request.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

// recoverPanics converts a handler panic into a generic 500 carrying the
// panic text, so one bad request cannot take the process down.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("Handler panic",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("%v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
