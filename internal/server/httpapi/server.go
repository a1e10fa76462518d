// Package httpapi exposes registration, login and batch uploads over HTTP.
//
//	POST /api/register   {email,password,confirmPassword} -> 201 {token,identity}
//	POST /api/login      {email,password}                 -> 200 {token,identity}
//	POST /api/uploads    multipart "files" + Bearer token -> 200 {result,rejected,message}
//	GET  /healthz
package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/models"
	"github.com/dmitrijs2005/reportdrop/internal/upload"
	"github.com/dmitrijs2005/reportdrop/internal/validator"
)

// IdentityService is the credential directory as seen by the handlers.
type IdentityService interface {
	Validate(ctx context.Context, email, password string) (*models.Identity, error)
	Register(ctx context.Context, email, password, confirmPassword string) (*models.Identity, error)
}

type Options struct {
	Identities        IdentityService
	Transport         upload.Transport
	Policy            validator.Policy
	SecretKey         []byte
	TokenValidity     time.Duration
	MaxRequestBytes   int64
	AuthRatePerMinute int
	CORSOrigins       []string
	Logger            logging.Logger
}

type Server struct {
	opts   Options
	logger logging.Logger
	clock  *stampClock
}

func New(opts Options) *Server {
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = 32 << 20
	}
	return &Server{
		opts:   opts,
		logger: opts.Logger.With("component", "http"),
		clock:  &stampClock{now: time.Now},
	}
}

// Handler builds the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.corsMiddleware())

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if s.opts.AuthRatePerMinute > 0 {
				r.Use(rateLimitMiddleware(s.opts.AuthRatePerMinute))
			}
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		r.Post("/uploads", s.handleUploads)
	})

	return r
}

func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}

	origins := s.opts.CORSOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		opts.AllowedOrigins = []string{"*"}
	} else {
		opts.AllowedOrigins = origins
	}

	return cors.Handler(opts)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug(r.Context(), "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chimw.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

// stampClock hands out strictly increasing millisecond times so remote
// names stay unique across concurrent batches.
type stampClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func (c *stampClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}
