// Package httpapi exposes pkg/openlr's Decoder over HTTP, grounded on
// the teacher's pkg/http + pkg/http/router stack: httprouter for
// routing, alice for middleware chaining, rs/cors for CORS, zap for
// request logging, and golang.org/x/time/rate for a token-bucket
// limiter (SPEC_FULL.md §3.5).
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Config is httpapi's deployment-facing configuration: everything
// pkg/config.Load populates via viper, mirroring the teacher's
// http_server.Config (not present in the retrieved slice).
type Config struct {
	Port int

	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	// UseRateLimit toggles the rate-limit middleware, matching the
	// teacher's useRateLimit switch in router.Run.
	UseRateLimit bool

	// VicinityCandidates is k, the number of nearby real edges each
	// decode's vicinity lookups consider (pkg/config.VicinityCandidates).
	// A value <= 0 leaves openlr.NewDecoder's own default in place.
	VicinityCandidates int
}

// Server wraps the httprouter mux and the *http.Server serving it.
type Server struct {
	log    *zap.Logger
	api    *decodeAPI
	config Config

	httpServer *http.Server
}

// NewServer builds a Server exposing provider's graph over the /api
// routes. The caller still calls Run to actually start serving.
func NewServer(log *zap.Logger, provider GraphProvider, config Config) *Server {
	return &Server{
		log:    log,
		api:    newDecodeAPI(provider, log, config.VicinityCandidates),
		config: config,
	}
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// server fails, matching the select-on-multiple-channels shutdown
// pattern the teacher's router.Run uses (minus the websocket proxy
// legs, dropped per SPEC_FULL.md §3.8 since decode is a synchronous
// batch operation, not a streaming one).
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("starting httpapi server", zap.Int("port", s.config.Port))

	router := httprouter.New()
	router.GET("/healthz", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	s.api.routes(router)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	mwChain := []alice.Constructor{
		corsHandler.Handler,
		enforceJSON,
		recoverPanic(s.log),
		realIP,
		heartbeat("/healthz"),
		requestLogger(s.log),
	}
	if s.config.UseRateLimit {
		mwChain = append(mwChain, rateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
	}

	handler := alice.New(mwChain...).Then(router)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			s.log.Error("httpapi server stopped", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
		s.log.Info("shutting down httpapi server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
