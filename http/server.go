package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/klauspost/compress/gzhttp"
	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/user/auth"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouteRegistrar is implemented by the per domain http handlers.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type Options struct {
	Env            string
	AllowedOrigins []string
	JwtKey         []byte

	// MediaDir is served under MediaPath when set.
	MediaDir  string
	MediaPath string

	// StatsInterval of zero disables endpoint stats.
	StatsInterval time.Duration
}

type HttpServer struct {
	router  *chi.Mux
	handler http.Handler
	stats   *statsLogger
	server  *http.Server
	log     *slog.Logger
}

func NewHttpServer(base *slog.Logger, opts Options, handlers ...RouteRegistrar) *HttpServer {
	router := chi.NewRouter()

	reqLogger := httplog.NewLogger("yatube", httplog.Options{
		JSON:             opts.Env != "local",
		LogLevel:         slog.LevelInfo,
		Concise:          true,
		RequestHeaders:   opts.Env == "local",
		MessageFieldName: "message",
		QuietDownRoutes:  []string{"/healthz"},
		QuietDownPeriod:  time.Minute,
		Tags: map[string]string{
			"env": opts.Env,
		},
	})

	router.Use(middleware.RequestID)
	router.Use(logger.Middleware(base))
	router.Use(httplog.RequestLogger(reqLogger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	})

	server := &HttpServer{
		router: router,
		log:    base,
	}

	if opts.StatsInterval > 0 {
		server.stats = newStatsLogger(base, opts.StatsInterval)
		router.Use(server.stats.middleware)
	}

	router.Use(auth.GetJwtAuthMiddleware(opts.JwtKey))

	router.NotFound(httpjson.WriteNotFound)
	router.MethodNotAllowed(httpjson.WriteMethodNotAllowed)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if opts.MediaDir != "" {
		server.mountMedia(opts.MediaPath, opts.MediaDir)
	}

	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	server.handler = otelhttp.NewHandler(router, "yatube",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
		}))

	return server
}

func (httpserver *HttpServer) mountMedia(urlPath string, dir string) {
	prefix := "/" + strings.Trim(urlPath, "/") + "/"
	if prefix == "//" {
		prefix = "/media/"
	}
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	httpserver.router.Get(prefix+"*", func(w http.ResponseWriter, r *http.Request) {
		// no directory listings
		if strings.HasSuffix(r.URL.Path, "/") {
			httpjson.WriteNotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.handler
}

// Start blocks until the server is shut down.
func (httpserver *HttpServer) Start(address string) error {
	httpserver.server = &http.Server{
		Addr:              address,
		Handler:           httpserver.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	httpserver.log.Info("http server listening", "address", address)
	err := httpserver.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (httpserver *HttpServer) Shutdown(ctx context.Context) error {
	if httpserver.stats != nil {
		httpserver.stats.stop()
	}
	if httpserver.server == nil {
		return nil
	}
	return httpserver.server.Shutdown(ctx)
}
