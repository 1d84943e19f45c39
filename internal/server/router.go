package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/qrkit/pkg/httpserver"
	"github.com/dmitrymomot/qrkit/pkg/logger"
)

// Mountable is implemented by API modules.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures NewRouter. Every field is optional.
type RouterOptions struct {
	Log *slog.Logger
	// API is mounted under /v1.
	API Mountable
	// Modules are mounted under /v1/<key>.
	Modules map[string]Mountable
	// Checks run on /readyz.
	Checks       []httpserver.Check
	CheckTimeout time.Duration
	// FilesDir is served under FilesPrefix when set.
	FilesDir    string
	FilesPrefix string
}

// NewRouter returns the application router.
func NewRouter(opts RouterOptions) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = 3 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, opts.CheckTimeout, opts.Checks...))

	if opts.API != nil {
		r.Mount("/v1", opts.API.Handle())
	}
	for name, m := range opts.Modules {
		r.Mount("/v1/"+strings.Trim(name, "/"), m.Handle())
	}

	if opts.FilesDir != "" {
		prefix := "/" + strings.Trim(opts.FilesPrefix, "/")
		if prefix == "/" {
			prefix = "/files"
		}
		files := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(opts.FilesDir)))
		r.Handle(prefix+"/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			files.ServeHTTP(w, r)
		}))
	}

	return r
}
