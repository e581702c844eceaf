package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erraggy/oasguard"
	"github.com/erraggy/oasguard/logger"
	"github.com/erraggy/oasguard/middleware"
	"github.com/erraggy/oasguard/requestvalidator"
	"github.com/erraggy/oasguard/validation"
)

const shutdownTimeout = 10 * time.Second

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Addr            string
	Upstream        string
	PublicURL       string
	MaxBody         string
	RequestIDHeader string
	LogLevel        string
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Addr, "addr", ":8080", "listen address")
	fs.StringVar(&flags.Upstream, "upstream", "", "forward valid requests to this base URL (default: answer them directly)")
	fs.StringVar(&flags.PublicURL, "public-url", "", "scheme and host clients use to reach the service, matched against the document servers")
	fs.StringVar(&flags.MaxBody, "max-body", "10MiB", "largest request body accepted (e.g. 512KiB, 1MB)")
	fs.StringVar(&flags.RequestIDHeader, "request-id-header", middleware.DefaultRequestIDHeader, "header carrying the request ID")
	fs.StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn, or error")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard serve [flags] <spec-file>\n\n")
		Writef(fs.Output(), "Run an HTTP server that rejects requests not described by an OpenAPI document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nEndpoints:\n")
		Writef(fs.Output(), "  /healthz   Liveness check\n")
		Writef(fs.Output(), "  /metrics   Prometheus metrics\n")
		Writef(fs.Output(), "  /          Validated requests\n")
		Writef(fs.Output(), "\nRejections:\n")
		Writef(fs.Output(), "  404  No server or path matched\n")
		Writef(fs.Output(), "  405  The path has no operation for the method\n")
		Writef(fs.Output(), "  400  The body does not match the schema\n")
		Writef(fs.Output(), "  413  The body is larger than --max-body\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard serve openapi.yaml\n")
		Writef(fs.Output(), "  oasguard serve --upstream http://localhost:9000 --public-url https://api.example.com openapi.yaml\n")
		Writef(fs.Output(), "  oasguard serve --addr :9090 --max-body 1MiB --log-level debug openapi.json\n")
	}

	return fs, flags
}

// HandleServe executes the serve command. It blocks until SIGINT or SIGTERM.
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("serve command requires exactly one spec file path")
	}

	kl, err := newKitLogger(flags.LogLevel)
	if err != nil {
		return err
	}
	log := logger.NewKitAdapter(kl)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := newServeHandler(fs.Arg(0), flags, log, reg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              flags.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("listening", "addr", flags.Addr, "spec", fs.Arg(0), "version", oasguard.Version())

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// newServeHandler builds the router served by HandleServe.
func newServeHandler(specPath string, flags *ServeFlags, log logger.Logger, reg *prometheus.Registry) (http.Handler, error) {
	maxBody, err := humanize.ParseBytes(flags.MaxBody)
	if err != nil {
		return nil, fmt.Errorf("invalid --max-body %q: %w", flags.MaxBody, err)
	}

	v, err := requestvalidator.New(
		requestvalidator.WithFilePath(specPath),
		requestvalidator.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", specPath, err)
	}

	mw, err := middleware.New(v,
		middleware.WithLogger(log),
		middleware.WithRegisterer(reg),
		middleware.WithMaxBodySize(int64(maxBody)),
		middleware.WithRequestIDHeader(flags.RequestIDHeader),
	)
	if err != nil {
		return nil, err
	}

	var next http.Handler = http.HandlerFunc(acceptHandler)
	if flags.Upstream != "" {
		upstream, err := url.Parse(flags.Upstream)
		if err != nil || upstream.Scheme == "" || upstream.Host == "" {
			return nil, fmt.Errorf("invalid --upstream %q: must be an absolute URL", flags.Upstream)
		}
		next = httputil.NewSingleHostReverseProxy(upstream)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	router.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	validated := mw.Handler(next)
	if flags.PublicURL != "" {
		public, err := url.Parse(flags.PublicURL)
		if err != nil || public.Scheme == "" || public.Host == "" {
			return nil, fmt.Errorf("invalid --public-url %q: must be an absolute URL", flags.PublicURL)
		}
		validated = withOrigin(public, validated)
	}
	router.PathPrefix("/").Handler(validated)

	return router, nil
}

// withOrigin makes requests appear to have been sent to public's scheme
// and host, so they match the document servers.
func withOrigin(public *url.URL, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Scheme = public.Scheme
		r.Host = public.Host
		next.ServeHTTP(w, r)
	})
}

// acceptHandler answers valid requests when no upstream is configured.
func acceptHandler(w http.ResponseWriter, _ *http.Request) {
	body, _ := validation.Marshal(validation.Success{})
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// newKitLogger returns a logfmt logger on stderr filtered at lvl.
func newKitLogger(lvl string) (kitlog.Logger, error) {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("invalid --log-level %q. Valid levels: debug, info, warn, error", lvl)
	}
	l := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	l = kitlog.With(l, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)
	return level.NewFilter(l, opt), nil
}
