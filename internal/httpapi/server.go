package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hamed0406/urlpinger/internal/domain"
	apimw "github.com/hamed0406/urlpinger/internal/httpapi/middleware"
	"github.com/hamed0406/urlpinger/internal/pinger"
	"github.com/hamed0406/urlpinger/internal/probe"
)

// Options are the batch defaults applied to every request.
type Options struct {
	Strategy    domain.Strategy
	Workers     int
	Concurrency int
	MaxTargets  int
	Observer    pinger.Observer     // may be nil
	Gatherer    prometheus.Gatherer // nil means the default registry
}

type Server struct {
	Logger  *zap.Logger
	Checker probe.Checker
	Opts    Options
}

func NewServer(l *zap.Logger, c probe.Checker, opts Options) *Server {
	if !opts.Strategy.Valid() {
		opts.Strategy = domain.DefaultStrategy
	}
	if opts.Workers < 1 {
		opts.Workers = pinger.DefaultWorkers
	}
	if opts.MaxTargets < 1 {
		opts.MaxTargets = 100
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	return &Server{Logger: l, Checker: c, Opts: opts}
}

// Router wires the routes. Ping runs are rate limited per client IP and
// need a public or admin key; metrics need an admin key.
func (s *Server) Router(keys apimw.Keys, rpm, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.With(apimw.RequireAdmin(keys)).
		Handle("/metrics", promhttp.HandlerFor(s.Opts.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(apimw.RateLimit(rpm, burst))
		r.Use(apimw.RequireAny(keys))
		r.Post("/ping", s.handlePing)
	})

	return r
}

type pingPayload struct {
	URLs    string   `json:"urls"`
	Targets []string `json:"targets"`
	Mode    string   `json:"mode"`
}

type pingResponse struct {
	Mode    string              `json:"mode"`
	Results []domain.PingResult `json:"results"`
	Elapsed time.Duration       `json:"elapsed_ns"`
	Error   string              `json:"error,omitempty"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	var p pingPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}

	var targets []domain.Target
	switch {
	case p.URLs != "":
		targets = domain.ParseTargets(p.URLs)
	case len(p.Targets) > 0:
		targets = domain.TargetsFrom(p.Targets)
	default:
		writeError(w, http.StatusBadRequest, "no targets")
		return
	}
	if len(targets) > s.Opts.MaxTargets {
		writeError(w, http.StatusBadRequest, "too many targets")
		return
	}

	strategy := s.Opts.Strategy
	if p.Mode != "" {
		parsed, err := domain.ParseStrategy(p.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = parsed
	}

	pg, err := pinger.New(targets, strategy, s.Checker,
		pinger.WithLogger(s.Logger),
		pinger.WithWorkers(s.Opts.Workers),
		pinger.WithConcurrency(s.Opts.Concurrency),
		pinger.WithObserver(s.Opts.Observer),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	results, err := pg.Ping(r.Context())
	resp := pingResponse{Mode: strategy.String(), Results: results, Elapsed: time.Since(start)}
	if err != nil {
		resp.Error = err.Error()
		s.Logger.Error("ping_request_panics", zap.Error(err))
	}

	s.Logger.Info("ping_request",
		zap.String("mode", resp.Mode),
		zap.Int("targets", len(targets)),
		zap.Duration("elapsed", resp.Elapsed),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
