package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"searxproxy/model"
	"searxproxy/util"
	jsonutil "searxproxy/util/json"
	"searxproxy/util/metrics"
	"searxproxy/util/pool"
)

const (
	enginesPath = "/engines"
	healthPath  = "/healthz"
)

// emptyEngineList is returned whenever the engine list cannot be fetched.
var emptyEngineList = []byte("[]")

// UpstreamOptions configures an UpstreamService.
type UpstreamOptions struct {
	PrimaryURL     string
	Fallbacks      []string
	EnginesTimeout time.Duration
	HealthTimeout  time.Duration
	// FallbackProbes is how many fallbacks the health check may try.
	FallbackProbes int
}

// UpstreamService serves the engine list and the health report. Neither
// operation ever returns an error to its caller.
type UpstreamService struct {
	client *util.UpstreamClient
	opts   UpstreamOptions
}

// NewUpstreamService builds the service.
func NewUpstreamService(client *util.UpstreamClient, opts UpstreamOptions) *UpstreamService {
	if opts.EnginesTimeout <= 0 {
		opts.EnginesTimeout = 5 * time.Second
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = 3 * time.Second
	}
	opts.Fallbacks = append([]string(nil), opts.Fallbacks...)
	return &UpstreamService{client: client, opts: opts}
}

// PrimaryURL is the configured primary instance.
func (s *UpstreamService) PrimaryURL() string {
	return s.opts.PrimaryURL
}

// Engines returns the primary's engine list verbatim, or an empty JSON array on
// any failure.
func (s *UpstreamService) Engines(ctx context.Context) []byte {
	endpoint := s.opts.PrimaryURL + enginesPath
	start := time.Now()
	ok := false
	defer func() {
		metrics.RecordUpstreamAttempt("engines", "primary", ok, time.Since(start).Seconds())
	}()

	resp, err := s.client.Get(ctx, endpoint, nil, s.opts.EnginesTimeout)
	if err != nil {
		log.Warn().Err(err).Str("url", endpoint).Msg("failed to fetch engine list")
		return emptyEngineList
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("url", endpoint).Msg("engine list returned non-200")
		return emptyEngineList
	}
	if !jsonutil.Valid(resp.Body) {
		log.Warn().Str("url", endpoint).Msg("engine list is not valid JSON")
		return emptyEngineList
	}

	ok = true
	return resp.Body
}

// Health probes the primary and the first fallbacks. The two probe sets run
// concurrently; fallbacks within a set are probed one after another.
func (s *UpstreamService) Health(ctx context.Context) model.HealthResponse {
	tasks := []pool.Task[bool]{
		func(ctx context.Context) bool {
			return s.probe(ctx, s.opts.PrimaryURL+healthPath, "primary")
		},
		s.probeFallbacks,
	}
	results := pool.ExecuteBatch(ctx, tasks, len(tasks))

	report := model.NewHealthResponse(results[0], results[1], s.opts.PrimaryURL)
	log.Debug().
		Str("status", report.Status).
		Bool("local_instance", report.LocalInstance).
		Bool("public_instances_available", report.PublicInstancesAvailable).
		Msg("health check finished")
	return report
}

func (s *UpstreamService) probeFallbacks(ctx context.Context) bool {
	limit := s.opts.FallbackProbes
	if limit > len(s.opts.Fallbacks) {
		limit = len(s.opts.Fallbacks)
	}
	for _, base := range s.opts.Fallbacks[:limit] {
		if s.probe(ctx, base+"/", "fallback") {
			return true
		}
	}
	return false
}

func (s *UpstreamService) probe(ctx context.Context, endpoint, kind string) (ok bool) {
	start := time.Now()
	defer func() {
		metrics.RecordUpstreamAttempt("health", kind, ok, time.Since(start).Seconds())
	}()

	resp, err := s.client.Get(ctx, endpoint, nil, s.opts.HealthTimeout)
	if err != nil {
		log.Debug().Err(err).Str("url", endpoint).Msg("health probe failed")
		return false
	}
	return resp.StatusCode == http.StatusOK
}
