package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"searxproxy/model"
	"searxproxy/util"
	jsonutil "searxproxy/util/json"
	"searxproxy/util/metrics"
)

const searchPath = "/search"

// SearchOptions configures a SearchService.
type SearchOptions struct {
	PrimaryURL    string
	Fallbacks     []string
	Timeout       time.Duration
	ForceEngine   bool
	FilterResults bool
	Engines       EngineMap
}

// SearchService forwards searches to the primary instance and then to each
// fallback in order until one answers.
type SearchService struct {
	client  *util.UpstreamClient
	targets []model.Target
	opts    SearchOptions
}

// AttemptResult is the outcome of one target. Err is nil on success.
type AttemptResult struct {
	Target   model.Target
	Body     []byte
	Envelope map[string]interface{}
	Err      error
}

// OK reports whether the attempt produced a usable envelope.
func (r AttemptResult) OK() bool {
	return r.Err == nil
}

// SearchOutcome is a successful search, ready to send to the client.
type SearchOutcome struct {
	Target   model.Target
	Body     []byte
	Attempts int
}

// NewSearchService builds the service. The target list is fixed at construction.
func NewSearchService(client *util.UpstreamClient, opts SearchOptions) *SearchService {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Engines.table == nil {
		opts.Engines = NewEngineMap(DefaultCategoryEngines, DefaultEngine)
	}
	fallbacks := append([]string(nil), opts.Fallbacks...)
	opts.Fallbacks = fallbacks

	return &SearchService{
		client:  client,
		targets: model.Targets(opts.PrimaryURL, fallbacks),
		opts:    opts,
	}
}

// Targets returns a copy of the ordered target list.
func (s *SearchService) Targets() []model.Target {
	return append([]model.Target(nil), s.targets...)
}

// Search runs the fallback loop. It returns ErrEmptyQuery for a blank query and
// ErrAllUpstreamsFailed once every target has failed.
func (s *SearchService) Search(ctx context.Context, req model.SearchRequest) (*SearchOutcome, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	params := s.BuildParams(req)

	for i, target := range s.targets {
		result := s.attempt(ctx, target, params)
		if result.OK() {
			body, err := s.render(result)
			if err != nil {
				return nil, fmt.Errorf("encode filtered envelope: %w", err)
			}
			log.Info().
				Str("target", target.Name).
				Str("url", target.BaseURL).
				Str("query", req.Query).
				Int("attempts", i+1).
				Msg("search completed")
			return &SearchOutcome{Target: target, Body: body, Attempts: i + 1}, nil
		}

		log.Warn().
			Err(result.Err).
			Str("target", target.Name).
			Str("query", req.Query).
			Msg("search instance failed, trying next")

		if ctx.Err() != nil {
			log.Debug().Err(ctx.Err()).Msg("client went away, stopping fallback loop")
			break
		}
	}

	metrics.RecordSearchExhausted()
	log.Error().Str("query", req.Query).Int("targets", len(s.targets)).Msg("all search instances failed")
	return nil, ErrAllUpstreamsFailed
}

// BuildParams returns the outbound /search query parameters for req.
func (s *SearchService) BuildParams(req model.SearchRequest) map[string]string {
	page := req.Page
	if page < 1 {
		page = 1
	}
	lang := req.Language
	if lang == "" {
		lang = model.DefaultLanguage
	}
	category := req.Category
	if category == "" {
		category = model.DefaultCategory
	}

	params := map[string]string{
		"q":      strings.TrimSpace(req.Query),
		"format": "json",
		"lang":   lang,
		"pageno": strconv.Itoa(page),
	}

	if s.opts.ForceEngine {
		params["engines"] = s.opts.Engines.Resolve(category)
		return params
	}

	params["category"] = category
	if req.Engines != "" {
		params["engines"] = req.Engines
	}
	return params
}

func (s *SearchService) attempt(ctx context.Context, target model.Target, params map[string]string) AttemptResult {
	result := AttemptResult{Target: target}
	endpoint := target.BaseURL + searchPath

	start := time.Now()
	defer func() {
		metrics.RecordUpstreamAttempt("search", target.Kind(), result.OK(), time.Since(start).Seconds())
	}()

	resp, err := s.client.Get(ctx, endpoint, params, s.opts.Timeout)
	if err != nil {
		result.Err = &UpstreamError{Target: target.Name, URL: endpoint, Err: err}
		return result
	}
	if resp.StatusCode != 200 {
		result.Err = &UpstreamError{Target: target.Name, URL: endpoint, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
		return result
	}

	envelope, err := jsonutil.DecodeObject(resp.Body)
	if err != nil {
		result.Err = &UpstreamError{Target: target.Name, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrMalformedBody, err)}
		return result
	}
	if len(envelope) == 0 {
		result.Err = &UpstreamError{Target: target.Name, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: empty envelope", ErrMalformedBody)}
		return result
	}

	result.Body = resp.Body
	result.Envelope = envelope
	return result
}

func (s *SearchService) render(result AttemptResult) ([]byte, error) {
	if !s.opts.FilterResults {
		return result.Body, nil
	}
	return jsonutil.Marshal(FilterEnvelope(result.Envelope))
}
