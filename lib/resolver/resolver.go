// Package resolver serves a versioned resource on the client. It prefers cached
// content and tries a delta against another cached version before fetching in
// full. A differential failure is never visible to the caller; it only ever
// costs a full fetch.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/ether/etherdelta/lib/cache"
	"github.com/ether/etherdelta/lib/delta"
	"github.com/ether/etherdelta/lib/integrity"
	"github.com/ether/etherdelta/lib/resource"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ErrBaseNotFound is returned by a Fetcher when the server does not know the
// base version offered to it.
var ErrBaseNotFound = errors.New("base version not known by server")

type DifferentialResponse struct {
	Delta delta.Delta
	// BaseVersion is the base the server computed the delta against.
	BaseVersion string
	Checksum    integrity.Digest
	// ContentType of the differential response itself.
	ContentType string
}

type Fetcher interface {
	FetchFull(ctx context.Context, id resource.Identity) (*cache.Entry, error)
	FetchDifferential(ctx context.Context, id resource.Identity, baseVersion string) (*DifferentialResponse, error)
}

type Config struct {
	// DisableDifferential skips straight from a cache miss to a full fetch.
	DisableDifferential bool
	Registerer          prometheus.Registerer
}

type Result struct {
	ID      string
	Content []byte
	Entry   cache.Entry
	Source  Source
	// BaseVersion is set when Source is SourceDifferential.
	BaseVersion string
}

type Resolver struct {
	cache   cache.Cache
	fetcher Fetcher
	cfg     Config
	logger  *zap.SugaredLogger
	metrics *Metrics
}

func New(c cache.Cache, fetcher Fetcher, cfg Config, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		cache:   c,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		metrics: NewMetrics(cfg.Registerer),
	}
}

// resolution carries what one Resolve call learned between states.
type resolution struct {
	id        resource.Identity
	logger    *zap.SugaredLogger
	alternate resource.Identity
	base      *cache.Entry
	response  *DifferentialResponse
}

func (r *Resolver) Resolve(ctx context.Context, id resource.Identity) (*Result, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	resolutionID := uuid.NewString()
	res := &resolution{
		id:     id,
		logger: r.logger.With("resolution", resolutionID, "resource", id.String()),
	}

	state := StateCheckExactCache
	for {
		var next State
		var result *Result
		var err error

		switch state {
		case StateCheckExactCache:
			next, result = r.checkExactCache(ctx, res)
		case StateCheckAlternateVersion:
			next = r.checkAlternateVersion(ctx, res)
		case StateAttemptDifferential:
			next = r.attemptDifferential(ctx, res)
		case StateApplyAndVerify:
			next, result = r.applyAndVerify(ctx, res)
		case StateFallbackFullFetch:
			next, result, err = r.fallbackFullFetch(ctx, res)
			if err != nil {
				r.metrics.resolutions.WithLabelValues("failed").Inc()
				res.logger.Warnf("Full fetch failed: %v", err)
				return nil, err
			}
		default:
			return nil, fmt.Errorf("resolver reached unexpected state %s", state)
		}

		res.logger.Debugf("%s -> %s", state, next)
		if next == StateSuccess {
			result.ID = resolutionID
			r.metrics.resolutions.WithLabelValues(result.Source.String()).Inc()
			res.logger.Infof("Resolved from %s", result.Source)
			return result, nil
		}
		state = next
	}
}

func (r *Resolver) checkExactCache(ctx context.Context, res *resolution) (State, *Result) {
	entry, err := r.cache.Match(ctx, res.id)
	if err != nil {
		res.logger.Warnf("Cache lookup failed: %v", err)
		return StateCheckAlternateVersion, nil
	}
	if entry == nil {
		return StateCheckAlternateVersion, nil
	}
	return StateSuccess, &Result{Content: entry.Content, Entry: *entry, Source: SourceCache}
}

// checkAlternateVersion takes the first cached identity of the same file
// under a different version, in cache key order.
func (r *Resolver) checkAlternateVersion(ctx context.Context, res *resolution) State {
	if r.cfg.DisableDifferential {
		return StateFallbackFullFetch
	}

	keys, err := r.cache.Keys(ctx)
	if err != nil {
		res.logger.Warnf("Listing cache keys failed: %v", err)
		return r.fallback("cache")
	}

	for _, key := range keys {
		if !resource.SameLogicalResource(res.id, key) {
			continue
		}
		entry, err := r.cache.Match(ctx, key)
		if err != nil || entry == nil {
			res.logger.Warnf("Alternate %s vanished from the cache: %v", key.Version, err)
			return r.fallback("cache")
		}
		res.alternate = key
		res.base = entry
		res.logger.Debugf("Using cached %s as base", key.Version)
		return StateAttemptDifferential
	}

	return StateFallbackFullFetch
}

func (r *Resolver) attemptDifferential(ctx context.Context, res *resolution) State {
	response, err := r.fetcher.FetchDifferential(ctx, res.id, res.alternate.Version)
	if err != nil {
		if errors.Is(err, ErrBaseNotFound) {
			res.logger.Infof("Server does not know base %s", res.alternate.Version)
			return r.fallback("base_not_found")
		}
		res.logger.Warnf("Differential request failed: %v", err)
		return r.fallback("request")
	}

	if response.BaseVersion != res.alternate.Version {
		res.logger.Warnf("Server diffed against %q, client holds %q", response.BaseVersion, res.alternate.Version)
		return r.fallback("base_mismatch")
	}

	res.response = response
	return StateApplyAndVerify
}

func (r *Resolver) applyAndVerify(ctx context.Context, res *resolution) (State, *Result) {
	content, err := delta.Apply(res.response.Delta, string(res.base.Content))
	if err != nil {
		res.logger.Warnf("Applying delta from %s failed: %v", res.alternate.Version, err)
		return r.fallback("apply"), nil
	}
	if err := integrity.Check(content, res.response.Checksum); err != nil {
		res.logger.Warnf("Rebuilt content rejected: %v", err)
		return r.fallback("integrity"), nil
	}

	entry := cache.Entry{
		Content:     []byte(content),
		ContentType: res.base.ContentType,
		Header: map[string]string{
			integrity.ChecksumHeader: string(res.response.Checksum),
		},
	}
	r.store(ctx, res, entry)

	return StateSuccess, &Result{
		Content:     entry.Content,
		Entry:       entry,
		Source:      SourceDifferential,
		BaseVersion: res.alternate.Version,
	}
}

func (r *Resolver) fallbackFullFetch(ctx context.Context, res *resolution) (State, *Result, error) {
	entry, err := r.fetcher.FetchFull(ctx, res.id)
	if err != nil {
		return StateFallbackFullFetch, nil, err
	}

	r.store(ctx, res, *entry)
	return StateSuccess, &Result{Content: entry.Content, Entry: *entry, Source: SourceNetwork}, nil
}

func (r *Resolver) fallback(reason string) State {
	r.metrics.fallbacks.WithLabelValues(reason).Inc()
	return StateFallbackFullFetch
}

// store writes a network-derived entry under the exact identity. A failed
// write is logged and otherwise ignored.
func (r *Resolver) store(ctx context.Context, res *resolution, entry cache.Entry) {
	if ctx.Err() != nil {
		res.logger.Debugf("Request cancelled, not caching")
		return
	}
	if err := r.cache.Put(ctx, res.id, entry); err != nil {
		res.logger.Warnf("Caching failed: %v", err)
	}
}
