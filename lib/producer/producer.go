package producer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ether/etherdelta/lib/db"
	"github.com/ether/etherdelta/lib/delta"
	"github.com/ether/etherdelta/lib/differ"
	"github.com/ether/etherdelta/lib/integrity"
	modelsDB "github.com/ether/etherdelta/lib/models/db"
	"github.com/ether/etherdelta/lib/resource"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMemoSize       = 256
	DefaultMaxContentSize = 8 << 20
)

type Options struct {
	// MemoSize is the number of verified deltas kept; 0 disables the memo.
	MemoSize int
	// MaxContentSize bounds base and target in bytes; 0 means unbounded.
	MaxContentSize int
	Registerer     prometheus.Registerer
}

func DefaultOptions() Options {
	return Options{MemoSize: DefaultMemoSize, MaxContentSize: DefaultMaxContentSize}
}

type Result struct {
	Target      resource.Identity
	BaseVersion string
	Delta       delta.Delta
	Body        []byte
	Checksum    integrity.Digest
}

type Producer struct {
	differ  differ.Differ
	store   db.ResourceReader
	opts    Options
	logger  *zap.SugaredLogger
	metrics *Metrics
	memo    *lru.Cache[string, *Result]
	group   singleflight.Group
}

func NewProducer(d differ.Differ, store db.ResourceReader, opts Options, logger *zap.SugaredLogger) (*Producer, error) {
	p := &Producer{
		differ:  d,
		store:   store,
		opts:    opts,
		logger:  logger,
		metrics: NewMetrics(opts.Registerer),
	}
	if opts.MemoSize > 0 {
		memo, err := lru.New[string, *Result](opts.MemoSize)
		if err != nil {
			return nil, fmt.Errorf("error creating delta memo: %w", err)
		}
		p.memo = memo
	}
	return p, nil
}

// Resource returns the stored content of id.
func (p *Producer) Resource(ctx context.Context, id resource.Identity) (*modelsDB.ResourceDB, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	stored, err := p.store.GetResource(ctx, id.Name, id.Version, id.File)
	if err != nil {
		if errors.Is(err, db.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, id)
		}
		return nil, err
	}
	return stored, nil
}

// Versions lists the known versions of name/file, newest first.
func (p *Producer) Versions(ctx context.Context, name, file string) ([]string, error) {
	versions, err := p.store.GetVersions(ctx, name, file)
	if err != nil {
		return nil, err
	}
	return resource.SortVersions(versions), nil
}

// ForResource produces the delta that turns baseVersion of the same file into
// target. The base version echoed in the result is the one the delta was
// computed against. Both identities are validated before the store is touched;
// failures wrap resource.ErrInvalidIdentity.
func (p *Producer) ForResource(ctx context.Context, target resource.Identity, baseVersion string) (*Result, error) {
	base := target.WithVersion(baseVersion)
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("base version: %w", err)
	}

	targetResource, err := p.Resource(ctx, target)
	if err != nil {
		return nil, err
	}

	baseResource, err := p.store.GetResource(ctx, base.Name, base.Version, base.File)
	if err != nil {
		if errors.Is(err, db.ErrResourceNotFound) {
			p.metrics.baseNotFound.Inc()
			return nil, fmt.Errorf("%w: %s", ErrBaseNotFound, base)
		}
		return nil, err
	}

	if limit := p.opts.MaxContentSize; limit > 0 && (len(baseResource.Content) > limit || len(targetResource.Content) > limit) {
		return nil, fmt.Errorf("%w: %s from %s exceeds %d bytes", ErrContentTooLarge, target, baseVersion, limit)
	}

	if !utf8.Valid(baseResource.Content) || !utf8.Valid(targetResource.Content) {
		return nil, fmt.Errorf("%w: %s from %s", ErrNotText, target, baseVersion)
	}

	key := memoKey(baseResource, targetResource)
	if p.memo != nil {
		if cached, ok := p.memo.Get(key); ok {
			p.metrics.memoHits.Inc()
			return cached, nil
		}
	}

	value, err, shared := p.group.Do(key, func() (interface{}, error) {
		return p.produce(target, baseVersion, baseResource, targetResource)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.logger.Debugf("Coalesced delta request for %s from %s", target, baseVersion)
	}
	return value.(*Result), nil
}

func (p *Producer) produce(target resource.Identity, baseVersion string, baseResource, targetResource *modelsDB.ResourceDB) (*Result, error) {
	ops, digest, err := ProduceDeltaWith(p.differ, string(baseResource.Content), string(targetResource.Content))
	if err != nil {
		p.metrics.verificationFailure.Inc()
		p.logger.Errorf("Delta for %s from %s failed verification: %v", target, baseVersion, err)
		return nil, err
	}

	body, err := delta.Encode(ops)
	if err != nil {
		return nil, fmt.Errorf("error encoding delta: %w", err)
	}

	result := &Result{
		Target:      target,
		BaseVersion: baseVersion,
		Delta:       ops,
		Body:        body,
		Checksum:    digest,
	}
	p.metrics.produced.Inc()
	p.logger.Debugf("Produced delta for %s from %s: %d ops, %d bytes", target, baseVersion, len(ops), len(body))

	if p.memo != nil {
		p.memo.Add(memoKey(baseResource, targetResource), result)
	}
	return result, nil
}

// MemoLen reports how many verified deltas are memoized.
func (p *Producer) MemoLen() int {
	if p.memo == nil {
		return 0
	}
	return p.memo.Len()
}

// memoKey includes both checksums; re-imported content never hits an old entry.
func memoKey(base, target *modelsDB.ResourceDB) string {
	return strings.Join([]string{
		target.Name,
		target.File,
		base.Version + "@" + digestOf(base),
		target.Version + "@" + digestOf(target),
	}, "|")
}

func digestOf(r *modelsDB.ResourceDB) string {
	if r.Checksum != "" {
		return r.Checksum
	}
	return string(integrity.ChecksumBytes(r.Content))
}
