// Package random provides pooled, non-cryptographic pseudo-random
// number generators.
//
// A *rand.Rand is not safe for concurrent use, so callers borrow a
// generator from the pool for the duration of a single draw
// sequence and hand it back afterwards.
package random

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/jackc/puddle/v2"
	"go.uber.org/zap"
)

var ErrInvalidPoolSize = errors.New("pool size must be at least 1")

// SourceFactory creates the source of a new generator.
type SourceFactory func() rand.Source

// NewPCGSource returns an independently seeded PCG source.
func NewPCGSource() rand.Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

type Pool struct {
	pool *puddle.Pool[*rand.Rand]
	log  *zap.Logger
}

type PoolParams struct {
	// Config is the pool configuration
	Config Config

	// Source creates the source for each pooled generator.
	// Defaults to NewPCGSource.
	Source SourceFactory

	// Log is the logger to use for the pool
	Log *zap.Logger
}

func New(params PoolParams) (*Pool, error) {
	if params.Config.PoolSize < 1 {
		return nil, ErrInvalidPoolSize
	}

	log := params.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("random")

	source := params.Source
	if source == nil {
		source = NewPCGSource
	}

	pool, err := createPool(params.Config.PoolSize, source)
	if err != nil {
		return nil, err
	}

	return &Pool{
		pool: pool,
		log:  log,
	}, nil
}

// Draw borrows a generator and passes it to fn. The generator
// must not be retained after fn returns.
func (p *Pool) Draw(ctx context.Context, fn func(r *rand.Rand)) error {
	res, err := p.pool.Acquire(ctx)
	if err != nil {
		p.log.Debug("failed to acquire generator", zap.Error(err))
		return err
	}
	defer res.Release()

	fn(res.Value())

	return nil
}

// Close closes the pool and waits for all borrowed generators
// to be returned.
func (p *Pool) Close() {
	p.pool.Close()
}

func createPool(maxSize int, source SourceFactory) (*puddle.Pool[*rand.Rand], error) {
	constructor := func(ctx context.Context) (*rand.Rand, error) {
		return rand.New(source()), nil
	}

	return puddle.NewPool(&puddle.Config[*rand.Rand]{
		Constructor: constructor,
		Destructor:  func(*rand.Rand) {},
		MaxSize:     int32(maxSize),
	})
}
