package token

import (
	"context"

	"go.uber.org/zap"

	"swapScope/internal/model"
)

// DetailsSource looks up per-pool token metadata.
type DetailsSource interface {
	PoolDetails(ctx context.Context, keyHash string) (model.PoolDetails, error)
}

// Resolver describes tokens from the static registry first, then the
// metadata cache, then the pool-details lookup. Anything still unresolved
// gets the placeholder descriptor with DefaultDecimals.
type Resolver struct {
	registry *Registry
	cache    *MetaCache
	details  DetailsSource
	logger   *zap.Logger
}

// NewResolver wires a resolver. details may be nil.
func NewResolver(registry *Registry, cache *MetaCache, details DetailsSource, logger *zap.Logger) *Resolver {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if cache == nil {
		cache = NewMetaCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{registry: registry, cache: cache, details: details, logger: logger}
}

// Registry returns the static table backing the resolver.
func (r *Resolver) Registry() *Registry { return r.registry }

// Describe returns metadata for address, consulting the details of the pool
// identified by keyHash when the token is not known locally.
func (r *Resolver) Describe(ctx context.Context, address, keyHash string) model.TokenMeta {
	if meta, ok := r.registry.Lookup(address); ok {
		return meta
	}
	if meta, ok := r.cache.Get(address); ok {
		return meta
	}
	if r.details == nil || keyHash == "" {
		return Placeholder(address)
	}

	details, err := r.details.PoolDetails(ctx, keyHash)
	if err != nil {
		r.logger.Warn("pool details lookup failed, using default decimals",
			zap.String("token", address),
			zap.String("key_hash", keyHash),
			zap.Error(err),
		)
		return Placeholder(address)
	}

	r.remember(details.Key.Token0, details.Token0)
	r.remember(details.Key.Token1, details.Token1)

	if meta, ok := r.cache.Get(address); ok {
		return meta
	}
	return Placeholder(address)
}

// Decimals resolves both legs of a pool.
func (r *Resolver) Decimals(ctx context.Context, pool model.Pool) (uint8, uint8) {
	d0 := r.Describe(ctx, pool.Token0, pool.KeyHash).Decimals
	d1 := r.Describe(ctx, pool.Token1, pool.KeyHash).Decimals
	return d0, d1
}

func (r *Resolver) remember(address string, meta model.TokenMeta) {
	if address == "" {
		address = meta.Address
	}
	if address == "" {
		return
	}
	fallback := Placeholder(address)
	if meta.Symbol == "" {
		meta.Symbol = fallback.Symbol
	}
	if meta.Name == "" {
		meta.Name = fallback.Name
	}
	if meta.Decimals == 0 {
		meta.Decimals = DefaultDecimals
	}
	meta.Address = address
	meta.Unknown = false
	r.cache.Set(address, meta)
}
