package abi

import (
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// DefaultParserCacheSize is the signature cache size used by NewParser(0).
const DefaultParserCacheSize = 1024

// Parser caches parsed type signatures. Types are immutable, so cached
// values are shared freely. A Parser is safe for concurrent use.
type Parser struct {
	cache *lru.Cache
}

// NewParser returns a Parser holding up to size signatures.
func NewParser(size int) (*Parser, error) {
	if size <= 0 {
		size = DefaultParserCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Parser{cache: cache}, nil
}

// TypeOf returns the cached type for signature, parsing it on first use.
// Failed parses are not cached.
func (p *Parser) TypeOf(signature string) (Type, error) {
	if v, ok := p.cache.Get(signature); ok {
		return v.(Type), nil
	}
	Logger().Debug("type cache miss", zap.String("signature", signature))
	t, err := TypeOf(signature)
	if err != nil {
		return Type{}, err
	}
	if evicted := p.cache.Add(signature, t); evicted {
		Logger().Debug("type cache eviction", zap.Int("size", p.cache.Len()))
	}
	return t, nil
}

// Len returns the number of cached signatures.
func (p *Parser) Len() int {
	return p.cache.Len()
}

// Purge drops all cached signatures.
func (p *Parser) Purge() {
	p.cache.Purge()
}
