package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache stores raw API response bodies for a bounded freshness window.
// Implementations must treat an expired entry exactly like a missing one.
type Cache interface {
	// Get returns the cached value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A non-positive ttl uses the
	// implementation default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}

// Cache kinds accepted by Open.
const (
	KindMemory = "memory"
	KindBadger = "badger"
	KindNone   = "none"
)

// Options selects and sizes a cache implementation.
type Options struct {
	Kind       string
	TTL        time.Duration
	Size       int
	BadgerPath string
}

// Open builds the cache described by opts.
func Open(opts Options, logger logrus.FieldLogger) (Cache, error) {
	switch opts.Kind {
	case KindBadger:
		return NewBadgerCache(opts.BadgerPath, opts.TTL, logger)
	case KindMemory, "":
		return NewMemoryCache(opts.Size, opts.TTL), nil
	case KindNone:
		return NopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache kind %q", opts.Kind)
	}
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, string) error { return nil }
func (NopCache) Close() error { return nil }
