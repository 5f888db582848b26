package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

const responsePrefix = "resp:"

// BadgerCache implements Cache on top of BadgerDB using per-entry TTLs.
type BadgerCache struct {
	db         *badger.DB
	defaultTTL time.Duration
	log        logrus.FieldLogger
}

// NewBadgerCache opens (or creates) a BadgerDB cache at dbPath.
func NewBadgerCache(dbPath string, defaultTTL time.Duration, logger logrus.FieldLogger) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open BadgerDB")
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}
	logger.Info("BadgerDB opened successfully at path: ", dbPath)

	return &BadgerCache{
		db:         db,
		defaultTTL: defaultTTL,
		log:        logger.WithField("component", "response_cache"),
	}, nil
}

// Close closes the BadgerDB database connection.
func (c *BadgerCache) Close() error {
	c.log.Info("Closing BadgerDB...")
	err := c.db.Close()
	if err != nil {
		c.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	c.log.Info("BadgerDB closed.")
	return nil
}

// generateResponseKey namespaces cache keys.
// Format: resp:{key}
func generateResponseKey(key string) []byte {
	return []byte(responsePrefix + key)
}

// Get returns the cached body for key. Expired entries are invisible to
// badger iterators and lookups, so they read as misses.
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(generateResponseKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		c.log.WithError(err).WithField("key", key).Error("Failed to read cached response")
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, overwriting any previous entry.
func (c *BadgerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(generateResponseKey(key), value)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		c.log.WithError(err).WithField("key", key).Error("Failed to cache response")
		return fmt.Errorf("failed to cache key %s: %w", key, err)
	}

	c.log.WithFields(logrus.Fields{
		"key": key,
		"ttl": ttl.String(),
	}).Debug("Response cached")
	return nil
}

// Delete removes the entry for key.
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(generateResponseKey(key))
	})
	if err != nil {
		c.log.WithError(err).WithField("key", key).Error("Failed to delete cached response")
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}

// RunGC reclaims value log space until ctx is cancelled. Expired entries
// accumulate quickly with short TTLs, so the server runs this in the
// background.
func (c *BadgerCache) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			err := c.db.RunValueLogGC(0.7)
			switch {
			case err == nil:
				c.log.Info("BadgerDB GC completed successfully")
			case errors.Is(err, badger.ErrNoRewrite):
				c.log.Debug("BadgerDB GC: No rewrite needed")
			default:
				c.log.WithError(err).Error("BadgerDB GC failed")
			}
		case <-ctx.Done():
			c.log.Info("Stopping BadgerDB GC routine due to context cancellation")
			return
		}
	}
}

// --- BadgerDB Internal Logger ---

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Infof(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
