// Package cache persists validation results so unchanged rows in large
// translation files are not re-validated on every batch run.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"translation-validator/internal/textutil"
	"translation-validator/internal/validate"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ResultCache provides in-memory + PostgreSQL-backed caching of
// validation results, keyed by a hash of the full validation input.
type ResultCache struct {
	pool   *pgxpool.Pool
	mu     sync.RWMutex
	memory map[string]validate.ValidationResult
}

// NewResultCache creates a cache backed by PostgreSQL.
func NewResultCache(pool *pgxpool.Pool) *ResultCache {
	return &ResultCache{
		pool:   pool,
		memory: make(map[string]validate.ValidationResult),
	}
}

// EnsureSchema creates the cache table when it does not exist yet.
func (c *ResultCache) EnsureSchema(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS validation_results (
			hash       TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure cache schema: %w", err)
	}
	return nil
}

// Key derives the cache key for one validation input. Every field that
// influences the outcome must be part of it.
func Key(cfg *validate.LanguageConfig, caseSel, base, translation string) string {
	parts := []string{
		cfg.Dialect.String(),
		strings.Join(cfg.Cases, ","),
		strings.Join(cfg.Genders, ","),
		fmt.Sprint(cfg.PluralCount),
		caseSel,
		base,
		translation,
	}
	return textutil.Hash(strings.Join(parts, "\x1f"))
}

// Get retrieves a cached result. Returns false if not found.
func (c *ResultCache) Get(ctx context.Context, key string) (validate.ValidationResult, bool) {
	c.mu.RLock()
	if v, ok := c.memory[key]; ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	var payload []byte
	err := c.pool.QueryRow(ctx,
		`SELECT payload FROM validation_results WHERE hash = $1`, key).Scan(&payload)
	if err != nil {
		return validate.ValidationResult{}, false
	}

	var result validate.ValidationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		log.Warn().Err(err).Str("hash", textutil.Truncate(key, 12)).Msg("Corrupt cache payload")
		return validate.ValidationResult{}, false
	}

	c.mu.Lock()
	c.memory[key] = result
	c.mu.Unlock()

	return result, true
}

// Set stores a result in both the in-memory and the PostgreSQL cache.
func (c *ResultCache) Set(ctx context.Context, key string, result validate.ValidationResult) error {
	c.mu.Lock()
	c.memory[key] = result
	c.mu.Unlock()

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = c.pool.Exec(ctx, `
		INSERT INTO validation_results (hash, payload) VALUES ($1, $2)
		ON CONFLICT (hash) DO UPDATE SET payload = EXCLUDED.payload`,
		key, payload)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Preload loads all cached results into memory.
func (c *ResultCache) Preload(ctx context.Context) error {
	rows, err := c.pool.Query(ctx, `SELECT hash, payload FROM validation_results`)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for rows.Next() {
		var hash string
		var payload []byte
		if err := rows.Scan(&hash, &payload); err != nil {
			return fmt.Errorf("scan cache row: %w", err)
		}
		var result validate.ValidationResult
		if err := json.Unmarshal(payload, &result); err != nil {
			continue
		}
		c.memory[hash] = result
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}

	log.Info().Int("count", count).Msg("Preloaded validation cache")
	return nil
}
