package secrets

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Store persists one named secret. Implementations must be safe for
// concurrent use.
type Store interface {
	Set(ctx context.Context, name, value string) error
	Name() string
}

type Result struct {
	Written int
	Skipped int
}

var invalidName = regexp.MustCompile(`[^0-9a-z-]+`)

// SecretName maps a configuration key to a name every backend accepts:
// lower case, underscores become hyphens, anything else is dropped.
func SecretName(key string) string {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
	return strings.Trim(invalidName.ReplaceAllString(name, ""), "-")
}

// Persist writes every non-empty value with at most concurrency writes in
// flight. Each failed key is reported in the joined error and never cancels
// the other writes.
func Persist(ctx context.Context, store Store, values map[string]string, concurrency int) (Result, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	logger := zerolog.Ctx(ctx).With().Str("backend", store.Name()).Logger()

	var (
		result  Result
		written atomic.Int64
		mu      sync.Mutex
		errs    []error
	)

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for _, key := range slices.Sorted(maps.Keys(values)) {
		value := values[key]
		name := SecretName(key)
		if strings.TrimSpace(value) == "" || name == "" {
			result.Skipped++
			continue
		}
		g.Go(func() error {
			if err := store.Set(ctx, name, value); err != nil {
				logger.Error().Err(err).Str("secret", name).Msg("failed to store secret")
				mu.Lock()
				errs = append(errs, fmt.Errorf("secret %s: %w", name, err))
				mu.Unlock()
				return nil
			}
			logger.Debug().Str("secret", name).Msg("secret stored")
			written.Add(1)
			return nil
		})
	}
	// tasks always return nil; the group only bounds the writes in flight
	g.Wait()

	result.Written = int(written.Load())
	logger.Info().Int("written", result.Written).Int("skipped", result.Skipped).Int("failed", len(errs)).Msg("secrets persisted")
	return result, errors.Join(errs...)
}
