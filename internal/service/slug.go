package service

import (
	"context"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/repository"
	"github.com/dukerupert/tantuka/internal/telemetry"
)

type slugExistsFunc func(ctx context.Context, slug string) (bool, error)

// probeSlug walks base, base-1, base-2, ... and returns the first candidate
// exists reports as free together with its suffix number. The answer is only
// advisory: another request may take the slug before it is inserted.
func probeSlug(ctx context.Context, base string, exists slugExistsFunc) (string, int, error) {
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		candidate := domain.SlugCandidate(base, n)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", 0, err
		}
		if !taken {
			return candidate, n, nil
		}
	}
}

// generateUniqueSlug slugifies name and probes for a free candidate.
func generateUniqueSlug(ctx context.Context, op, name string, exists slugExistsFunc) (string, error) {
	base := domain.Slugify(name)
	if base == "" {
		return "", domain.WithOp(domain.ErrEmptySlugCandidate, op)
	}

	slug, _, err := probeSlug(ctx, base, exists)
	if err != nil {
		return "", storeError(err, op, "failed to generate slug")
	}
	return slug, nil
}

// createWithDerivedSlug inserts a row whose slug is derived from name. Each
// attempt runs create in its own transaction; when the insert collides on
// constraint the next suffix is tried, up to domain.MaxSlugAttempts times.
func createWithDerivedSlug[T any](
	ctx context.Context,
	store repository.Store,
	op, entity, name, constraint string,
	exists slugExistsFunc,
	create func(q repository.Querier, slug string) (T, error),
) (T, error) {
	var zero T

	base := domain.Slugify(name)
	if base == "" {
		return zero, domain.WithOp(domain.ErrEmptySlugCandidate, op)
	}

	_, n, err := probeSlug(ctx, base, exists)
	if err != nil {
		return zero, storeError(err, op, "failed to generate slug")
	}

	for attempt := 0; attempt < domain.MaxSlugAttempts; attempt++ {
		slug := domain.SlugCandidate(base, n+attempt)

		var result T
		err := store.ExecTx(ctx, func(q repository.Querier) error {
			var err error
			result, err = create(q, slug)
			return err
		})
		if err == nil {
			return result, nil
		}
		if !repository.IsUniqueViolation(err, constraint) {
			return zero, err
		}
		if telemetry.Business != nil {
			telemetry.Business.SlugCollisions.WithLabelValues(entity).Inc()
		}
	}

	return zero, domain.WithOp(domain.ErrSlugUnavailable, op)
}
