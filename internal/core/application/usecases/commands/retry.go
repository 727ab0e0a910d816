package commands

import (
	"context"
	"errors"

	"montarota/internal/pkg/errs"
)

// maxConcurrencyAttempts bounds how often a handler re-runs its whole unit of work
// after losing an optimistic version check.
const maxConcurrencyAttempts = 3

func withConcurrencyRetry[T any](ctx context.Context, attempt func(context.Context) (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	for range maxConcurrencyAttempts {
		result, err = attempt(ctx)
		if !errors.Is(err, errs.ErrConcurrentModification) {
			return result, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
	}
	return result, err
}
