package compras

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/farmacia-cloud/compras-backend/pkg/db"
	"github.com/farmacia-cloud/compras-backend/pkg/db/models"
)

// retryingRepository wraps a Repository with bounded exponential backoff for
// transient persistence failures. Not-found results, unique violations and
// context cancellation are never retried.
type retryingRepository struct {
	inner    Repository
	attempts uint64
	backoff  time.Duration
}

// WithRetry decorates repo so each call survives up to attempts transient
// failures, backing off exponentially from the given base delay.
func WithRetry(repo Repository, attempts int, backoff time.Duration) Repository {
	if attempts <= 0 || backoff <= 0 {
		return repo
	}
	return &retryingRepository{
		inner:    repo,
		attempts: uint64(attempts),
		backoff:  backoff,
	}
}

func (r *retryingRepository) do(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(r.attempts, retry.NewExponential(r.backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			return err
		}
		return retry.RetryableError(err)
	})
}

func isPermanent(err error) bool {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return true
	case db.IsUniqueViolation(err, ""):
		return true
	}
	return false
}

func (r *retryingRepository) Create(ctx context.Context, compra *models.Compra) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.inner.Create(ctx, compra)
	})
}

func (r *retryingRepository) FindByCodigo(ctx context.Context, tenantID, codigo string) (*models.Compra, error) {
	var compra *models.Compra
	err := r.do(ctx, func(ctx context.Context) error {
		var innerErr error
		compra, innerErr = r.inner.FindByCodigo(ctx, tenantID, codigo)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return compra, nil
}

func (r *retryingRepository) ListByUsuario(ctx context.Context, tenantID, email string, q ListQuery) ([]models.Compra, error) {
	var rows []models.Compra
	err := r.do(ctx, func(ctx context.Context) error {
		var innerErr error
		rows, innerErr = r.inner.ListByUsuario(ctx, tenantID, email, q)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *retryingRepository) ListAllByUsuario(ctx context.Context, tenantID, email string) ([]models.Compra, error) {
	var rows []models.Compra
	err := r.do(ctx, func(ctx context.Context) error {
		var innerErr error
		rows, innerErr = r.inner.ListAllByUsuario(ctx, tenantID, email)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
