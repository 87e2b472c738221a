package services

import (
	"context"
	"errors"
)

// Errors shared by every service. Handlers map them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("operation not permitted for this user")
)

// ReportCache is the cache the services read through and invalidate on writes. *cache.Cache
// implements it; a disabled cache turns every call into a no-op.
type ReportCache interface {
	Generation(ctx context.Context) (int64, error)
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}) error
	InvalidateReports(ctx context.Context) error
}
