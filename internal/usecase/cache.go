package usecase

import (
	"context"
	"time"
)

// ResultCache is the cache-aside port used for computed rankings.
// Implementations are best-effort: a miss or error never fails a request.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
