package adapter

import (
	"context"
)

// ProjectionCache stores serialized calculator results by key.
// Implementations treat a miss and a backend failure the same way on Get.
type ProjectionCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}
