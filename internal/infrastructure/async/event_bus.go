package async

import (
	"context"

	"go.uber.org/zap"

	"seatservice/internal/domain"
)

// AsyncEventBus records domain events on pool workers so publishers never
// wait on logging.
type AsyncEventBus struct {
	pool *WorkerPool
	log  *zap.Logger
}

func NewAsyncEventBus(ctx context.Context, poolSize int, log *zap.Logger) *AsyncEventBus {
	return &AsyncEventBus{
		pool: NewWorkerPool(ctx, poolSize, 64*poolSize, log),
		log:  log,
	}
}

func (b *AsyncEventBus) Publish(_ context.Context, e domain.Event) {
	ok := b.pool.Submit(func(context.Context) {
		b.log.Info("domain_event",
			zap.String("type", e.Type),
			zap.Any("payload", e.Payload),
		)
	})
	if !ok {
		b.log.Warn("domain_event dropped", zap.String("type", e.Type))
	}
}

func (b *AsyncEventBus) Close() {
	b.pool.Shutdown()
}
