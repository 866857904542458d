package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/worker"
)

// ImportQueue runs feed imports off-request on a worker pool and mails the
// partner the outcome.
type ImportQueue struct {
	service  *ImportService
	pool     *worker.Pool
	notifier shared.NotificationSender
	logger   *zap.Logger
}

// NewImportQueue creates a new ImportQueue
func NewImportQueue(service *ImportService, pool *worker.Pool, notifier shared.NotificationSender, logger *zap.Logger) *ImportQueue {
	return &ImportQueue{
		service:  service,
		pool:     pool,
		notifier: notifier,
		logger:   logger,
	}
}

// EnqueueURL queues a URL import for the partner
func (q *ImportQueue) EnqueueURL(userID uuid.UUID, email, url string) error {
	return q.pool.Submit(func(ctx context.Context) {
		result, err := q.service.ImportFromURL(ctx, userID, url)
		q.notifyResult(ctx, email, result, err)
	})
}

// EnqueueUpload queues an uploaded feed import for the partner
func (q *ImportQueue) EnqueueUpload(userID uuid.UUID, email string, data []byte) error {
	return q.pool.Submit(func(ctx context.Context) {
		result, err := q.service.ImportFromBytes(ctx, userID, data)
		q.notifyResult(ctx, email, result, err)
	})
}

// notifyResult mails the partner the import outcome. Delivery failures are
// logged; the import itself already succeeded or failed on its own.
func (q *ImportQueue) notifyResult(ctx context.Context, email string, result *ImportResult, importErr error) {
	var subject, body string
	if importErr != nil {
		subject = "Price list import failed"
		body = fmt.Sprintf("Your price list was not imported: %v", importErr)
		q.logger.Warn("Feed import failed", zap.String("partner", email), zap.Error(importErr))
	} else {
		subject = "Price list import completed"
		body = fmt.Sprintf("Shop %s: imported %d categories and %d goods.",
			result.Shop, result.Categories, result.Goods)
	}

	if q.notifier == nil {
		return
	}
	if err := q.notifier.Send(ctx, []string{email}, subject, body); err != nil {
		q.logger.Error("Failed to send import result email",
			zap.String("partner", email), zap.Error(err))
	}
}
