package service

import (
	"context"
	"fmt"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/guttosm/kitchen-receipt-service/internal/logger"
	"github.com/guttosm/kitchen-receipt-service/internal/repository"
	"github.com/shopspring/decimal"
)

// MaxRecentReceipts caps a single Recent call.
const MaxRecentReceipts = 200

// ReceiptService generates kitchen receipts and serves the archive.
type ReceiptService interface {
	Generate(ctx context.Context, order model.KitchenOrder) model.Receipt
	Recent(ctx context.Context, limit int) ([]model.Receipt, error)
}

// ReceiptServiceImpl implements ReceiptService.
type ReceiptServiceImpl struct {
	formatter    ReceiptFormatter
	archiver     *ReceiptArchiver
	receiptsRepo repository.ReceiptsRepositoryInterface
}

// NewReceiptService creates a receipt service. archiver and receiptsRepo may
// be nil when MongoDB is disabled.
func NewReceiptService(formatter ReceiptFormatter, archiver *ReceiptArchiver, receiptsRepo repository.ReceiptsRepositoryInterface) *ReceiptServiceImpl {
	return &ReceiptServiceImpl{
		formatter:    formatter,
		archiver:     archiver,
		receiptsRepo: receiptsRepo,
	}
}

// Generate formats the order and queues the result for archiving.
func (s *ReceiptServiceImpl) Generate(ctx context.Context, order model.KitchenOrder) model.Receipt {
	receipt := s.formatter.Format(order)

	l := logger.FromContext(ctx)
	if len(receipt.Skipped) > 0 {
		l.Debug().
			Str("receipt_id", receipt.ID).
			Int("skipped", len(receipt.Skipped)).
			Msg("Cart lines left off receipt")
	}
	if s.archiver != nil && !s.archiver.Enqueue(receipt, logger.RequestIDFromContext(ctx)) {
		l.Warn().Str("receipt_id", receipt.ID).Msg("Receipt archive buffer full, receipt not archived")
	}

	return receipt
}

// Recent returns archived receipts, newest first. A non-positive limit uses
// the repository default; larger limits are capped at MaxRecentReceipts.
func (s *ReceiptServiceImpl) Recent(ctx context.Context, limit int) ([]model.Receipt, error) {
	if s.receiptsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	switch {
	case limit <= 0:
		limit = repository.DefaultReceiptsLimit
	case limit > MaxRecentReceipts:
		limit = MaxRecentReceipts
	}

	docs, err := s.receiptsRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}

	receipts := make([]model.Receipt, 0, len(docs))
	for _, doc := range docs {
		receipts = append(receipts, fromReceiptDocument(doc))
	}
	return receipts, nil
}

func fromReceiptDocument(doc *repository.ReceiptDocument) model.Receipt {
	total, err := decimal.NewFromString(doc.Total.String())
	if err != nil {
		total = decimal.Zero
	}

	r := model.Receipt{
		ID:          doc.ID,
		OrderName:   doc.OrderName,
		OrderType:   doc.OrderType,
		Text:        doc.Text,
		Total:       total,
		LineCount:   doc.LineCount,
		GeneratedAt: doc.GeneratedAt,
	}
	for _, s := range doc.Skipped {
		r.Skipped = append(r.Skipped, model.SkippedLine{
			Index:  s.Index,
			Line:   s.Line,
			Reason: model.SkipReason(s.Reason),
		})
	}
	return r
}
