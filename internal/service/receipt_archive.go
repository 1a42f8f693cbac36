package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/guttosm/kitchen-receipt-service/internal/metrics"
	"github.com/guttosm/kitchen-receipt-service/internal/repository"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArchiveConfig holds configuration for the receipt archiver.
type ArchiveConfig struct {
	// BufferSize is the number of receipts that may wait for a worker.
	BufferSize int
	// NumWorkers is the number of goroutines writing to MongoDB.
	NumWorkers int
	// BatchSize caps how many receipts a worker writes in one InsertMany.
	BatchSize int
	// FlushInterval is the longest a partial batch waits before being written.
	FlushInterval time.Duration
	// WriteTimeout bounds a single batch write.
	WriteTimeout time.Duration
}

// DefaultArchiveConfig returns defaults sized for a busy service counter.
func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		BufferSize:    500,
		NumWorkers:    2,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// ArchiveStats counts receipts through the archiver.
type ArchiveStats struct {
	Queued  int64
	Dropped int64
	Stored  int64
	Failed  int64
}

type archiveEntry struct {
	receipt   model.Receipt
	requestID string
}

// ReceiptArchiver writes generated receipts to MongoDB in the background.
// A full buffer drops receipts instead of blocking the caller.
type ReceiptArchiver struct {
	repo   repository.ReceiptsRepositoryInterface
	cfg    ArchiveConfig
	queue  chan archiveEntry
	stopCh chan struct{}
	wg     sync.WaitGroup

	// mu orders sends against Stop so nothing lands after the final drain.
	mu       sync.RWMutex
	closed   bool
	stopOnce sync.Once

	queued  atomic.Int64
	dropped atomic.Int64
	stored  atomic.Int64
	failed  atomic.Int64
}

// NewReceiptArchiver starts the worker pool. It returns nil for a nil repository.
func NewReceiptArchiver(repo repository.ReceiptsRepositoryInterface, cfg ArchiveConfig) *ReceiptArchiver {
	if repo == nil {
		return nil
	}
	def := DefaultArchiveConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	a := &ReceiptArchiver{
		repo:   repo,
		cfg:    cfg,
		queue:  make(chan archiveEntry, cfg.BufferSize),
		stopCh: make(chan struct{}),
	}
	for i := 0; i < cfg.NumWorkers; i++ {
		a.wg.Add(1)
		go a.worker()
	}
	return a
}

// Enqueue hands a receipt to the archive. It reports false when the receipt
// was dropped because the buffer is full or the archiver is stopped.
func (a *ReceiptArchiver) Enqueue(receipt model.Receipt, requestID string) bool {
	if a == nil {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.drop()
		return false
	}

	select {
	case a.queue <- archiveEntry{receipt: receipt, requestID: requestID}:
		a.queued.Add(1)
		metrics.RecordArchive(metrics.ArchiveQueued, 1)
		return true
	default:
		a.drop()
		return false
	}
}

func (a *ReceiptArchiver) drop() {
	a.dropped.Add(1)
	metrics.RecordArchive(metrics.ArchiveDropped, 1)
}

func (a *ReceiptArchiver) worker() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*repository.ReceiptDocument, 0, a.cfg.BatchSize)
	for {
		select {
		case entry := <-a.queue:
			batch = append(batch, toReceiptDocument(entry))
			if len(batch) >= a.cfg.BatchSize {
				batch = a.flush(batch)
			}
		case <-ticker.C:
			batch = a.flush(batch)
		case <-a.stopCh:
			for {
				select {
				case entry := <-a.queue:
					batch = append(batch, toReceiptDocument(entry))
					if len(batch) >= a.cfg.BatchSize {
						batch = a.flush(batch)
					}
				default:
					a.flush(batch)
					return
				}
			}
		}
	}
}

func (a *ReceiptArchiver) flush(batch []*repository.ReceiptDocument) []*repository.ReceiptDocument {
	if len(batch) == 0 {
		return batch
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.WriteTimeout)
	defer cancel()

	if err := a.repo.CreateMany(ctx, batch); err != nil {
		a.failed.Add(int64(len(batch)))
		metrics.RecordArchive(metrics.ArchiveFailed, len(batch))
		log.Warn().Err(err).Int("receipts", len(batch)).Msg("Failed to archive receipts")
	} else {
		a.stored.Add(int64(len(batch)))
		metrics.RecordArchive(metrics.ArchiveStored, len(batch))
	}
	return make([]*repository.ReceiptDocument, 0, a.cfg.BatchSize)
}

// Stop flushes queued receipts and waits for the workers to exit.
func (a *ReceiptArchiver) Stop() {
	if a == nil {
		return
	}
	a.stopOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.stopCh)
		a.mu.Unlock()
		a.wg.Wait()
	})
}

// Stats returns current archive counters.
func (a *ReceiptArchiver) Stats() ArchiveStats {
	if a == nil {
		return ArchiveStats{}
	}
	return ArchiveStats{
		Queued:  a.queued.Load(),
		Dropped: a.dropped.Load(),
		Stored:  a.stored.Load(),
		Failed:  a.failed.Load(),
	}
}

func toReceiptDocument(entry archiveEntry) *repository.ReceiptDocument {
	r := entry.receipt
	total, err := primitive.ParseDecimal128(r.Total.String())
	if err != nil {
		total = primitive.NewDecimal128(0, 0)
	}

	doc := &repository.ReceiptDocument{
		ID:          r.ID,
		OrderName:   r.OrderName,
		OrderType:   r.OrderType,
		Text:        r.Text,
		Total:       total,
		LineCount:   r.LineCount,
		RequestID:   entry.requestID,
		GeneratedAt: r.GeneratedAt,
	}
	for _, s := range r.Skipped {
		doc.Skipped = append(doc.Skipped, repository.SkippedLineDocument{
			Index:  s.Index,
			Line:   s.Line,
			Reason: string(s.Reason),
		})
	}
	return doc
}
