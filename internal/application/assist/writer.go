package assist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// IngestReport outcome of one EmbedAndStore call
type IngestReport struct {
	Submitted     int      `json:"submitted"`
	Stored        int      `json:"stored"`
	Batches       int      `json:"batches"`
	FailedBatches int      `json:"failed_batches"`
	IDs           []string `json:"ids,omitempty"`
}

// IngestionWriter embeds texts in batches and upserts them into the index
// Partial failure is expected: a failed batch is logged and skipped.
type IngestionWriter struct {
	embedder    knowledge.Embedder
	index       knowledge.VectorIndex
	ledger      knowledge.IngestionLog
	batchSize   int
	maxRetries  int
	backoffBase time.Duration
	batchPause  time.Duration
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
	logger      *slog.Logger
}

// NewIngestionWriter creates a writer; ledger may be nil
func NewIngestionWriter(embedder knowledge.Embedder, index knowledge.VectorIndex, ledger knowledge.IngestionLog, cfg *config.IngestConfig) *IngestionWriter {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	return &IngestionWriter{
		embedder:    embedder,
		index:       index,
		ledger:      ledger,
		batchSize:   batchSize,
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		batchPause:  cfg.BatchPause,
		now:         time.Now,
		sleep:       sleepCtx,
		logger:      log.NewModuleLogger("assist", "ingestion_writer"),
	}
}

// EmbedAndStore stores texts[i] with metadatas[i] under namespace
// All items share one ingestion timestamp. The ID is the metadata source ID
// when set, so re-ingesting a source item overwrites it in place.
func (w *IngestionWriter) EmbedAndStore(ctx context.Context, texts []string, metadatas []knowledge.Metadata, namespace string) (*IngestReport, error) {
	if len(texts) != len(metadatas) {
		return nil, fmt.Errorf("%w: %d texts, %d metadatas", knowledge.ErrLengthMismatch, len(texts), len(metadatas))
	}

	report := &IngestReport{Submitted: len(texts)}
	if len(texts) == 0 {
		return report, nil
	}

	stamp := w.now().Unix()
	totalBatches := (len(texts) + w.batchSize - 1) / w.batchSize
	w.logger.Info("Starting ingestion",
		"namespace", namespace,
		"items", len(texts),
		"batches", totalBatches,
	)

	for start := 0; start < len(texts); start += w.batchSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		end := min(start+w.batchSize, len(texts))
		batchNum := start/w.batchSize + 1
		report.Batches++

		ids, err := w.storeBatch(ctx, texts[start:end], metadatas[start:end], namespace, stamp, batchNum)
		if err != nil {
			report.FailedBatches++
			w.logger.Error("Batch skipped",
				"namespace", namespace,
				"batch", batchNum,
				"total", totalBatches,
				"error", err,
			)
		} else {
			report.Stored += len(ids)
			report.IDs = append(report.IDs, ids...)
		}

		if end < len(texts) && w.batchPause > 0 {
			if err := w.sleep(ctx, w.batchPause); err != nil {
				return report, err
			}
		}
	}

	w.logger.Info("Ingestion finished",
		"namespace", namespace,
		"stored", report.Stored,
		"failed_batches", report.FailedBatches,
	)
	return report, nil
}

func (w *IngestionWriter) storeBatch(ctx context.Context, texts []string, metadatas []knowledge.Metadata, namespace string, stamp int64, batchNum int) ([]string, error) {
	vectors, err := w.embedWithRetry(ctx, texts, batchNum)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding provider returned %d vectors for %d texts", len(vectors), len(texts))
	}

	records := make([]knowledge.Record, len(texts))
	ids := make([]string, len(texts))
	for i, text := range texts {
		md := metadatas[i]
		md.UnixTimestamp = stamp

		id := md.SourceID
		if id == "" {
			id = uuid.New().String()
		}
		ids[i] = id
		records[i] = knowledge.Record{
			ID:       id,
			Vector:   vectors[i],
			Metadata: md.ToPayload(text),
		}
	}

	if err := w.index.Upsert(ctx, namespace, records); err != nil {
		return nil, fmt.Errorf("failed to upsert batch: %w", err)
	}

	w.recordLedger(ctx, namespace, texts, metadatas, ids, stamp)
	return ids, nil
}

// embedWithRetry retries only rate-limit failures, base*2^attempt apart
func (w *IngestionWriter) embedWithRetry(ctx context.Context, texts []string, batchNum int) ([][]float32, error) {
	for attempt := 0; ; attempt++ {
		vectors, err := w.embedder.Embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		if !knowledge.IsRateLimited(err) {
			return nil, fmt.Errorf("failed to embed batch: %w", err)
		}
		if attempt >= w.maxRetries {
			return nil, fmt.Errorf("rate limited after %d retries: %w", w.maxRetries, err)
		}

		delay := w.backoffBase << attempt
		w.logger.Warn("Rate limited, retrying",
			"batch", batchNum,
			"attempt", attempt+1,
			"delay", delay,
		)
		if err := w.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (w *IngestionWriter) recordLedger(ctx context.Context, namespace string, texts []string, metadatas []knowledge.Metadata, ids []string, stamp int64) {
	if w.ledger == nil {
		return
	}
	ingestedAt := time.Unix(stamp, 0)
	entries := make([]knowledge.IngestionRecord, len(ids))
	for i, id := range ids {
		entries[i] = knowledge.IngestionRecord{
			OrgID:       metadatas[i].OrgID,
			Namespace:   namespace,
			ChunkID:     id,
			SourceType:  metadatas[i].SourceType,
			SourceID:    metadatas[i].SourceID,
			ContentHash: knowledge.ContentHash(texts[i]),
			IngestedAt:  ingestedAt,
		}
	}
	if err := w.ledger.Record(ctx, entries); err != nil {
		w.logger.Warn("Failed to record ingestion log", "namespace", namespace, "error", err)
	}
}

// sleepCtx waits for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
