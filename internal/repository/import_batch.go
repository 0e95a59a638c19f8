package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"dota-analysis/internal/domain"
)

type ImportBatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewImportBatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *ImportBatchRepository {
	return &ImportBatchRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Record stores one import event and returns it with its generated id.
func (r *ImportBatchRepository) Record(ctx context.Context, accountID string, matchCount int) (*domain.ImportBatch, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}

	batch := &domain.ImportBatch{
		ID:         id,
		AccountID:  accountID,
		MatchCount: matchCount,
		ImportedAt: time.Now(),
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO import_batches (id, account_id, match_count, imported_at)
		VALUES (?, ?, ?, ?)`,
		batch.ID, batch.AccountID, batch.MatchCount, batch.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record import batch: %w", err)
	}

	return batch, nil
}

// ListByAccount returns a player's most recent import batches.
func (r *ImportBatchRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.ImportBatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, match_count, imported_at
		FROM import_batches
		WHERE account_id = ?
		ORDER BY imported_at DESC
		LIMIT ?`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import batches: %w", err)
	}
	defer rows.Close()

	batches := []domain.ImportBatch{}
	for rows.Next() {
		var b domain.ImportBatch
		if err := rows.Scan(&b.ID, &b.AccountID, &b.MatchCount, &b.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
