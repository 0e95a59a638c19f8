package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"dota-analysis/internal/constants"
	"dota-analysis/internal/domain"
	"dota-analysis/internal/repository"
)

type MatchService struct {
	matchRepo  *repository.MatchRepository
	batchRepo  *repository.ImportBatchRepository
	playerRepo *repository.PlayerRepository
	logger     zerolog.Logger
}

func NewMatchService(matchRepo *repository.MatchRepository, batchRepo *repository.ImportBatchRepository, playerRepo *repository.PlayerRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{matchRepo: matchRepo, batchRepo: batchRepo, playerRepo: playerRepo, logger: logger}
}

// Import validates and stores a batch of raw matches for a tracked player
// and records the import. Structurally invalid records (non-positive
// match_id or start_time) reject the whole batch; the aggregation engine
// itself stays permissive for callers that feed it directly.
func (s *MatchService) Import(ctx context.Context, accountID string, matches []domain.RawMatch) (*domain.ImportBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if _, err := s.playerRepo.Get(ctx, accountID); err != nil {
		return nil, fmt.Errorf("player %s: %w", accountID, err)
	}

	for i, m := range matches {
		if m.MatchID <= 0 {
			return nil, fmt.Errorf("%w: match at index %d has match_id %d", ErrInvalidRecord, i, m.MatchID)
		}
		if m.StartTime <= 0 {
			return nil, fmt.Errorf("%w: match %d has start_time %d", ErrInvalidRecord, m.MatchID, m.StartTime)
		}
	}

	if err := s.matchRepo.UpsertBatch(ctx, accountID, matches); err != nil {
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to upsert match batch")
		return nil, err
	}

	batch, err := s.batchRepo.Record(ctx, accountID, len(matches))
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to record import batch")
		return nil, err
	}

	s.logger.Info().
		Str("account_id", accountID).
		Str("batch_id", batch.ID).
		Int("match_count", len(matches)).
		Msg("matches imported")

	return batch, nil
}

// MatchesFor returns a player's stored matches in [from, to]. A
// non-positive to means "up to now"; the range is clamped to the maximum
// query window.
func (s *MatchService) MatchesFor(ctx context.Context, accountID string, from, to int64) ([]domain.RawMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if to <= 0 {
		to = time.Now().Unix()
	}
	if from < 0 {
		from = 0
	}
	if maxFrom := to - int64(constants.MaxRangeDays)*86400; from < maxFrom {
		s.logger.Debug().
			Str("account_id", accountID).
			Int64("from", from).
			Int64("clamped_from", maxFrom).
			Msg("query range clamped")
		from = maxFrom
		if from < 0 {
			from = 0
		}
	}

	return s.matchRepo.GetByAccountRange(ctx, accountID, from, to)
}

// Imports lists a player's recent import batches.
func (s *MatchService) Imports(ctx context.Context, accountID string, limit int) ([]domain.ImportBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}
	return s.batchRepo.ListByAccount(ctx, accountID, limit)
}
