package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"dota-analysis/internal/config"
	"dota-analysis/internal/constants"
	"dota-analysis/internal/domain"
	"dota-analysis/internal/repository"
)

// ErrInvalidRecord is returned when an imported record is structurally
// invalid.
var ErrInvalidRecord = errors.New("invalid record")

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

func (s *PlayerService) Add(ctx context.Context, accountID, label, note string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidRecord)
	}
	if label == "" {
		label = accountID
	}

	if err := s.repo.Upsert(ctx, &domain.Player{AccountID: accountID, Label: label, Note: note}); err != nil {
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to upsert player")
		return nil, err
	}

	s.logger.Info().Str("account_id", accountID).Str("label", label).Msg("player added")
	return s.repo.Get(ctx, accountID)
}

func (s *PlayerService) Get(ctx context.Context, accountID string) (*domain.Player, error) {
	return s.repo.Get(ctx, accountID)
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	return s.repo.List(ctx)
}

// SeedRoster upserts the configured player roster at startup so the
// tracked players are queryable before any import happens.
func (s *PlayerService) SeedRoster(ctx context.Context, entries []config.PlayerEntry) error {
	for _, e := range entries {
		if e.AccountID == "" {
			s.logger.Warn().Str("label", e.Label).Msg("skipping roster entry without account id")
			continue
		}
		label := e.Label
		if label == "" {
			label = e.AccountID
		}
		if err := s.repo.Upsert(ctx, &domain.Player{AccountID: e.AccountID, Label: label, Note: e.Note}); err != nil {
			return fmt.Errorf("failed to seed player %s: %w", e.AccountID, err)
		}
		s.logger.Debug().Str("account_id", e.AccountID).Str("label", label).Msg("roster player seeded")
	}
	return nil
}
