package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"dota-analysis/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, accountID string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT account_id, label, note, created_at, updated_at
		FROM players
		WHERE account_id = ?`, accountID)

	var p domain.Player
	err := row.Scan(&p.AccountID, &p.Label, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT account_id, label, note, created_at, updated_at
		FROM players
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.AccountID, &p.Label, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (account_id, label, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (account_id) DO UPDATE SET
			label = excluded.label,
			note = excluded.note,
			updated_at = excluded.updated_at`,
		player.AccountID, player.Label, player.Note, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}
