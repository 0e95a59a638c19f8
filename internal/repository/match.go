package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"dota-analysis/internal/domain"
)

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// UpsertBatch stores a batch of raw matches for a player in one
// transaction. Re-imported matches overwrite their previous row.
func (r *MatchRepository) UpsertBatch(ctx context.Context, accountID string, matches []domain.RawMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (
			account_id, match_id, start_time, player_slot, radiant_win,
			duration, kills, deaths, assists, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id, match_id) DO UPDATE SET
			start_time = excluded.start_time,
			player_slot = excluded.player_slot,
			radiant_win = excluded.radiant_win,
			duration = excluded.duration,
			kills = excluded.kills,
			deaths = excluded.deaths,
			assists = excluded.assists,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, m := range matches {
		if _, err := stmt.ExecContext(ctx,
			accountID, m.MatchID, m.StartTime, m.PlayerSlot, m.RadiantWin,
			m.Duration, m.Kills, m.Deaths, m.Assists, now, now); err != nil {
			return fmt.Errorf("failed to upsert match %d: %w", m.MatchID, err)
		}
	}

	return tx.Commit()
}

// GetByAccountRange returns a player's raw matches with start_time in
// [from, to], chronologically.
func (r *MatchRepository) GetByAccountRange(ctx context.Context, accountID string, from, to int64) ([]domain.RawMatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT match_id, start_time, player_slot, radiant_win,
		       duration, kills, deaths, assists, created_at, updated_at
		FROM matches
		WHERE account_id = ? AND start_time >= ? AND start_time <= ?
		ORDER BY start_time ASC`, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []domain.RawMatch{}
	for rows.Next() {
		var m domain.RawMatch
		if err := rows.Scan(&m.MatchID, &m.StartTime, &m.PlayerSlot, &m.RadiantWin,
			&m.Duration, &m.Kills, &m.Deaths, &m.Assists, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// CountByAccount returns how many matches are stored for a player.
func (r *MatchRepository) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE account_id = ?`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}
