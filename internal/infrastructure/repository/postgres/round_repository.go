package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

const roundSelect = `
SELECT public_id, provider_round_id, name, number, starts_at, ends_at, is_current
FROM rounds`

func (r *RoundRepository) GetCurrent(ctx context.Context) (round.Round, bool, error) {
	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, roundSelect+` WHERE is_current = TRUE`); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get current round: %w", err)
	}
	return mapRoundRow(row), true, nil
}

func (r *RoundRepository) GetByName(ctx context.Context, name string) (round.Round, bool, error) {
	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, roundSelect+` WHERE name = $1`, name); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round by name: %w", err)
	}
	return mapRoundRow(row), true, nil
}

func (r *RoundRepository) GetByID(ctx context.Context, id string) (round.Round, bool, error) {
	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, roundSelect+` WHERE public_id = $1`, id); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round by id: %w", err)
	}
	return mapRoundRow(row), true, nil
}

// Upsert keys on provider_round_id; a round turning current demotes the
// previous current row in the same transaction.
func (r *RoundRepository) Upsert(ctx context.Context, item round.Round) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin round upsert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if item.IsCurrent {
		const demote = `UPDATE rounds SET is_current = FALSE WHERE is_current = TRUE AND provider_round_id <> $1`
		if _, err := tx.ExecContext(ctx, demote, item.ProviderRoundID); err != nil {
			return fmt.Errorf("demote current round: %w", err)
		}
	}

	const upsert = `
INSERT INTO rounds (public_id, provider_round_id, name, number, starts_at, ends_at, is_current, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
ON CONFLICT (provider_round_id) DO UPDATE SET
    name = EXCLUDED.name,
    number = EXCLUDED.number,
    starts_at = EXCLUDED.starts_at,
    ends_at = EXCLUDED.ends_at,
    is_current = EXCLUDED.is_current,
    updated_at = NOW()`
	if _, err := tx.ExecContext(ctx, upsert,
		item.ID, item.ProviderRoundID, item.Name, item.Number, item.StartsAt, item.EndsAt, item.IsCurrent,
	); err != nil {
		return fmt.Errorf("upsert round: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round upsert tx: %w", err)
	}
	return nil
}

func mapRoundRow(row roundTableModel) round.Round {
	return round.Round{
		ID:              row.PublicID,
		ProviderRoundID: row.ProviderRoundID,
		Name:            row.Name,
		Number:          row.Number,
		StartsAt:        row.StartsAt,
		EndsAt:          row.EndsAt,
		IsCurrent:       row.IsCurrent,
	}
}
