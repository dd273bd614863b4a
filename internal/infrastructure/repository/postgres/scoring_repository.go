package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-draft/internal/domain/scoring"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) UpsertRoundPoints(ctx context.Context, items []scoring.RoundPoints) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin round points tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
INSERT INTO round_points (round_public_id, player_public_id, points, calculated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (round_public_id, player_public_id) DO UPDATE SET
    points = EXCLUDED.points,
    calculated_at = EXCLUDED.calculated_at`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, query, item.RoundID, item.PlayerID, item.Points, item.CalculatedAt); err != nil {
			return fmt.Errorf("upsert round points round=%s player=%s: %w", item.RoundID, item.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round points tx: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListByRound(ctx context.Context, roundID string) ([]scoring.RoundPoints, error) {
	const query = `
SELECT round_public_id, player_public_id, points, calculated_at
FROM round_points
WHERE round_public_id = $1
ORDER BY points DESC, player_public_id`

	var rows []roundPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, roundID); err != nil {
		return nil, fmt.Errorf("select round points: %w", err)
	}

	out := make([]scoring.RoundPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.RoundPoints{
			RoundID:      row.RoundID,
			PlayerID:     row.PlayerID,
			Points:       row.Points,
			CalculatedAt: row.CalculatedAt,
		})
	}
	return out, nil
}
