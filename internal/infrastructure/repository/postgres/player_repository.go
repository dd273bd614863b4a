package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-draft/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"public_id",
	"team_public_id",
	"name",
	"position",
	"stars",
	"total_points",
	"image_url",
	"player_ref_id",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return mapPlayerRows(rows), nil
}

func (r *PlayerRepository) ListByPosition(ctx context.Context, position player.Position) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("position", string(position)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by position query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by position: %w", err)
	}
	return mapPlayerRows(rows), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.In("public_id", stringSliceToAny(playerIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}
	return mapPlayerRows(rows), nil
}

func (r *PlayerRepository) AddTotalPoints(ctx context.Context, pointsByPlayerID map[string]int) error {
	if len(pointsByPlayerID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(pointsByPlayerID))
	for id := range pointsByPlayerID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	const query = `
UPDATE players
SET total_points = total_points + $2,
    updated_at = NOW()
WHERE public_id = $1
  AND deleted_at IS NULL`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add total points tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, query, id, pointsByPlayerID[id]); err != nil {
			return fmt.Errorf("add total points player=%s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add total points tx: %w", err)
	}
	return nil
}

func mapPlayerRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:          row.PublicID,
			TeamID:      row.TeamID,
			Name:        row.Name,
			Position:    player.Position(row.Position),
			Stars:       row.Stars,
			TotalPoints: row.TotalPoints,
			ImageURL:    row.ImageURL,
			PlayerRefID: row.PlayerRefID,
		})
	}
	return out
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
