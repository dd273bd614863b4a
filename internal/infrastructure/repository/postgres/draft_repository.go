package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-draft/internal/domain/draft"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

const draftSquadSelect = `
SELECT public_id, user_id, league_id, round_public_id, formation, slots, finalized, created_at, updated_at
FROM draft_squads`

// Insert relies on the (user_id, league_id, round_public_id) unique index;
// a duplicate comes back as draft.ErrSquadExists so concurrent creates for
// the same owner collapse into one winner.
func (r *DraftRepository) Insert(ctx context.Context, squad draft.Squad) error {
	slotsJSON, err := sonic.Marshal(squad.Slots)
	if err != nil {
		return fmt.Errorf("marshal squad slots: %w", err)
	}

	const query = `
INSERT INTO draft_squads (public_id, user_id, league_id, round_public_id, formation, slots, finalized, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		squad.ID, squad.UserID, squad.LeagueID, squad.RoundID, squad.Formation,
		slotsJSON, squad.Finalized, squad.CreatedAt, squad.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user=%s league=%s round=%s", draft.ErrSquadExists, squad.UserID, squad.LeagueID, squad.RoundID)
		}
		return fmt.Errorf("insert draft squad: %w", err)
	}
	return nil
}

func (r *DraftRepository) GetByID(ctx context.Context, squadID string) (draft.Squad, bool, error) {
	var row draftSquadTableModel
	if err := r.db.GetContext(ctx, &row, draftSquadSelect+` WHERE public_id = $1`, squadID); err != nil {
		if isNotFound(err) {
			return draft.Squad{}, false, nil
		}
		return draft.Squad{}, false, fmt.Errorf("get draft squad: %w", err)
	}
	squad, err := mapDraftSquadRow(row)
	if err != nil {
		return draft.Squad{}, false, err
	}
	return squad, true, nil
}

func (r *DraftRepository) GetByOwner(ctx context.Context, userID, leagueID, roundID string) (draft.Squad, bool, error) {
	return r.getByOwner(ctx, userID, leagueID, roundID, false)
}

func (r *DraftRepository) GetFinalizedByOwner(ctx context.Context, userID, leagueID, roundID string) (draft.Squad, bool, error) {
	return r.getByOwner(ctx, userID, leagueID, roundID, true)
}

func (r *DraftRepository) getByOwner(ctx context.Context, userID, leagueID, roundID string, finalizedOnly bool) (draft.Squad, bool, error) {
	query := draftSquadSelect + ` WHERE user_id = $1 AND league_id = $2 AND round_public_id = $3`
	if finalizedOnly {
		query += ` AND finalized = TRUE`
	}

	var row draftSquadTableModel
	if err := r.db.GetContext(ctx, &row, query, userID, leagueID, roundID); err != nil {
		if isNotFound(err) {
			return draft.Squad{}, false, nil
		}
		return draft.Squad{}, false, fmt.Errorf("get draft squad by owner: %w", err)
	}
	squad, err := mapDraftSquadRow(row)
	if err != nil {
		return draft.Squad{}, false, err
	}
	return squad, true, nil
}

func (r *DraftRepository) UpdateSlots(ctx context.Context, squadID string, slots []draft.CandidateSlot, updatedAt time.Time) error {
	slotsJSON, err := sonic.Marshal(slots)
	if err != nil {
		return fmt.Errorf("marshal squad slots: %w", err)
	}

	const query = `
UPDATE draft_squads
SET slots = $2, updated_at = $3
WHERE public_id = $1 AND finalized = FALSE`
	result, err := r.db.ExecContext(ctx, query, squadID, slotsJSON, updatedAt)
	if err != nil {
		return fmt.Errorf("update draft squad slots: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update draft squad slots rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("draft squad not found or already finalized: %s", squadID)
	}
	return nil
}

// Finalize commits the chosen slots, the finalized flag and the roster
// links in one transaction. Roster inserts use ON CONFLICT DO NOTHING so a
// retried finalize after a partial failure is safe.
func (r *DraftRepository) Finalize(ctx context.Context, squad draft.Squad, links []draft.RosterLink) error {
	slotsJSON, err := sonic.Marshal(squad.Slots)
	if err != nil {
		return fmt.Errorf("marshal squad slots: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin finalize tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertLink = `
INSERT INTO draft_rosters (squad_public_id, player_public_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (squad_public_id, player_public_id) DO NOTHING`
	for _, link := range links {
		if _, err := tx.ExecContext(ctx, insertLink, link.SquadID, link.PlayerID); err != nil {
			return fmt.Errorf("insert roster link squad=%s player=%s: %w", link.SquadID, link.PlayerID, err)
		}
	}

	const markFinalized = `
UPDATE draft_squads
SET slots = $2, finalized = TRUE, updated_at = $3
WHERE public_id = $1`
	result, err := tx.ExecContext(ctx, markFinalized, squad.ID, slotsJSON, squad.UpdatedAt)
	if err != nil {
		return fmt.Errorf("mark draft squad finalized: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark finalized rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("draft squad not found: %s", squad.ID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finalize tx: %w", err)
	}
	return nil
}

func (r *DraftRepository) ListRoster(ctx context.Context, squadID string) ([]draft.RosterLink, error) {
	const query = `
SELECT squad_public_id, player_public_id
FROM draft_rosters
WHERE squad_public_id = $1
ORDER BY player_public_id`

	var rows []struct {
		SquadID  string `db:"squad_public_id"`
		PlayerID string `db:"player_public_id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, squadID); err != nil {
		return nil, fmt.Errorf("list roster links: %w", err)
	}

	out := make([]draft.RosterLink, 0, len(rows))
	for _, row := range rows {
		out = append(out, draft.RosterLink{SquadID: row.SquadID, PlayerID: row.PlayerID})
	}
	return out, nil
}

func mapDraftSquadRow(row draftSquadTableModel) (draft.Squad, error) {
	var slots []draft.CandidateSlot
	if len(row.SlotsJSON) > 0 {
		if err := sonic.Unmarshal(row.SlotsJSON, &slots); err != nil {
			return draft.Squad{}, fmt.Errorf("decode squad slots: %w", err)
		}
	}

	return draft.Squad{
		ID:        row.PublicID,
		UserID:    row.UserID,
		LeagueID:  row.LeagueID,
		RoundID:   row.RoundID,
		Formation: row.Formation,
		Slots:     slots,
		Finalized: row.Finalized,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
